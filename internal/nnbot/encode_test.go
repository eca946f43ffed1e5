package nnbot

import (
	"testing"

	"github.com/chessbench/arena/internal/board"
	"github.com/stretchr/testify/require"
)

func TestEncodeStartingPositionChannelCounts(t *testing.T) {
	pos := board.NewPosition()
	tensor := make([]float32, TensorSize)
	Encode(pos, tensor)

	var ones int
	for _, v := range tensor {
		if v == 1.0 {
			ones++
		}
	}
	require.Equal(t, 32, ones, "32 pieces on the board at the start")

	// Own pawns (channel 0) occupy exactly 8 squares.
	var ownPawns int
	for s := 0; s < 64; s++ {
		if tensor[0*64+s] == 1.0 {
			ownPawns++
		}
	}
	require.Equal(t, 8, ownPawns)
}

func TestEncodeIsColorMirrorSymmetric(t *testing.T) {
	// A position and its exact mirror (colors and ranks swapped) must
	// produce bitwise-identical encodings from each side's own view.
	white, err := board.ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	black, err := board.ParseFEN("4k3/4p3/8/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)

	whiteTensor := make([]float32, TensorSize)
	blackTensor := make([]float32, TensorSize)
	Encode(white, whiteTensor)
	Encode(black, blackTensor)

	require.Equal(t, whiteTensor, blackTensor)
}

func TestEncodeBatchProducesRowMajorLayout(t *testing.T) {
	pos := board.NewPosition()
	batch := EncodeBatch([]*board.Position{pos, pos})

	require.Len(t, batch, 2*TensorSize)
	require.Equal(t, batch[:TensorSize], batch[TensorSize:])
}

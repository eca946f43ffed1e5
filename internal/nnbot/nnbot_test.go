package nnbot

import (
	"testing"

	"github.com/chessbench/arena/internal/board"
	"github.com/stretchr/testify/require"
)

// constantEvaluator returns the same score for every row in the batch.
type constantEvaluator struct{ score float32 }

func (c constantEvaluator) Evaluate(batch []float32) ([]float32, error) {
	n := len(batch) / TensorSize
	out := make([]float32, n)
	for i := range out {
		out[i] = c.score
	}
	return out, nil
}

// firstRowHighEvaluator favors whichever row has the most 1.0 entries in
// its own-piece channels, to give ChooseMove something non-trivial to pick.
type firstRowHighEvaluator struct{}

func (firstRowHighEvaluator) Evaluate(batch []float32) ([]float32, error) {
	n := len(batch) / TensorSize
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		row := batch[i*TensorSize : (i+1)*TensorSize]
		var sum float32
		for c := 0; c < 6; c++ {
			for s := 0; s < 64; s++ {
				sum += row[c*64+s]
			}
		}
		out[i] = sum
	}
	return out, nil
}

func TestChooseMovePrefersImmediateCheckmate(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	bot := New(Config{}, constantEvaluator{score: 0})
	move, err := bot.ChooseMove(pos)
	require.NoError(t, err)
	require.NotEqual(t, board.NoMove, move)

	child := pos.Copy()
	child.MakeMove(move)
	require.Equal(t, board.Checkmate, child.Outcome().Kind, "bot must choose the mating move when one exists")
}

func TestChooseMoveReturnsLegalMove(t *testing.T) {
	pos := board.NewPosition()
	bot := New(Config{}, firstRowHighEvaluator{})

	move, err := bot.ChooseMove(pos)
	require.NoError(t, err)

	legal := pos.GenerateLegalMoves()
	require.True(t, legal.Contains(move))
}

func TestChooseMoveQuiescenceVariantReturnsLegalMove(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	bot := New(Config{Quiescence: true}, constantEvaluator{score: 0})
	move, err := bot.ChooseMove(pos)
	require.NoError(t, err)

	legal := pos.GenerateLegalMoves()
	require.True(t, legal.Contains(move))
}

func TestChooseMoveNoLegalMovesReturnsNoMove(t *testing.T) {
	pos, err := board.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	bot := New(Config{}, constantEvaluator{score: 0})
	move, err := bot.ChooseMove(pos)
	require.NoError(t, err)
	require.Equal(t, board.NoMove, move)
}

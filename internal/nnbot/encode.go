package nnbot

import "github.com/chessbench/arena/internal/board"

// TensorSize is the length of the flattened 12x64 canonical tensor.
const TensorSize = 12 * 64

// Encode writes pos's canonical side-to-move-relative tensor into dst,
// which must have length TensorSize. Channels 0..5 are the side to move's
// own {P,N,B,R,Q,K}; 6..11 are the opponent's. When Black is to move,
// ranks are flipped (square s becomes s XOR 56); files are untouched.
func Encode(pos *board.Position, dst []float32) {
	for i := range dst {
		dst[i] = 0
	}

	us := pos.SideToMove
	them := us.Other()

	for pt := board.Pawn; pt <= board.King; pt++ {
		ownBB := pos.Pieces[us][pt]
		for ownBB != 0 {
			sq := ownBB.LSB()
			ownBB &= ownBB - 1
			dst[int(pt)*64+canonicalSquare(sq, us)] = 1.0
		}

		oppBB := pos.Pieces[them][pt]
		for oppBB != 0 {
			sq := oppBB.LSB()
			oppBB &= oppBB - 1
			dst[(6+int(pt))*64+canonicalSquare(sq, us)] = 1.0
		}
	}
}

// canonicalSquare returns sq as seen from us's perspective: unchanged for
// White, rank-flipped for Black.
func canonicalSquare(sq board.Square, us board.Color) int {
	if us == board.Black {
		return int(sq ^ 56)
	}
	return int(sq)
}

// EncodeBatch encodes every position in positions into a flattened
// [N, TensorSize] row-major buffer.
func EncodeBatch(positions []*board.Position) []float32 {
	out := make([]float32, len(positions)*TensorSize)
	for i, pos := range positions {
		Encode(pos, out[i*TensorSize:(i+1)*TensorSize])
	}
	return out
}

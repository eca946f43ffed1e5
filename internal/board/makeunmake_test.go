package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// snapshot deep-copies a Position, including its History slice, so the
// returned value is unaffected by later mutation of pos (Position.Copy
// shares History's backing array, which is fine for search but not for
// a before/after equality assertion).
func snapshot(pos *Position) Position {
	cp := *pos
	cp.History = append([]uint64(nil), pos.History...)
	return cp
}

// TestMakeUnmakeRestoresPositionExactly plays every legal move from a
// handful of positions, one ply deep, and asserts MakeMove/UnmakeMove
// round-trips the position back to a field-for-field identical state.
func TestMakeUnmakeRestoresPositionExactly(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		require.NoError(t, err, "parse FEN %q", fen)

		before := snapshot(pos)
		moves := pos.GenerateLegalMoves()

		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo := pos.MakeMove(m)
			pos.UnmakeMove(m, undo)
			require.Equal(t, before, snapshot(pos), "fen=%q move=%s", fen, m.String())
		}
	}
}

// TestMakeUnmakeRoundTripsAcrossAPly chains several plies deep, undoing
// in reverse order, matching how the searcher drives MakeMove/UnmakeMove
// within a single search line.
func TestMakeUnmakeRoundTripsAcrossAPly(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	require.NoError(t, err)

	before := snapshot(pos)

	const depth = 3
	var played []Move
	var undos []UndoInfo

	for d := 0; d < depth; d++ {
		moves := pos.GenerateLegalMoves()
		require.Greater(t, moves.Len(), 0)
		m := moves.Get(0)
		undo := pos.MakeMove(m)
		require.True(t, undo.Valid)
		played = append(played, m)
		undos = append(undos, undo)
	}

	for i := len(played) - 1; i >= 0; i-- {
		pos.UnmakeMove(played[i], undos[i])
	}

	require.Equal(t, before, snapshot(pos))
}

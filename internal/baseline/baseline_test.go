package baseline

import (
	"testing"

	"github.com/chessbench/arena/internal/board"
	"github.com/chessbench/arena/internal/engine"
	"github.com/stretchr/testify/require"
)

func TestChooseMoveReturnsLegalMove(t *testing.T) {
	pos := board.NewPosition()
	bot := New(Config{Depth: 3, Mode: engine.Enhanced, WindowCP: 0, BlunderRate: 0, Seed: 42})

	move := bot.ChooseMove(pos)
	require.NotEqual(t, board.NoMove, move)

	legal := pos.GenerateLegalMoves()
	require.True(t, legal.Contains(move), "chosen move must be legal")
}

func TestChooseMoveDeterministicWithSameSeed(t *testing.T) {
	pos := board.NewPosition()

	bot1 := New(Config{Depth: 3, Mode: engine.Enhanced, WindowCP: 0, BlunderRate: 0, Seed: 42})
	bot2 := New(Config{Depth: 3, Mode: engine.Enhanced, WindowCP: 0, BlunderRate: 0, Seed: 42})

	move1 := bot1.ChooseMove(pos)
	move2 := bot2.ChooseMove(pos)

	require.Equal(t, move1, move2)
}

func TestChooseMoveAlwaysBlundersAtRateOne(t *testing.T) {
	pos := board.NewPosition()
	bot := New(Config{Depth: 3, Mode: engine.Classic, WindowCP: 0, BlunderRate: 1.0, Seed: 7})

	move := bot.ChooseMove(pos)
	legal := pos.GenerateLegalMoves()
	require.True(t, legal.Contains(move))
}

func TestChooseMoveOnCheckmateInOnePosition(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	bot := New(Config{Depth: 4, Mode: engine.Enhanced, WindowCP: 0, BlunderRate: 0, Seed: 1})
	move := bot.ChooseMove(pos)
	require.NotEqual(t, board.NoMove, move)
}

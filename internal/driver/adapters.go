package driver

import (
	"github.com/chessbench/arena/internal/baseline"
	"github.com/chessbench/arena/internal/board"
)

// BaselinePlayer adapts *baseline.Bot (which never errors) to the Player
// interface the driver schedules against.
type BaselinePlayer struct {
	Bot *baseline.Bot
}

// ChooseMove satisfies Player.
func (p BaselinePlayer) ChooseMove(pos *board.Position) (board.Move, error) {
	return p.Bot.ChooseMove(pos), nil
}

// Package nnbot implements the neural-network-driven player: it encodes
// candidate positions into the canonical 12x64 tensor, delegates scoring to
// a pluggable Evaluator, and selects a move under a fixed depth-1 (or
// depth-1-plus-quiescence) policy.
package nnbot

import (
	"fmt"
	"math"

	"github.com/chessbench/arena/internal/board"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("nnbot")

// Config configures the NN bot's move-selection policy.
type Config struct {
	// Quiescence enables the depth-1-plus-quiescence variant: non-terminal
	// children are scored by recursing into captures with the NN as the
	// leaf evaluator, instead of scoring them directly.
	Quiescence bool
	// MaxQuiescencePly caps the capture-only recursion depth.
	MaxQuiescencePly int
}

// Bot selects moves by scoring candidate children with an Evaluator.
type Bot struct {
	cfg  Config
	eval Evaluator
}

// New constructs a Bot around the given (already-validated) evaluator.
func New(cfg Config, eval Evaluator) *Bot {
	if cfg.MaxQuiescencePly <= 0 {
		cfg.MaxQuiescencePly = 16
	}
	return &Bot{cfg: cfg, eval: eval}
}

// ChooseMove generates legal moves, classifies each child as an immediate
// win/draw or a position needing NN scoring, batch-scores the NN
// candidates in a single evaluator call, and returns the move with the
// highest parent-perspective score.
func (b *Bot) ChooseMove(pos *board.Position) (board.Move, error) {
	legal := pos.GenerateLegalMoves()
	if legal.Len() == 0 {
		return board.NoMove, nil
	}

	type child struct {
		move      board.Move
		immediate float64
		isNN      bool
		nnIndex   int
	}

	children := make([]child, 0, legal.Len())
	var nnPositions []*board.Position

	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		c := pos.Copy()
		undo := c.MakeMove(m)
		if !undo.Valid {
			continue
		}

		outcome := c.Outcome()
		switch outcome.Kind {
		case board.Checkmate:
			// Opponent is checkmated after our move: the best possible
			// outcome for us, always chosen.
			children = append(children, child{move: m, immediate: math.Inf(1)})
		case board.Stalemate, board.DrawByRepetition, board.DrawBy50MoveRule, board.DrawByInsufficientMaterial:
			children = append(children, child{move: m, immediate: 0.0})
		default:
			children = append(children, child{move: m, isNN: true, nnIndex: len(nnPositions)})
			nnPositions = append(nnPositions, c)
		}
	}

	if len(children) == 0 {
		return board.NoMove, nil
	}
	log.Debugf("choosing among %d candidates, %d need NN scoring", len(children), len(nnPositions))

	var nnScores []float64
	if len(nnPositions) > 0 {
		var err error
		if b.cfg.Quiescence {
			nnScores, err = b.scoreQuiescence(nnPositions)
		} else {
			nnScores, err = b.scoreDirect(nnPositions)
		}
		if err != nil {
			return board.NoMove, fmt.Errorf("nnbot: %w", err)
		}
	}

	best := math.Inf(-1)
	bestMove := board.NoMove
	for _, c := range children {
		var score float64
		if c.isNN {
			// The child is from the opponent's point of view, so negate.
			score = -nnScores[c.nnIndex]
		} else {
			score = c.immediate
		}
		if score > best {
			best = score
			bestMove = c.move
		}
	}

	return bestMove, nil
}

// scoreDirect batches and scores every position in a single evaluator call.
func (b *Bot) scoreDirect(positions []*board.Position) ([]float64, error) {
	batch := EncodeBatch(positions)
	raw, err := b.eval.Evaluate(batch)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	if len(raw) != len(positions) {
		return nil, fmt.Errorf("evaluator returned %d scores for %d positions", len(raw), len(positions))
	}
	scores := make([]float64, len(raw))
	for i, v := range raw {
		scores[i] = float64(v)
	}
	return scores, nil
}

// scoreQuiescence scores each position via a capture-only alpha-beta
// search using the NN as the leaf evaluator, the optional quiescence
// variant of move selection.
func (b *Bot) scoreQuiescence(positions []*board.Position) ([]float64, error) {
	scores := make([]float64, len(positions))
	for i, pos := range positions {
		s, err := b.quiesce(pos, 0, math.Inf(-1), math.Inf(1))
		if err != nil {
			return nil, err
		}
		scores[i] = s
	}
	return scores, nil
}

// quiesce runs capture-only alpha-beta from pos, using the NN to evaluate
// stand-pat and leaf positions.
func (b *Bot) quiesce(pos *board.Position, ply int, alpha, beta float64) (float64, error) {
	standPat, err := b.evalOne(pos)
	if err != nil {
		return 0, err
	}
	if ply >= b.cfg.MaxQuiescencePly {
		return standPat, nil
	}
	if standPat >= beta {
		return beta, nil
	}
	if standPat > alpha {
		alpha = standPat
	}

	captures := pos.GenerateCaptures()
	for i := 0; i < captures.Len(); i++ {
		m := captures.Get(i)
		child := pos.Copy()
		undo := child.MakeMove(m)
		if !undo.Valid {
			continue
		}

		score, err := b.quiesce(child, ply+1, -beta, -alpha)
		if err != nil {
			return 0, err
		}
		score = -score

		if score >= beta {
			return beta, nil
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha, nil
}

// evalOne scores a single position through the batch evaluator.
func (b *Bot) evalOne(pos *board.Position) (float64, error) {
	batch := EncodeBatch([]*board.Position{pos})
	raw, err := b.eval.Evaluate(batch)
	if err != nil {
		return 0, fmt.Errorf("evaluate: %w", err)
	}
	if len(raw) != 1 {
		return 0, fmt.Errorf("evaluator returned %d scores for 1 position", len(raw))
	}
	return float64(raw[0]), nil
}

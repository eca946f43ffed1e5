// Package baseline implements the handcrafted classical-search opponent
// that the competition driver plays the NN bot against.
package baseline

import (
	"math/rand"

	"github.com/chessbench/arena/internal/board"
	"github.com/chessbench/arena/internal/engine"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("baseline")

// Config configures a Baseline bot's strength and move-selection behavior.
type Config struct {
	// Depth is the full search depth in plies.
	Depth int
	// Mode selects classic or enhanced search.
	Mode engine.Mode
	// WindowCP is the candidate-window width in centipawns: every legal
	// move whose depth-1 score is within WindowCP of the best depth-1
	// score enters the candidate set.
	WindowCP int
	// BlunderRate is the probability, in [0,1], that a uniformly random
	// legal move is played instead of a searched one.
	BlunderRate float64
	// Seed seeds the bot's private RNG so that two bots built with the
	// same seed and fed the same positions choose identically.
	Seed int64
	// TTSize is the transposition table size in MB, used only in
	// Enhanced mode.
	TTSize int
}

// Bot is a deterministic classical-search player, configured by Config.
type Bot struct {
	cfg Config
	rng *rand.Rand
	tt  *engine.TranspositionTable
}

// New constructs a Bot. Each Bot owns its own RNG seeded from cfg.Seed, so
// blunder and tie-break decisions never depend on global or clock state.
func New(cfg Config) *Bot {
	b := &Bot{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	if cfg.Mode == engine.Enhanced {
		size := cfg.TTSize
		if size <= 0 {
			size = 16
		}
		b.tt = engine.NewTranspositionTable(size)
	}
	return b
}

// ChooseMove selects a move for pos: blunder roll, then candidate-window
// narrowing, then full-depth re-search among candidates.
func (b *Bot) ChooseMove(pos *board.Position) board.Move {
	legal := pos.GenerateLegalMoves()
	if legal.Len() == 0 {
		return board.NoMove
	}

	if b.rng.Float64() < b.cfg.BlunderRate {
		m := legal.Get(b.rng.Intn(legal.Len()))
		log.Debugf("blunder: playing random move %s", m.String())
		return m
	}

	candidates := b.candidateWindow(pos, legal)
	if len(candidates) == 1 {
		return candidates[0]
	}

	return b.pickBest(pos, candidates)
}

// candidateWindow runs a depth-1 evaluation of every legal move and returns
// every move whose score is within WindowCP of the best depth-1 score.
func (b *Bot) candidateWindow(pos *board.Position, legal *board.MoveList) []board.Move {
	searcher := engine.NewSearcher(b.cfg.Mode, b.tt)

	type scored struct {
		move  board.Move
		score int
	}
	scores := make([]scored, 0, legal.Len())

	best := -engine.Infinity
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		undo := pos.MakeMove(m)
		var score int
		if !undo.Valid {
			pos.UnmakeMove(m, undo)
			continue
		}
		_, s := searcher.Search(pos, 1)
		score = -s
		pos.UnmakeMove(m, undo)

		scores = append(scores, scored{m, score})
		if score > best {
			best = score
		}
	}

	candidates := make([]board.Move, 0, len(scores))
	for _, s := range scores {
		if best-s.score <= b.cfg.WindowCP {
			candidates = append(candidates, s.move)
		}
	}
	if len(candidates) == 0 {
		// Every move's undo failed to apply: fall back to the full legal list.
		for i := 0; i < legal.Len(); i++ {
			candidates = append(candidates, legal.Get(i))
		}
	}
	return candidates
}

// pickBest re-scores the candidate set at full depth and returns the
// argmax, breaking ties uniformly at random.
func (b *Bot) pickBest(pos *board.Position, candidates []board.Move) board.Move {
	searcher := engine.NewSearcher(b.cfg.Mode, b.tt)

	best := -engine.Infinity
	var winners []board.Move

	for _, m := range candidates {
		undo := pos.MakeMove(m)
		if !undo.Valid {
			pos.UnmakeMove(m, undo)
			continue
		}
		_, s := searcher.Search(pos, b.cfg.Depth-1)
		score := -s
		pos.UnmakeMove(m, undo)

		switch {
		case score > best:
			best = score
			winners = winners[:0]
			winners = append(winners, m)
		case score == best:
			winners = append(winners, m)
		}
	}

	if len(winners) == 0 {
		return candidates[0]
	}
	if len(winners) == 1 {
		return winners[0]
	}
	return winners[b.rng.Intn(len(winners))]
}

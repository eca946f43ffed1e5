package engine

import (
	"sync/atomic"

	"github.com/chessbench/arena/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// Mode selects between the classic and enhanced search modes.
type Mode int

const (
	// Classic is negamax + alpha-beta + quiescence only.
	Classic Mode = iota
	// Enhanced adds a transposition table, principal variation search,
	// null-move pruning, and delta pruning inside quiescence.
	Enhanced
)

// Null-move pruning reduction and minimum depth (enhanced mode only).
const (
	nmpMinDepth  = 3
	nmpReduction = 2
)

// PVTable stores the principal variation.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Searcher performs the alpha-beta search in either classic or enhanced
// mode. The contract is search(position, depth) -> (best_move, score).
type Searcher struct {
	mode      Mode
	pos       *board.Position
	tt        *TranspositionTable // nil in classic mode
	orderer   *MoveOrderer
	pawnTable *PawnTable

	nodes    uint64
	stopFlag atomic.Bool

	pv PVTable

	undoStack [MaxPly]board.UndoInfo
}

// NewSearcher creates a searcher. tt may be nil; it is only consulted
// when mode is Enhanced.
func NewSearcher(mode Mode, tt *TranspositionTable) *Searcher {
	return &Searcher{
		mode:      mode,
		tt:        tt,
		orderer:   NewMoveOrderer(),
		pawnTable: NewPawnTable(1),
	}
}

// eval evaluates the current position, routing pawn-structure scoring
// through the pawn hash table to avoid recomputing it at every node.
func (s *Searcher) eval() int {
	return EvaluateWithPawnTable(s.pos, s.pawnTable)
}

// Mode returns the searcher's configured mode.
func (s *Searcher) Mode() Mode { return s.mode }

// Stop signals the search to stop.
func (s *Searcher) Stop() { s.stopFlag.Store(true) }

// Reset resets the searcher for a new search.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.nodes = 0
	s.orderer.Clear()
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// IsStopped reports whether the search was signaled to stop.
func (s *Searcher) IsStopped() bool { return s.stopFlag.Load() }

// Search performs the search at the given depth and returns the best
// move and its negamax score in centipawns from the side to move.
func (s *Searcher) Search(pos *board.Position, depth int) (board.Move, int) {
	s.pos = pos.Copy()
	s.Reset()

	score := s.negamax(depth, 0, -Infinity, Infinity, true)

	var bestMove board.Move
	if s.pv.length[0] > 0 {
		bestMove = s.pv.moves[0][0]
	}
	return bestMove, score
}

// GetPV returns the principal variation from the last search.
func (s *Searcher) GetPV() []board.Move {
	pv := make([]board.Move, s.pv.length[0])
	copy(pv, s.pv.moves[0][:s.pv.length[0]])
	return pv
}

// negamax implements negamax with alpha-beta pruning. isPV marks nodes
// searched with a full window (enhanced mode uses this to decide whether
// a move gets a PVS null-window probe).
func (s *Searcher) negamax(depth, ply int, alpha, beta int, isPV bool) int {
	if s.nodes&4095 == 0 && s.stopFlag.Load() {
		return 0
	}
	s.nodes++
	s.pv.length[ply] = ply

	if ply > 0 && s.isDraw() {
		return 0
	}

	enhanced := s.mode == Enhanced

	var ttMove board.Move
	if enhanced {
		if entry, found := s.tt.Probe(s.pos.Hash); found {
			ttMove = entry.BestMove
			if int(entry.Depth) >= depth {
				score := AdjustScoreFromTT(int(entry.Score), ply)
				switch entry.Flag {
				case TTExact:
					return score
				case TTLowerBound:
					if score > alpha {
						alpha = score
					}
				case TTUpperBound:
					if score < beta {
						beta = score
					}
				}
				if alpha >= beta {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(ply, alpha, beta)
	}

	inCheck := s.pos.InCheck()

	// Null-move pruning (enhanced mode only): skip our move to get a
	// cheap beta-cutoff estimate. Gated on not being in check, having
	// non-pawn material (avoids zugzwang misjudgment), and enough depth
	// remaining for the reduced search to be meaningful.
	if enhanced && !isPV && depth >= nmpMinDepth && !inCheck && s.pos.HasNonPawnMaterial() {
		nullUndo := s.pos.MakeNullMove()
		score := -s.negamax(depth-1-nmpReduction, ply+1, -beta, -beta+1, false)
		s.pos.UnmakeNullMove(nullUndo)

		if s.stopFlag.Load() {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	moves := s.pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	scores := s.orderer.ScoreMoves(s.pos, moves, ply, ttMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	flag := TTUpperBound

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		s.undoStack[ply] = s.pos.MakeMove(move)
		if !s.undoStack[ply].Valid {
			continue
		}

		var score int
		if enhanced && i > 0 {
			// Principal variation search: null-window probe first,
			// re-search with the full window only if it fails high.
			score = -s.negamax(depth-1, ply+1, -alpha-1, -alpha, false)
			if score > alpha && score < beta {
				score = -s.negamax(depth-1, ply+1, -beta, -alpha, isPV)
			}
		} else {
			score = -s.negamax(depth-1, ply+1, -beta, -alpha, isPV)
		}

		s.pos.UnmakeMove(move, s.undoStack[ply])

		if s.stopFlag.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move

			if score > alpha {
				alpha = score
				flag = TTExact

				s.pv.moves[ply][ply] = move
				for j := ply + 1; j < s.pv.length[ply+1]; j++ {
					s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
				}
				s.pv.length[ply] = s.pv.length[ply+1]
			}
		}

		if score >= beta {
			if enhanced {
				s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(score, ply), TTLowerBound, bestMove)
			}
			if !move.IsCapture(s.pos) {
				s.orderer.UpdateKillers(move, ply)
				s.orderer.UpdateHistory(move, depth, true)
			}
			return score
		}
	}

	if enhanced {
		s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(bestScore, ply), flag, bestMove)
	}

	return bestScore
}

// quiescence searches only captures (and promotions) to avoid the horizon
// effect. Required in both classic and enhanced mode.
func (s *Searcher) quiescence(ply int, alpha, beta int) int {
	const maxQuiescencePly = 32
	if ply >= MaxPly || ply > maxQuiescencePly {
		return s.eval()
	}

	if s.stopFlag.Load() {
		return 0
	}
	s.nodes++

	standPat := s.eval()
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	// Delta pruning (enhanced mode only): if even the best plausible
	// capture gain can't approach alpha, there's nothing left to find.
	if s.mode == Enhanced {
		if standPat+QueenValue < alpha {
			return alpha
		}
	}

	moves := s.pos.GenerateCaptures()
	scores := s.orderer.ScoreMoves(s.pos, moves, ply, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		if s.mode == Enhanced && !s.pos.InCheck() {
			var captureValue int
			if move.IsEnPassant() {
				captureValue = PawnValue
			} else if captured := s.pos.PieceAt(move.To()); captured != board.NoPiece {
				captureValue = pieceValues[captured.Type()]
			}
			if move.IsPromotion() {
				captureValue += QueenValue - PawnValue
			}
			if standPat+captureValue+200 < alpha {
				continue
			}
		}

		undo := s.pos.MakeMove(move)
		if !undo.Valid {
			continue
		}

		score := -s.quiescence(ply+1, -beta, -alpha)
		s.pos.UnmakeMove(move, undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// isDraw checks 50-move-rule and insufficient-material draws during
// search. Repetition is checked at the game level via Position.Outcome,
// not inside the search tree.
func (s *Searcher) isDraw() bool {
	if s.pos.HalfMoveClock >= 100 {
		return true
	}
	return s.pos.IsInsufficientMaterial()
}

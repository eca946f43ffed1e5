package board

// OutcomeKind classifies how a game has concluded, or that it has not.
type OutcomeKind uint8

const (
	InProgress OutcomeKind = iota
	Checkmate
	Stalemate
	DrawByRepetition
	DrawBy50MoveRule
	DrawByInsufficientMaterial
	DrawByAdjudication
)

// Outcome is the terminal status of a position. Winner is only meaningful
// when Kind == Checkmate.
type Outcome struct {
	Kind   OutcomeKind
	Winner Color
}

// String renders the outcome the way the competition driver's per-game
// output line wants it.
func (o Outcome) String() string {
	switch o.Kind {
	case InProgress:
		return "in progress"
	case Checkmate:
		return "checkmate (" + o.Winner.String() + ")"
	case Stalemate:
		return "stalemate"
	case DrawByRepetition:
		return "draw by repetition"
	case DrawBy50MoveRule:
		return "draw by 50-move rule"
	case DrawByInsufficientMaterial:
		return "draw by insufficient material"
	case DrawByAdjudication:
		return "draw by adjudication"
	default:
		return "unknown"
	}
}

// IsDecisive reports whether the outcome ends the game (anything but InProgress).
func (o Outcome) IsDecisive() bool {
	return o.Kind != InProgress
}

// Outcome determines the terminal status of the position: no legal moves
// -> checkmate (if in check) or stalemate; halfmove clock at 100+ ->
// 50-move rule; current hash occurring 3 times in History -> repetition;
// insufficient material; else in progress. Checked in that priority order.
func (p *Position) Outcome() Outcome {
	if !p.HasLegalMoves() {
		if p.InCheck() {
			return Outcome{Kind: Checkmate, Winner: p.SideToMove.Other()}
		}
		return Outcome{Kind: Stalemate}
	}

	if p.HalfMoveClock >= 100 {
		return Outcome{Kind: DrawBy50MoveRule}
	}

	if p.isThreefoldRepetition() {
		return Outcome{Kind: DrawByRepetition}
	}

	if p.IsInsufficientMaterial() {
		return Outcome{Kind: DrawByInsufficientMaterial}
	}

	return Outcome{Kind: InProgress}
}

// isThreefoldRepetition reports whether the current position's hash
// occurs at least three times within the tracked history.
func (p *Position) isThreefoldRepetition() bool {
	count := 0
	for _, h := range p.History {
		if h == p.Hash {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

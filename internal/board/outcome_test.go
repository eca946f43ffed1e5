package board

import "testing"

func TestOutcomeCheckmate(t *testing.T) {
	pos, err := ParseFEN("4k3/8/4K3/8/8/Q7/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	var mate Move
	found := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		if pos.IsCheckmate() {
			mate = m
			found = true
		}
		pos.UnmakeMove(m, undo)
		if found {
			break
		}
	}
	if !found {
		t.Fatal("expected a mating move to exist (Qe7 or Qa8)")
	}

	pos.MakeMove(mate)
	outcome := pos.Outcome()
	if outcome.Kind != Checkmate || outcome.Winner != White {
		t.Fatalf("got outcome %v, want Checkmate(White)", outcome)
	}
}

func TestOutcomeStalemate(t *testing.T) {
	pos, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	outcome := pos.Outcome()
	if outcome.Kind != Stalemate {
		t.Fatalf("got outcome %v, want Stalemate", outcome)
	}
}

func TestOutcomeFiftyMoveRule(t *testing.T) {
	pos, err := ParseFEN("8/8/8/4k3/8/4K3/4B3/8 w - - 99 60")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		t.Fatal("expected legal king moves")
	}
	pos.MakeMove(moves.Get(0))

	if pos.HalfMoveClock != 100 {
		t.Fatalf("half-move clock = %d, want 100", pos.HalfMoveClock)
	}
	outcome := pos.Outcome()
	if outcome.Kind != DrawBy50MoveRule {
		t.Fatalf("got outcome %v, want DrawBy50MoveRule", outcome)
	}
}

func TestOutcomeThreefoldRepetition(t *testing.T) {
	pos := NewPosition()

	seq := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, uci := range seq {
		m, ok := findMoveByUCI(pos, uci)
		if !ok {
			t.Fatalf("move %s not found as legal", uci)
		}
		pos.MakeMove(m)
	}

	outcome := pos.Outcome()
	if outcome.Kind != DrawByRepetition {
		t.Fatalf("got outcome %v, want DrawByRepetition", outcome)
	}
}

func TestOutcomeInsufficientMaterialSameColorBishops(t *testing.T) {
	// White bishop on c1 (dark square), black bishop on c8 (light square):
	// different complexes, NOT a draw by insufficient material.
	pos, err := ParseFEN("2b1k3/8/8/8/8/8/8/2B1K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}
	if pos.IsInsufficientMaterial() {
		t.Fatal("bishops on opposite complexes should not be insufficient material")
	}

	// Both bishops on dark squares (c1 and f8 are both dark): same complex, draw.
	pos2, err := ParseFEN("5b2/8/8/8/8/8/8/2B1K2k w - - 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}
	if !pos2.IsInsufficientMaterial() {
		t.Fatal("bishops on the same complex should be insufficient material")
	}
}

// findMoveByUCI finds a legal move matching the given long-algebraic string.
func findMoveByUCI(pos *Position, uci string) (Move, bool) {
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.String() == uci {
			return m, true
		}
	}
	return NoMove, false
}

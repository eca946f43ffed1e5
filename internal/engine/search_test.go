package engine

import (
	"testing"

	"github.com/chessbench/arena/internal/board"
)

func TestSearchFindsMateInOne(t *testing.T) {
	// White king g6, queen a1, Black king g8 alone: Qg7# is mate in one
	// (queen and king together cover every flight square).
	pos, err := board.ParseFEN("6k1/8/6K1/8/8/8/8/Q7 w - - 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	s := NewSearcher(Classic, nil)
	move, score := s.Search(pos, 3)
	if move == board.NoMove {
		t.Fatal("expected a move to be found")
	}
	if score < MateScore-10 {
		t.Fatalf("expected a mate score, got %d", score)
	}
}

func TestSearchDeterministic(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable(1)

	s1 := NewSearcher(Enhanced, tt)
	move1, score1 := s1.Search(pos, 3)

	tt2 := NewTranspositionTable(1)
	s2 := NewSearcher(Enhanced, tt2)
	move2, score2 := s2.Search(pos, 3)

	if move1 != move2 || score1 != score2 {
		t.Fatalf("search is not deterministic: (%v,%d) vs (%v,%d)", move1, score1, move2, score2)
	}
}

func TestSearchClassicAndEnhancedBothReturnMove(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	classic := NewSearcher(Classic, nil)
	move, _ := classic.Search(pos, 2)
	if move == board.NoMove {
		t.Fatal("classic search returned no move")
	}

	enhanced := NewSearcher(Enhanced, NewTranspositionTable(1))
	move2, _ := enhanced.Search(pos, 2)
	if move2 == board.NoMove {
		t.Fatal("enhanced search returned no move")
	}
}

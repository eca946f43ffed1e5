package book

import (
	"strings"
	"testing"
)

const sampleBook = `
# Italian Game
r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 5 4

# Sicilian Defense
rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2
`

func TestLoadReaderParsesOpenings(t *testing.T) {
	b, err := LoadReader(strings.NewReader(sampleBook))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}

	pos, fen := b.At(0)
	if pos == nil {
		t.Fatal("At(0) returned nil position")
	}
	if !strings.HasPrefix(fen, "r1bqkbnr") {
		t.Errorf("unexpected fen: %s", fen)
	}
}

func TestLoadReaderSkipsBlankAndCommentLines(t *testing.T) {
	b, err := LoadReader(strings.NewReader("\n# just a comment\n\n"))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
}

func TestLoadReaderRejectsInvalidFEN(t *testing.T) {
	_, err := LoadReader(strings.NewReader("not a fen\n"))
	if err == nil {
		t.Fatal("expected an error for invalid FEN")
	}
}

func TestAtReturnsIndependentCopy(t *testing.T) {
	b, err := LoadReader(strings.NewReader(sampleBook))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	pos, _ := b.At(0)
	originalHash := pos.Hash

	move := pos.GenerateLegalMoves().Get(0)
	pos.MakeMove(move)

	again, _ := b.At(0)
	if again.Hash != originalHash {
		t.Fatal("book position was mutated by a previously returned copy")
	}
}

func TestAllReturnsEveryOpening(t *testing.T) {
	b, err := LoadReader(strings.NewReader(sampleBook))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	all := b.All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d positions, want 2", len(all))
	}
}

// Package book loads the opening positions used by the competition driver.
package book

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chessbench/arena/internal/board"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("book")

// Book is an ordered list of opening positions, read once at startup from a
// plain-text FEN file. Blank lines and lines beginning with # are comments.
type Book struct {
	openings []board.Position
	fens     []string
}

// Load reads a FEN-per-line opening book from filename.
func Load(filename string) (*Book, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("book: open %s: %w", filename, err)
	}
	defer f.Close()

	b, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("book: %s: %w", filename, err)
	}
	return b, nil
}

// LoadReader reads a FEN-per-line opening book from r.
func LoadReader(r io.Reader) (*Book, error) {
	b := &Book{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pos, err := board.ParseFEN(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid FEN %q: %w", lineNo, line, err)
		}

		b.openings = append(b.openings, *pos)
		b.fens = append(b.fens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading book: %w", err)
	}

	log.Infof("loaded %d opening positions", len(b.openings))
	return b, nil
}

// Len returns the number of openings in the book.
func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.openings)
}

// At returns a fresh copy of the position at the given index, and its
// source FEN, so callers can safely mutate the returned position.
func (b *Book) At(i int) (*board.Position, string) {
	pos := b.openings[i]
	return &pos, b.fens[i]
}

// All returns every opening position in book order, each a fresh copy.
func (b *Book) All() []*board.Position {
	out := make([]*board.Position, len(b.openings))
	for i := range b.openings {
		pos := b.openings[i]
		out[i] = &pos
	}
	return out
}

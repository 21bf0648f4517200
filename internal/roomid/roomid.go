// Package roomid generates the short codes players type to join a room.
package roomid

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
)

// Room codes are short enough to read out loud; uppercase letters and digits
// keep them unambiguous in chat.
const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLen  = 4
)

// RandSource is the slice of rand/v2 the generator needs, kept as an
// interface so tests can inject a deterministic source.
type RandSource interface {
	IntN(n int) int
}

// Generator produces room codes from a configurable randomness source.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator. A nil RandSource falls back to the
// shared math/rand/v2 source.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate returns a fresh room code. Uniqueness is the caller's problem;
// the registry regenerates on collision.
func (g *Generator) Generate() string {
	var b strings.Builder
	b.Grow(codeLen)
	for i := 0; i < codeLen; i++ {
		b.WriteByte(alphabet[g.intN(len(alphabet))])
	}
	return b.String()
}

func (g *Generator) intN(n int) int {
	if g.randSource != nil {
		return g.randSource.IntN(n)
	}
	return rand.IntN(n)
}

// Validate checks that a string has the shape of a room code.
func Validate(id string) error {
	if len(id) != codeLen {
		return fmt.Errorf("room code must be exactly %d characters, got %d", codeLen, len(id))
	}
	for i := 0; i < len(id); i++ {
		if !strings.ContainsRune(alphabet, rune(id[i])) {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

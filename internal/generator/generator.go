// Package generator builds random username candidates.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	letters = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
)

// ErrEmptyAlphabet indicates the derived alphabet has no characters left.
var ErrEmptyAlphabet = errors.New("alphabet is empty")

// DeriveAlphabet builds the candidate alphabet: lowercase letters plus the
// digits that are neither globally excluded nor listed in excludedDigits.
func DeriveAlphabet(excludeAllDigits bool, excludedDigits string) ([]rune, error) {
	alphabet := []rune(letters)
	if !excludeAllDigits {
		excluded := map[rune]struct{}{}
		for _, r := range excludedDigits {
			excluded[r] = struct{}{}
		}
		for _, d := range digits {
			if _, ok := excluded[d]; !ok {
				alphabet = append(alphabet, d)
			}
		}
	}
	if len(alphabet) == 0 {
		return nil, ErrEmptyAlphabet
	}
	return alphabet, nil
}

// Generator produces random candidates over a fixed alphabet.
type Generator struct {
	rnd      *rand.Rand
	alphabet []rune
}

// New returns a Generator seeded with the current time.
func New(alphabet []rune) *Generator {
	return NewWithSource(alphabet, rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator using the given random source.
func NewWithSource(alphabet []rune, src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src), alphabet: alphabet}
}

// Generate returns a candidate of exactly length characters, each drawn
// uniformly (with replacement) from the alphabet. Duplicates between calls
// are possible and expected.
func (g *Generator) Generate(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("length must be >= 1, got %d", length)
	}
	if len(g.alphabet) == 0 {
		return "", ErrEmptyAlphabet
	}
	runes := make([]rune, length)
	for i := range runes {
		runes[i] = g.alphabet[g.rnd.Intn(len(g.alphabet))]
	}
	return string(runes), nil
}

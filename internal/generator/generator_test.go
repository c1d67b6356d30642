package generator

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"
)

func sortedRunes(runes []rune) string {
	sorted := append([]rune(nil), runes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return string(sorted)
}

func TestDeriveAlphabetDefault(t *testing.T) {
	alphabet, err := DeriveAlphabet(false, "")
	if err != nil {
		t.Fatalf("derive alphabet: %v", err)
	}
	if len(alphabet) != 36 {
		t.Fatalf("expected 36 characters, got %d", len(alphabet))
	}
	got := string(alphabet)
	for _, r := range "az09" {
		if !strings.ContainsRune(got, r) {
			t.Fatalf("expected alphabet to contain %q", r)
		}
	}
}

func TestDeriveAlphabetExcludesListedDigits(t *testing.T) {
	alphabet, err := DeriveAlphabet(false, "013")
	if err != nil {
		t.Fatalf("derive alphabet: %v", err)
	}
	if len(alphabet) != 33 {
		t.Fatalf("expected 33 characters, got %d", len(alphabet))
	}
	got := string(alphabet)
	for _, r := range "013" {
		if strings.ContainsRune(got, r) {
			t.Fatalf("expected %q to be excluded", r)
		}
	}
	for _, r := range "2456789" {
		if !strings.ContainsRune(got, r) {
			t.Fatalf("expected %q to be kept", r)
		}
	}
}

func TestDeriveAlphabetExclusionOrderIrrelevant(t *testing.T) {
	first, err := DeriveAlphabet(false, "135")
	if err != nil {
		t.Fatalf("derive alphabet: %v", err)
	}
	second, err := DeriveAlphabet(false, "531")
	if err != nil {
		t.Fatalf("derive alphabet: %v", err)
	}
	if sortedRunes(first) != sortedRunes(second) {
		t.Fatalf("expected identical alphabets, got %q and %q", string(first), string(second))
	}
}

func TestDeriveAlphabetNoDigits(t *testing.T) {
	alphabet, err := DeriveAlphabet(true, "13")
	if err != nil {
		t.Fatalf("derive alphabet: %v", err)
	}
	if len(alphabet) != 26 {
		t.Fatalf("expected 26 characters, got %d", len(alphabet))
	}
	for _, r := range alphabet {
		if r >= '0' && r <= '9' {
			t.Fatalf("expected no digits, got %q", r)
		}
	}
}

func TestDeriveAlphabetAllDigitsExcluded(t *testing.T) {
	alphabet, err := DeriveAlphabet(false, "0123456789")
	if err != nil {
		t.Fatalf("derive alphabet: %v", err)
	}
	if len(alphabet) != 26 {
		t.Fatalf("expected letters to remain, got %d characters", len(alphabet))
	}
}

func TestGenerateLengthAndMembership(t *testing.T) {
	alphabet, err := DeriveAlphabet(false, "")
	if err != nil {
		t.Fatalf("derive alphabet: %v", err)
	}
	gen := NewWithSource(alphabet, rand.NewSource(1))
	set := string(alphabet)
	for _, length := range []int{1, 3, 5, 39} {
		for i := 0; i < 50; i++ {
			candidate, err := gen.Generate(length)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if got := len([]rune(candidate)); got != length {
				t.Fatalf("expected length %d, got %d (%q)", length, got, candidate)
			}
			for _, r := range candidate {
				if !strings.ContainsRune(set, r) {
					t.Fatalf("candidate %q contains %q outside alphabet", candidate, r)
				}
			}
		}
	}
}

func TestGenerateNoDigitsWhenExcluded(t *testing.T) {
	alphabet, err := DeriveAlphabet(true, "5")
	if err != nil {
		t.Fatalf("derive alphabet: %v", err)
	}
	gen := NewWithSource(alphabet, rand.NewSource(7))
	for i := 0; i < 200; i++ {
		candidate, err := gen.Generate(8)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if strings.ContainsAny(candidate, "0123456789") {
			t.Fatalf("expected no digits in %q", candidate)
		}
	}
}

func TestGenerateDeterministicWithSameSeed(t *testing.T) {
	alphabet, err := DeriveAlphabet(false, "")
	if err != nil {
		t.Fatalf("derive alphabet: %v", err)
	}
	first := NewWithSource(alphabet, rand.NewSource(42))
	second := NewWithSource(alphabet, rand.NewSource(42))
	for i := 0; i < 20; i++ {
		a, err := first.Generate(6)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		b, err := second.Generate(6)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if a != b {
			t.Fatalf("expected identical sequences, got %q and %q", a, b)
		}
	}
}

func TestGenerateRejectsInvalidLength(t *testing.T) {
	alphabet, err := DeriveAlphabet(false, "")
	if err != nil {
		t.Fatalf("derive alphabet: %v", err)
	}
	gen := NewWithSource(alphabet, rand.NewSource(1))
	if _, err := gen.Generate(0); err == nil {
		t.Fatalf("expected error for zero length")
	}
}

func TestGenerateEmptyAlphabet(t *testing.T) {
	gen := NewWithSource(nil, rand.NewSource(1))
	if _, err := gen.Generate(5); !errors.Is(err, ErrEmptyAlphabet) {
		t.Fatalf("expected ErrEmptyAlphabet, got %v", err)
	}
}

package alphabet

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAlphabetSize is matched by errors returned for alphabets
	// whose size is not 2, 4, 16 or 256.
	ErrUnsupportedAlphabetSize = errors.New("unsupported alphabet size")
	// ErrAmbiguousAlphabet is matched by errors returned for alphabets that
	// contain the same symbol twice.
	ErrAmbiguousAlphabet = errors.New("ambiguous alphabet")
)

// UnsupportedSizeError reports the size of a rejected alphabet.
type UnsupportedSizeError struct {
	Size int
}

func (e *UnsupportedSizeError) Error() string {
	return fmt.Sprintf("alphabet with %d symbols is not supported: size must be one of 2, 4, 16, 256", e.Size)
}

func (e *UnsupportedSizeError) Is(target error) bool {
	return target == ErrUnsupportedAlphabetSize
}

// AmbiguousError reports a symbol that appears at two positions.
type AmbiguousError struct {
	Symbol rune
	First  int
	Second int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous alphabet: symbol %q (%U) appears at positions %d and %d", e.Symbol, e.Symbol, e.First, e.Second)
}

func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguousAlphabet
}

// Alphabet maps the values [0, N) to N distinct symbols and back.
// It is immutable once built and may be shared between goroutines.
type Alphabet struct {
	symbols []rune
	values  map[rune]byte
	width   int
	groups  int
}

// New validates symbols and returns the alphabet built from them.
// The slice is copied.
func New(symbols []rune) (*Alphabet, error) {
	width, ok := widthFor(len(symbols))
	if !ok {
		return nil, &UnsupportedSizeError{Size: len(symbols)}
	}

	a := &Alphabet{
		symbols: make([]rune, len(symbols)),
		values:  make(map[rune]byte, len(symbols)),
		width:   width,
		groups:  8 / width,
	}
	copy(a.symbols, symbols)

	for i, r := range a.symbols {
		if first, dup := a.values[r]; dup {
			return nil, &AmbiguousError{Symbol: r, First: int(first), Second: i}
		}
		a.values[r] = byte(i)
	}
	return a, nil
}

// FromString builds an alphabet from the runes of s, in order.
func FromString(s string) (*Alphabet, error) {
	return New([]rune(s))
}

// MustNew is like New but panics on error.
func MustNew(symbols []rune) *Alphabet {
	a, err := New(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// widthFor returns log2(n) for the supported sizes.
func widthFor(n int) (int, bool) {
	switch n {
	case 2:
		return 1, true
	case 4:
		return 2, true
	case 16:
		return 4, true
	case 256:
		return 8, true
	}
	return 0, false
}

// Size is the number of symbols.
func (a *Alphabet) Size() int { return len(a.symbols) }

// Width is the number of bits carried by one symbol.
func (a *Alphabet) Width() int { return a.width }

// GroupsPerByte is the number of symbols needed for one byte.
func (a *Alphabet) GroupsPerByte() int { return a.groups }

// Symbol returns the symbol for v. v must be below Size.
func (a *Alphabet) Symbol(v byte) rune { return a.symbols[v] }

// Value returns the value of symbol r, and false if r is not in the alphabet.
func (a *Alphabet) Value(r rune) (byte, bool) {
	v, ok := a.values[r]
	return v, ok
}

// Symbols returns a copy of the symbols ordered by value.
func (a *Alphabet) Symbols() []rune {
	out := make([]rune, len(a.symbols))
	copy(out, a.symbols)
	return out
}

func (a *Alphabet) String() string { return string(a.symbols) }

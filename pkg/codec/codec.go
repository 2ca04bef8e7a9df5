package codec

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/birdayz/emojibytes/pkg/alphabet"
	"github.com/birdayz/emojibytes/pkg/encoding"
)

var (
	// ErrInvalidSymbol is matched when decode input holds a symbol outside the alphabet.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrMalformedLength is matched when decode input does not split into whole bytes.
	ErrMalformedLength = errors.New("malformed length")
	// ErrInvalidUTF8 is returned by DecodeText when the decoded bytes are not text.
	ErrInvalidUTF8 = errors.New("decoded bytes are not valid UTF-8")
)

var (
	_ encoding.Encoder = (*Codec)(nil)
	_ encoding.Decoder = (*Codec)(nil)
)

// InvalidSymbolError reports the first symbol that is not part of the alphabet.
type InvalidSymbolError struct {
	Symbol rune
	// Offset is the symbol index in the input.
	Offset int
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q (%U) at offset %d: not part of the alphabet", e.Symbol, e.Symbol, e.Offset)
}

func (e *InvalidSymbolError) Is(target error) bool { return target == ErrInvalidSymbol }

// MalformedLengthError reports a symbol count that is not a multiple of the
// symbols needed per byte.
type MalformedLengthError struct {
	Length        int
	GroupsPerByte int
}

func (e *MalformedLengthError) Error() string {
	return fmt.Sprintf("malformed length: %d symbols is not a multiple of %d", e.Length, e.GroupsPerByte)
}

func (e *MalformedLengthError) Is(target error) bool { return target == ErrMalformedLength }

// Codec converts between bytes and symbols of one alphabet. Each byte is
// split into GroupsPerByte groups of Width bits, most significant first.
// A Codec is safe for concurrent use.
type Codec struct {
	abc  *alphabet.Alphabet
	mask byte
}

// New returns a codec for a. The alphabet is already validated.
func New(a *alphabet.Alphabet) *Codec {
	return &Codec{
		abc:  a,
		mask: byte(1<<a.Width() - 1),
	}
}

// Alphabet returns the alphabet the codec was built with.
func (c *Codec) Alphabet() *alphabet.Alphabet { return c.abc }

// EncodeByte returns the GroupsPerByte symbols for b.
func (c *Codec) EncodeByte(b byte) []rune {
	out := make([]rune, c.abc.GroupsPerByte())
	c.encodeByte(out, b)
	return out
}

func (c *Codec) encodeByte(dst []rune, b byte) {
	w := c.abc.Width()
	for j := range dst {
		dst[j] = c.abc.Symbol((b >> (8 - w*(j+1))) & c.mask)
	}
}

// EncodeBytes encodes p. The result holds len(p)*GroupsPerByte symbols.
func (c *Codec) EncodeBytes(p []byte) []rune {
	g := c.abc.GroupsPerByte()
	out := make([]rune, len(p)*g)
	for i, b := range p {
		c.encodeByte(out[i*g:(i+1)*g], b)
	}
	return out
}

// EncodeText encodes the UTF-8 bytes of s and returns the symbols as a string.
func (c *Codec) EncodeText(s string) string {
	return string(c.EncodeBytes([]byte(s)))
}

// DecodeBytes reverses EncodeBytes. Nothing is returned on error.
func (c *Codec) DecodeBytes(symbols []rune) ([]byte, error) {
	digits := make([]byte, len(symbols))
	for i, r := range symbols {
		v, ok := c.abc.Value(r)
		if !ok {
			return nil, &InvalidSymbolError{Symbol: r, Offset: i}
		}
		digits[i] = v
	}

	g := c.abc.GroupsPerByte()
	if len(digits)%g != 0 {
		return nil, &MalformedLengthError{Length: len(digits), GroupsPerByte: g}
	}

	w := c.abc.Width()
	out := make([]byte, len(digits)/g)
	for i := range out {
		var b byte
		for _, d := range digits[i*g : (i+1)*g] {
			b = b<<w | d
		}
		out[i] = b
	}
	return out, nil
}

// DecodeString decodes the symbols held in the UTF-8 string s.
func (c *Codec) DecodeString(s string) ([]byte, error) {
	return c.DecodeBytes([]rune(s))
}

// DecodeText decodes s and requires the result to be valid UTF-8.
func (c *Codec) DecodeText(s string) (string, error) {
	b, err := c.DecodeString(s)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// Encode implements encoding.Encoder: raw bytes in, UTF-8 symbol text out.
func (c *Codec) Encode(in []byte) ([]byte, error) {
	return []byte(string(c.EncodeBytes(in))), nil
}

// Decode implements encoding.Decoder: UTF-8 symbol text in, raw bytes out.
func (c *Codec) Decode(in []byte) ([]byte, error) {
	return c.DecodeString(string(in))
}

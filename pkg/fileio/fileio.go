package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/charmap"
)

const (
	encodedPrefix = "encoded-"
	decodedPrefix = "decoded-"
)

// ReadBinary returns the raw contents of path.
func ReadBinary(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// ReadText reads path as ISO-8859-1, one character per byte.
func ReadText(path string) (string, error) {
	data, err := ReadBinary(path)
	if err != nil {
		return "", err
	}
	text, err := Latin1(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return text, nil
}

// ReadAll drains r, typically stdin.
func ReadAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// Latin1 decodes ISO-8859-1 bytes.
func Latin1(data []byte) (string, error) {
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode as latin-1: %w", err)
	}
	return string(text), nil
}

// ReadSymbols reads an encoded symbol file. Symbols are stored as UTF-8.
func ReadSymbols(path string) (string, error) {
	data, err := ReadBinary(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile creates or truncates path and writes data to it.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteText writes text to path as ISO-8859-1, the inverse of ReadText.
// Characters above U+00FF cannot be written.
func WriteText(path, text string) error {
	data, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return fmt.Errorf("write %s as latin-1: %w", path, err)
	}
	return WriteFile(path, []byte(data))
}

// IsFile reports whether path names an existing regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// EncodedName is the default output path when encoding the file at path.
func EncodedName(path string) string {
	return prefixed(encodedPrefix, path)
}

// DecodedName is the default output path when decoding the file at path.
func DecodedName(path string) string {
	return prefixed(decodedPrefix, path)
}

func prefixed(prefix, path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, prefix+base)
}

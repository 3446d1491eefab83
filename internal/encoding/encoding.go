// Package encoding converts keys and signatures to and from text.
package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Supported encodings.
const (
	Hex    = "hex"
	Base58 = "base58"
	Base64 = "base64"
)

// Names lists the supported encodings.
var Names = []string{Hex, Base58, Base64}

// Valid reports whether name is a supported encoding.
func Valid(name string) bool {
	switch name {
	case Hex, Base58, Base64:
		return true
	}
	return false
}

// Encode renders b in the named encoding.
func Encode(name string, b []byte) (string, error) {
	switch name {
	case Hex:
		return hex.EncodeToString(b), nil
	case Base58:
		return base58.Encode(b), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(b), nil
	}
	return "", fmt.Errorf("unknown encoding %q", name)
}

// Decode parses s in the named encoding. Surrounding whitespace is ignored.
func Decode(name, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	var (
		b   []byte
		err error
	)
	switch name {
	case Hex:
		b, err = hex.DecodeString(s)
	case Base58:
		b, err = base58.Decode(s)
	case Base64:
		b, err = base64.StdEncoding.DecodeString(s)
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return b, nil
}

// DecodeSize is Decode that also requires exactly n bytes.
func DecodeSize(name, s string, n int) ([]byte, error) {
	b, err := Decode(name, s)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("expected %d bytes, got %d", n, len(b))
	}
	return b, nil
}

// Package transport converts binary frames to and from the textual
// form carried inside barcode symbols and plain-text code lists.
package transport

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/danmuck/qrsplit/internal/frame"
)

// Transcoder turns frame bytes into symbol payload text and back. The
// splitter and reassembler only ever see this interface, so tests can
// inject a no-op implementation.
type Transcoder interface {
	Encode(raw []byte) string
	Decode(code string) ([]byte, error)
	// Prefix is the fixed token every encoded frame starts with,
	// used to filter candidate lines out of a codes file.
	Prefix() string
}

// enc is unpadded base32 with the standard A-Z/2-7 alphabet. Every
// character falls inside the QR alphanumeric charset, which is what
// lets a symbol carry the alphanumeric-mode capacity.
var enc = base32.StdEncoding.WithPadding(base32.NoPadding)

// prefix covers the first 30 bits of the magic, so it is fully
// determined by the format constant.
var prefix = enc.EncodeToString(frame.Magic[:])[:6]

// Base32 is the shipped radix-32 transcoder.
type Base32 struct{}

func (Base32) Encode(raw []byte) string {
	return enc.EncodeToString(raw)
}

func (Base32) Decode(code string) ([]byte, error) {
	raw, err := enc.DecodeString(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("transport decode: %w", err)
	}
	return raw, nil
}

func (Base32) Prefix() string {
	return prefix
}

// MaxRawLen returns the largest byte count whose encoding fits in
// chars transport characters (5 payload bits per character).
func MaxRawLen(chars int) int {
	return chars * 5 / 8
}

// EncodedLen returns the number of transport characters needed for n
// raw bytes.
func EncodedLen(n int) int {
	return enc.EncodedLen(n)
}

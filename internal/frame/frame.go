// Package frame implements the qrsplit frame format: one self-describing
// binary chunk of a split file, small enough to ride inside a single
// barcode symbol.
//
// Byte layout (all integers little-endian):
//
//	0-3:    magic "QRF1"
//	4-7:    CRC-32 of the entire original file
//	8-11:   header size (everything before the body)
//	12-15:  total frame count for the file
//	16-19:  zero-based frame index
//	20-:    file name bytes, NUL terminator, zero or more zero pad bytes
//	then:   body (this frame's slice of the file)
//
// Padding sits between the name terminator and the body so that the
// final, shorter part of a file can be encoded at the same total length
// as every other part.
package frame

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Magic identifies the frame format on the wire.
var Magic = [4]byte{'Q', 'R', 'F', '1'}

const (
	fixedLen = 20 // magic + checksum + headerSize + count + index

	// MinHeader is the smallest legal header: fixed fields plus a
	// one-byte name and its NUL terminator.
	MinHeader = fixedLen + 2
)

// FormatError reports malformed frame bytes. Decode failures are
// per-frame: callers drop the frame and keep going.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "frame: " + e.Reason
}

// Frame is one decoded (or to-be-encoded) chunk.
type Frame struct {
	Checksum uint32 // CRC-32 of the whole original file
	Count    uint32 // total frames in this file's sequence
	Index    uint32 // zero-based position in the sequence
	Name     string // original file name, no NUL bytes
	Padding  int    // zero bytes after the name terminator
	Body     []byte
}

// GroupKey returns the (name, checksum) identity that groups frames of
// one original file. It doubles as the user-facing identifier in error
// reports.
func (f Frame) GroupKey() string {
	return fmt.Sprintf("%s (crc32=%08x)", f.Name, f.Checksum)
}

// Overhead returns the encoded length of a frame for name with zero
// body and zero padding. The splitter subtracts this from the symbol
// budget to find the per-frame body capacity.
func Overhead(name string) int {
	return fixedLen + len(name) + 1
}

// EncodedLen returns the total encoded length of f.
func (f Frame) EncodedLen() int {
	return fixedLen + len(f.Name) + 1 + f.Padding + len(f.Body)
}

// Encode serializes f into the canonical layout. The header size field
// is derived from the name and padding, never supplied by the caller.
func Encode(f Frame) []byte {
	headerSize := fixedLen + len(f.Name) + 1 + f.Padding
	buf := make([]byte, headerSize+len(f.Body))
	copy(buf[0:4], Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], f.Checksum)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(headerSize))
	binary.LittleEndian.PutUint32(buf[12:16], f.Count)
	binary.LittleEndian.PutUint32(buf[16:20], f.Index)
	copy(buf[fixedLen:], f.Name)
	// The NUL terminator and pad bytes are already zero.
	copy(buf[headerSize:], f.Body)
	return buf
}

// Decode parses one frame from b. The returned Frame's Body aliases b.
//
// Decode validates structure only. It never checks the body length
// against any expectation; gaps, duplicates, and corruption are the
// reassembler's concern.
func Decode(b []byte) (Frame, error) {
	if len(b) < MinHeader {
		return Frame{}, &FormatError{Reason: fmt.Sprintf("input too short: %d bytes, need at least %d", len(b), MinHeader)}
	}
	if !bytes.Equal(b[0:4], Magic[:]) {
		return Frame{}, &FormatError{Reason: fmt.Sprintf("bad magic %q", b[0:4])}
	}
	headerSize := int(binary.LittleEndian.Uint32(b[8:12]))
	if headerSize < MinHeader {
		return Frame{}, &FormatError{Reason: fmt.Sprintf("header size %d below minimum %d", headerSize, MinHeader)}
	}
	if len(b) < headerSize {
		return Frame{}, &FormatError{Reason: fmt.Sprintf("input %d bytes shorter than header size %d", len(b), headerSize)}
	}
	if b[fixedLen] == 0 {
		return Frame{}, &FormatError{Reason: "empty file name"}
	}
	if b[headerSize-1] != 0 {
		return Frame{}, &FormatError{Reason: "missing name terminator before body"}
	}
	nameLen := bytes.IndexByte(b[fixedLen:headerSize], 0)
	return Frame{
		Checksum: binary.LittleEndian.Uint32(b[4:8]),
		Count:    binary.LittleEndian.Uint32(b[12:16]),
		Index:    binary.LittleEndian.Uint32(b[16:20]),
		Name:     string(b[fixedLen : fixedLen+nameLen]),
		Padding:  headerSize - fixedLen - nameLen - 1,
		Body:     b[headerSize:],
	}, nil
}

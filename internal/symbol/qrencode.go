package symbol

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSymbolSize is the rendered edge length in pixels. Large enough
// that a version-40 code keeps several pixels per module on a 300 DPI
// print.
const DefaultSymbolSize = 1024

// QREncoder renders transport strings as QR codes.
type QREncoder struct {
	Recovery qrcode.RecoveryLevel
	Size     int // pixels per edge, DefaultSymbolSize when zero
}

func (e QREncoder) Encode(payload string) (image.Image, error) {
	q, err := qrcode.New(payload, e.Recovery)
	if err != nil {
		return nil, fmt.Errorf("render symbol: %w", err)
	}
	size := e.Size
	if size <= 0 {
		size = DefaultSymbolSize
	}
	return q.Image(size), nil
}

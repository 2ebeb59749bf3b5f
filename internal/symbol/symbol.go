// Package symbol defines the barcode rendering and detection
// boundaries and ships QR implementations of both. The codec, splitter,
// and reassembler never touch these interfaces, so they stay testable
// without a vision backend.
package symbol

import "image"

// Encoder renders one transport string into a scannable symbol image.
type Encoder interface {
	Encode(payload string) (image.Image, error)
}

// Detector extracts transport strings from one photographed or scanned
// image. max caps the number of unique payloads to look for; 0 means
// unlimited. The cap is cooperative: an in-flight detection attempt
// completes, further attempts on the same image are skipped.
type Detector interface {
	Detect(img image.Image, max int) ([]string, error)
}

// Package imgio wraps raster image loading and PNG output.
package imgio

import (
	"fmt"
	"image"
	"image/png"
	"os"

	// Register decoders for the formats a camera or scanner hands us.
	_ "image/gif"
	_ "image/jpeg"
)

// LoadFile decodes the image at path.
func LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// WritePNG encodes img to path as PNG.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode PNG %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write PNG %s: %w", path, err)
	}
	return nil
}

package symbol

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	qrmulti "github.com/makiuchi-d/gozxing/multi/qrcode"
)

// QRDetector finds QR payloads in an image with the zxing multi-symbol
// reader. It sweeps the available binarizers as its image-adjustment
// search; TRY_HARDER makes the reader scan all four orientations.
type QRDetector struct{}

var binarizers = []func(gozxing.LuminanceSource) gozxing.Binarizer{
	func(src gozxing.LuminanceSource) gozxing.Binarizer { return gozxing.NewHybridBinarizer(src) },
	func(src gozxing.LuminanceSource) gozxing.Binarizer { return gozxing.NewGlobalHistgramBinarizer(src) },
}

func (QRDetector) Detect(img image.Image, max int) ([]string, error) {
	src := gozxing.NewLuminanceSourceFromImage(img)
	reader := qrmulti.NewQRCodeMultiReader()
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	seen := make(map[string]struct{})
	var out []string
	for _, newBinarizer := range binarizers {
		if max > 0 && len(out) >= max {
			break
		}
		bmp, err := gozxing.NewBinaryBitmap(newBinarizer(src))
		if err != nil {
			continue
		}
		// A NotFoundException here only means this binarizer saw
		// nothing; the next one may still succeed.
		results, err := reader.DecodeMultiple(bmp, hints)
		if err != nil {
			continue
		}
		for _, r := range results {
			text := r.GetText()
			if _, dup := seen[text]; dup {
				continue
			}
			seen[text] = struct{}{}
			out = append(out, text)
			if max > 0 && len(out) >= max {
				break
			}
		}
	}
	return out, nil
}

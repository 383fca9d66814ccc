package imagepkg

import (
	"image/color"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize = 64
	maxQRSize = 1024
)

// GenerateQRPNG returns PNG bytes of a QR code for text, drawn in fg on
// white. size is clamped to [64, 1024].
func GenerateQRPNG(text string, size int, fg color.Color) ([]byte, error) {
	if text == "" {
		return nil, newError(KindInvalidInfo, "qr text is empty")
	}
	size = min(max(size, minQRSize), maxQRSize)

	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, wrapError(KindInvalidInfo, err, "build qr code")
	}
	if fg != nil {
		q.ForegroundColor = fg
	}
	b, err := q.PNG(size)
	if err != nil {
		return nil, wrapError(KindEncodeFailed, err, "encode qr png")
	}
	return b, nil
}

package imagepkg

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func TestGenerateQRPNG(t *testing.T) {
	tests := []struct {
		size, want int
	}{
		{256, 256},
		{10, minQRSize},
		{5000, maxQRSize},
	}
	for _, tt := range tests {
		data, err := GenerateQRPNG("http://localhost:8080/anime/5114", tt.size, color.NRGBA{A: 255})
		if err != nil {
			t.Fatalf("GenerateQRPNG(size=%d) error = %v", tt.size, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode qr: %v", err)
		}
		if b := img.Bounds(); b.Dx() != tt.want || b.Dy() != tt.want {
			t.Errorf("size %d gave %dx%d, want %d", tt.size, b.Dx(), b.Dy(), tt.want)
		}
	}
}

func TestGenerateQRPNGEmpty(t *testing.T) {
	if _, err := GenerateQRPNG("", 256, nil); !IsKind(err, KindInvalidInfo) {
		t.Errorf("GenerateQRPNG(\"\") error = %v, want INVALID_INFO", err)
	}
}

package imagepkg

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const maskSupersample = 5

// DiagonalMask returns the LeftWidth x CanvasHeight alpha mask of the
// backdrop panel: opaque left of a slanted edge running from the top-right
// corner down to LeftWidth-Offset at the bottom.
//
// The polygon is filled at 5x resolution and downsampled, which gives the
// slanted edge sub-pixel anti-aliasing.
func DiagonalMask(cfg Config) *image.Alpha {
	w, h := cfg.LeftWidth(), cfg.CanvasHeight
	k := float64(maskSupersample)

	dc := gg.NewContext(w*maskSupersample, h*maskSupersample)
	dc.MoveTo(0, 0)
	dc.LineTo(float64(w)*k, 0)
	dc.LineTo(float64(w-cfg.Offset)*k, float64(h)*k)
	dc.LineTo(0, float64(h)*k)
	dc.ClosePath()
	dc.SetRGB(1, 1, 1)
	dc.Fill()

	small := imaging.Resize(dc.Image(), w, h, imaging.Lanczos)

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range mask.Pix {
		mask.Pix[i] = small.Pix[i*4+3]
	}
	return mask
}

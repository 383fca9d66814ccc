package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PosterTargetWidth is the width a w x h poster would have when scaled to the
// canvas height with its aspect ratio kept.
func PosterTargetWidth(cfg Config, w, h int) int {
	return int(float64(cfg.CanvasHeight) / float64(h) * float64(w))
}

// FitPoster produces the right-hand poster panel, exactly
// CutoffWidth x CanvasHeight.
//
// Wide posters are cropped to a centred vertical strip and scaled. Posters
// narrower than the panel are stretched to fill it; the aspect change is
// intentional.
func FitPoster(src image.Image, cfg Config) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if PosterTargetWidth(cfg, w, h) > cfg.CutoffWidth {
		cropWidth := max(h*cfg.CutoffWidth/cfg.CanvasHeight, 1)
		src = cropCentered(src, cropWidth, h)
	}
	return imaging.Resize(src, cfg.CutoffWidth, cfg.CanvasHeight, imaging.Lanczos)
}

// FitBackdrop scales a backdrop to the canvas height and takes the centred
// strip of LeftWidth.
func FitBackdrop(src image.Image, cfg Config) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	bw := max(int(float64(cfg.CanvasHeight)/float64(h)*float64(w)), 1)
	resized := imaging.Resize(src, bw, cfg.CanvasHeight, imaging.Lanczos)
	return cropCentered(resized, cfg.LeftWidth(), cfg.CanvasHeight)
}

// SelfBackdrop builds the left panel from the fitted poster panel when no
// backdrop exists: scale to LeftWidth, then take the centred horizontal band.
func SelfBackdrop(panel image.Image, cfg Config) *image.NRGBA {
	lw := cfg.LeftWidth()
	pw, ph := panel.Bounds().Dx(), panel.Bounds().Dy()
	rh := max(int(float64(lw)/float64(pw)*float64(ph)), 1)
	resized := imaging.Resize(panel, lw, rh, imaging.Lanczos)
	return cropCentered(resized, lw, cfg.CanvasHeight)
}

// cropCentered cuts a cw x ch rectangle centred on src. Parts of the
// rectangle outside src are opaque black, so the result always has the
// requested size.
func cropCentered(src image.Image, cw, ch int) *image.NRGBA {
	b := src.Bounds()
	left := floorDiv(b.Dx()-cw, 2)
	top := floorDiv(b.Dy()-ch, 2)

	dst := imaging.New(cw, ch, color.NRGBA{A: 255})
	return imaging.Paste(dst, src, image.Pt(-left, -top))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

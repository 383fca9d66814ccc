package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	_ "golang.org/x/image/webp" // posters from some catalogues are webp
)

// Fixed card layout, in canvas pixels.
const (
	blurSigma     = 10
	tintAlpha     = 135
	tintFactor    = 0.12
	titleMaxLen   = 20
	titleMaxLines = 3
	titleSpacing  = 15
	makersGap     = 30
	makersMaxW    = 700

	textLeft = 50
)

var (
	white        = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	subtitleGrey = color.NRGBA{R: 255, G: 255, B: 255, A: 150}
	chipFill     = color.NRGBA{R: 255, G: 255, B: 255, A: 50}

	subtitlePos = image.Pt(textLeft, 50)
	titlePos    = image.Pt(textLeft, 100)
	starPos     = image.Pt(textLeft, 432)
	scorePos    = image.Pt(118, 428)
)

type stage int

const (
	stageInit stage = iota
	stagePosterFitted
	stageBackdropBlended
	stageTextLaid
	stageComposited
	stageEncoded
)

func (s stage) String() string {
	switch s {
	case stageInit:
		return "init"
	case stagePosterFitted:
		return "poster-fitted"
	case stageBackdropBlended:
		return "backdrop-blended"
	case stageTextLaid:
		return "text-laid"
	case stageComposited:
		return "composited"
	case stageEncoded:
		return "encoded"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// pipeline holds the layers of a single render. It is used once and by one
// goroutine.
type pipeline struct {
	cfg    Config
	info   PosterInfo
	src    SourceImages
	accent color.NRGBA
	assets *Assets
	logger *log.Logger

	stage stage

	poster   image.Image
	backdrop image.Image
	panel    *image.NRGBA
	canvas   *image.NRGBA
	overlay  *image.RGBA
	result   *image.NRGBA
	faces    []font.Face
	out      bytes.Buffer
}

type step struct {
	next stage
	run  func() error
}

// run executes the steps in order and stops at the first failure. Every
// layer is dropped before run returns, whatever the outcome.
func (p *pipeline) run() ([]byte, error) {
	defer p.release()

	steps := []step{
		{stagePosterFitted, p.fitPoster},
		{stageBackdropBlended, p.blendBackdrop},
		{stageTextLaid, p.layText},
		{stageComposited, p.composite},
		{stageEncoded, p.encode},
	}
	for _, s := range steps {
		start := time.Now()
		if err := s.run(); err != nil {
			p.logger.Debug("render aborted", "stage", p.stage, "next", s.next, "err", err)
			return nil, fmt.Errorf("%s -> %s: %w", p.stage, s.next, err)
		}
		p.stage = s.next
		p.logger.Debug("render stage", "stage", p.stage, "elapsed", time.Since(start))
	}

	out := make([]byte, p.out.Len())
	copy(out, p.out.Bytes())
	return out, nil
}

func (p *pipeline) release() {
	for _, f := range p.faces {
		f.Close()
	}
	p.faces = nil
	p.poster, p.backdrop = nil, nil
	p.panel, p.canvas, p.result = nil, nil, nil
	p.overlay = nil
	p.out.Reset()
}

func (p *pipeline) fitPoster() error {
	var err error
	if p.poster, err = decodeImage(p.src.Poster, "poster"); err != nil {
		return err
	}
	if p.src.hasBackdrop() {
		if p.backdrop, err = decodeImage(p.src.Backdrop, "backdrop"); err != nil {
			return err
		}
	}

	p.panel = FitPoster(p.poster, p.cfg)
	p.canvas = imaging.New(p.cfg.CanvasWidth, p.cfg.CanvasHeight, color.NRGBA{A: 255})
	p.canvas = imaging.Paste(p.canvas, p.panel, image.Pt(p.cfg.CanvasWidth-p.panel.Bounds().Dx(), 0))
	p.poster = nil
	return nil
}

func (p *pipeline) blendBackdrop() error {
	var left *image.NRGBA
	if p.backdrop != nil {
		left = FitBackdrop(p.backdrop, p.cfg)
		p.backdrop = nil
	} else {
		left = SelfBackdrop(p.panel, p.cfg)
	}

	dom := DominantColor(p.panel, DefaultColorQuality)
	tint := imaging.New(left.Bounds().Dx(), left.Bounds().Dy(), color.NRGBA{
		R: uint8(float64(dom.R) * tintFactor),
		G: uint8(float64(dom.G) * tintFactor),
		B: uint8(float64(dom.B) * tintFactor),
		A: tintAlpha,
	})
	left = imaging.Overlay(left, tint, image.Point{}, 1.0)
	left = imaging.Blur(left, blurSigma)

	mask := DiagonalMask(p.cfg)
	draw.DrawMask(p.canvas, mask.Bounds(), left, image.Point{}, mask, image.Point{}, draw.Over)
	p.panel = nil
	return nil
}

func (p *pipeline) layText() error {
	bold, err := p.face(p.assets.Bold, 65)
	if err != nil {
		return err
	}
	normal, err := p.face(p.assets.Bold, 35)
	if err != nil {
		return err
	}
	small, err := p.face(p.assets.Medium, 25)
	if err != nil {
		return err
	}
	tagFace, err := p.face(p.assets.Bold, 24)
	if err != nil {
		return err
	}

	p.overlay = image.NewRGBA(image.Rect(0, 0, p.cfg.CanvasWidth, p.cfg.CanvasHeight))
	dc := gg.NewContextForRGBA(p.overlay)

	drawText(dc, small, p.info.Subtitle, subtitlePos, subtitleGrey)

	lines := strings.Split(WrapTitle(p.info.Title, titleMaxLen, titleMaxLines), "\n")
	m := bold.Metrics()
	advance := m.Height.Ceil() + titleSpacing
	for i, line := range lines {
		drawText(dc, bold, line, titlePos.Add(image.Pt(0, i*advance)), white)
	}
	titleBottom := titlePos.Y + (len(lines)-1)*advance + m.Ascent.Ceil() + m.Descent.Ceil()

	makers := Truncate(strings.Join(p.info.Makers, ", "), measurer(normal), makersMaxW)
	drawText(dc, normal, makers, image.Pt(textLeft, titleBottom+makersGap), p.accent)

	star := recolor(p.assets.Star, p.accent)
	draw.Draw(p.overlay, star.Bounds().Add(starPos), star, image.Point{}, draw.Over)
	drawText(dc, bold, p.info.Score, scorePos, white)

	layout := DefaultTagLayout()
	for _, c := range PackTags(p.info.Tags, measurer(tagFace), layout) {
		dc.DrawRoundedRectangle(c.X, c.Y, c.Width, c.Height, layout.Radius)
		dc.SetColor(chipFill)
		dc.Fill()
		dc.SetFontFace(tagFace)
		dc.SetColor(white)
		dc.DrawString(c.Text, c.TextX, c.TextY+float64(tagFace.Metrics().Ascent.Ceil()))
	}
	return nil
}

func (p *pipeline) composite() error {
	p.result = imaging.Overlay(p.canvas, p.overlay, image.Point{}, 1.0)
	p.canvas, p.overlay = nil, nil
	return nil
}

func (p *pipeline) encode() error {
	if err := imaging.Encode(&p.out, p.result, imaging.PNG); err != nil {
		return wrapError(KindEncodeFailed, err, "encode png")
	}
	return nil
}

// face creates a font face owned by this render; release closes it.
func (p *pipeline) face(f *opentype.Font, size float64) (font.Face, error) {
	face, err := newFace(f, size)
	if err != nil {
		return nil, wrapError(KindAssetMissing, err, "font face %.0fpt", size)
	}
	p.faces = append(p.faces, face)
	return face, nil
}

func decodeImage(data []byte, what string) (image.Image, error) {
	if len(data) == 0 {
		return nil, newError(KindDecodeFailed, "%s image is empty", what)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, wrapError(KindDecodeFailed, err, "decode %s", what)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, newError(KindDecodeFailed, "%s image has no pixels", what)
	}
	// Transparent areas show black, never a hole in the card.
	bg := imaging.New(b.Dx(), b.Dy(), color.NRGBA{A: 255})
	return imaging.Overlay(bg, img, image.Point{}, 1.0), nil
}

// drawText draws s with its top edge at pt.
func drawText(dc *gg.Context, face font.Face, s string, pt image.Point, c color.Color) {
	dc.SetFontFace(face)
	dc.SetColor(c)
	dc.DrawString(s, float64(pt.X), float64(pt.Y+face.Metrics().Ascent.Ceil()))
}

func measurer(face font.Face) MeasureFunc {
	return func(s string) float64 {
		return float64(font.MeasureString(face, s)) / 64
	}
}

// recolor paints every visible pixel of icon with c, keeping the icon's alpha.
func recolor(icon *image.NRGBA, c color.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(icon.Bounds())
	for i := 0; i+3 < len(icon.Pix); i += 4 {
		if a := icon.Pix[i+3]; a > 0 {
			out.Pix[i] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = a
		}
	}
	return out
}

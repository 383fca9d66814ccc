package imagepkg

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/opentype"
)

//go:embed assets/star.png
var starPNG []byte

// AssetPaths overrides the embedded fonts and score icon. Empty fields use
// the embedded defaults.
type AssetPaths struct {
	BoldFont   string `toml:"bold_font"`
	MediumFont string `toml:"medium_font"`
	StarIcon   string `toml:"star_icon"`
}

// Assets are the static resources of the card. They are loaded once and
// shared read-only by concurrent renders; font faces are created per render.
type Assets struct {
	Bold   *opentype.Font
	Medium *opentype.Font
	Star   *image.NRGBA
}

// LoadAssets parses the fonts and the star icon. Any configured path that
// cannot be read or parsed is an ASSET_MISSING error.
func LoadAssets(p AssetPaths) (*Assets, error) {
	bold, err := loadFont(p.BoldFont, gobold.TTF)
	if err != nil {
		return nil, err
	}
	medium, err := loadFont(p.MediumFont, gomedium.TTF)
	if err != nil {
		return nil, err
	}

	data, err := readAsset(p.StarIcon, starPNG)
	if err != nil {
		return nil, err
	}
	star, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, wrapError(KindAssetMissing, err, "decode star icon")
	}

	return &Assets{Bold: bold, Medium: medium, Star: imaging.Clone(star)}, nil
}

// DefaultAssets loads the embedded fonts and icon.
func DefaultAssets() (*Assets, error) {
	return LoadAssets(AssetPaths{})
}

func loadFont(path string, fallback []byte) (*opentype.Font, error) {
	data, err := readAsset(path, fallback)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, wrapError(KindAssetMissing, err, "parse font %q", path)
	}
	return f, nil
}

func readAsset(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(KindAssetMissing, err, "read asset %q", path)
	}
	return data, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}

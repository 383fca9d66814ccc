package imagepkg

import (
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

var accentHex = [...]string{
	"#f9c74f",
	"#f8961e",
	"#f94144",
	"#90be6d",
	"#43aa8b",
	"#4d9de0",
	"#e15a97",
	"#b388eb",
}

var accentPalette = func() [len(accentHex)]color.NRGBA {
	var out [len(accentHex)]color.NRGBA
	for i, h := range accentHex {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		r, g, b := c.RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}()

// AccentPalette returns a copy of the accent colours a render draws from.
func AccentPalette() []color.NRGBA {
	out := make([]color.NRGBA, len(accentPalette))
	copy(out, accentPalette[:])
	return out
}

// PickAccent draws one accent colour. A nil rng uses the process-wide source.
func PickAccent(rng *rand.Rand) color.NRGBA {
	if rng == nil {
		return accentPalette[rand.IntN(len(accentPalette))]
	}
	return accentPalette[rng.IntN(len(accentPalette))]
}

package imagepkg

import "strings"

// Ellipsis marks truncated text.
const Ellipsis = "…"

// MeasureFunc returns the rendered width of s in pixels.
type MeasureFunc func(s string) float64

// WrapTitle greedily packs the words of title into at most maxLines lines of
// at most maxLineLen runes, joined with "\n".
//
// Words longer than maxLineLen are cut to maxLineLen-3 runes plus an
// ellipsis first. When the title needs more lines than allowed, the last
// finished line is replaced by its first maxLineLen runes plus an ellipsis,
// so that line may exceed maxLineLen by the ellipsis.
func WrapTitle(title string, maxLineLen, maxLines int) string {
	var (
		lines     []string
		current   []string
		lineCount int
	)
	maxLines = max(maxLines, 1)

	for _, word := range strings.Fields(title) {
		if runeLen(word) > maxLineLen {
			word = cutRunes(word, maxLineLen-3) + Ellipsis
		}
		if runeLen(strings.Join(append(current, word), " ")) <= maxLineLen {
			current = append(current, word)
		} else {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
			lineCount++
		}
		if lineCount == maxLines {
			break
		}
	}

	if lineCount != maxLines {
		lines = append(lines, strings.Join(current, " "))
	} else {
		last := len(lines) - 1
		lines[last] = cutRunes(lines[last], maxLineLen) + Ellipsis
	}
	return strings.Join(lines, "\n")
}

// Truncate shortens text to roughly maxWidth pixels. Glyphs are assumed to be
// of uniform width, so the cut point is a linear estimate from the measured
// width of the whole string rather than a search over real glyph metrics.
// A single glyph that does not fit truncates to the empty string.
func Truncate(text string, measure MeasureFunc, maxWidth float64) string {
	width := measure(text)
	if width <= maxWidth {
		return text
	}
	if runeLen(text) <= 1 {
		return ""
	}
	cutoff := int(maxWidth / width * float64(runeLen(text)))
	return cutRunes(text, max(cutoff-2, 0)) + Ellipsis
}

// TagLayout positions the genre chips row.
type TagLayout struct {
	StartX     float64
	Y          float64
	MaxX       float64
	HPad       float64
	ChipHeight float64
	Radius     float64
}

// DefaultTagLayout is the chip row used on the 1200x628 card.
func DefaultTagLayout() TagLayout {
	return TagLayout{
		StartX:     50,
		Y:          538,
		MaxX:       750,
		HPad:       10,
		ChipHeight: 40,
		Radius:     7,
	}
}

// Chip is one laid out tag badge.
type Chip struct {
	Text          string
	X, Y          float64
	Width, Height float64
	TextX, TextY  float64
}

// Right is the x coordinate of the chip's right edge.
func (c Chip) Right() float64 {
	return c.X + c.Width
}

// PackTags lays tags out left to right on a single row. The first tag that
// does not fit ends the row; it and every later tag are dropped.
func PackTags(tags []string, measure MeasureFunc, l TagLayout) []Chip {
	var chips []Chip
	x := l.StartX
	for _, tag := range tags {
		tw := measure(tag)
		if x+tw+l.HPad*4 > l.MaxX {
			break
		}
		chips = append(chips, Chip{
			Text:   tag,
			X:      x,
			Y:      l.Y,
			Width:  tw + l.HPad*2,
			Height: l.ChipHeight,
			TextX:  x + l.HPad,
			TextY:  l.Y + float64(int(l.HPad)/2),
		})
		x += tw + l.HPad*4
	}
	return chips
}

func runeLen(s string) int {
	return len([]rune(s))
}

func cutRunes(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if n >= len(r) {
		return s
	}
	return string(r[:n])
}

package imagepkg

import (
	"strings"
	"testing"
)

func TestWrapTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		maxLen   int
		maxLines int
		want     string
	}{
		{"short", "Short", 20, 3, "Short"},
		{"single line", "Attack on Titan", 20, 3, "Attack on Titan"},
		{"empty", "", 20, 3, ""},
		{"two lines", "Fullmetal Alchemist Brotherhood", 20, 3, "Fullmetal Alchemist\nBrotherhood"},
		{"overflow", "One Two Three Four Five Six Seven", 10, 3, "One Two\nThree Four\nFive Six…"},
		{"exactly three lines", "aaaa bbbb cccc", 4, 3, "aaaa\nbbbb\ncccc"},
		{"overflow drops remainder", "aaaa bbbb cccc dddd", 4, 3, "aaaa\nbbbb\ncccc…"},
		{"long word", "Supercalifragilisticexpialidocious", 20, 3, "Supercalifragilis…"},
		{"extra whitespace", "  Cowboy   Bebop  ", 20, 3, "Cowboy Bebop"},
		{"multibyte", "進撃の巨人 The Final Season", 20, 3, "進撃の巨人 The Final\nSeason"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapTitle(tt.title, tt.maxLen, tt.maxLines); got != tt.want {
				t.Errorf("WrapTitle(%q, %d, %d) = %q, want %q", tt.title, tt.maxLen, tt.maxLines, got, tt.want)
			}
		})
	}
}

func TestWrapTitleLineBounds(t *testing.T) {
	titles := []string{
		"The Melancholy of Haruhi Suzumiya",
		"That Time I Got Reincarnated as a Slime",
		"Neon Genesis Evangelion: The End of Evangelion",
		"A B C D E F G H I J K L M N O P Q R S T U V W X Y Z",
		"Pneumonoultramicroscopicsilicovolcanoconiosis and friends",
	}
	for _, title := range titles {
		got := WrapTitle(title, 20, 3)
		lines := strings.Split(got, "\n")
		if len(lines) > 3 {
			t.Errorf("WrapTitle(%q) has %d lines", title, len(lines))
		}
		for _, line := range lines {
			n := runeLen(strings.TrimSuffix(line, Ellipsis))
			if n > 20 {
				t.Errorf("WrapTitle(%q): line %q has %d runes before the ellipsis", title, line, n)
			}
		}
	}
}

// fixedWidth measures every rune as w pixels.
func fixedWidth(w float64) MeasureFunc {
	return func(s string) float64 { return float64(runeLen(s)) * w }
}

func TestTruncate(t *testing.T) {
	measure := fixedWidth(14)

	if got := Truncate("Wit Studio", measure, 700); got != "Wit Studio" {
		t.Errorf("Truncate(short) = %q", got)
	}

	long := strings.Repeat("a", 100) // 1400px
	got := Truncate(long, measure, 700)
	if want := strings.Repeat("a", 48) + Ellipsis; got != want {
		t.Errorf("Truncate(long) = %q, want %q", got, want)
	}
}

func TestTruncateWideGlyphs(t *testing.T) {
	measure := fixedWidth(800)
	tests := []struct{ in, want string }{
		{"W", ""},
		{"漢", ""},
		{"WW", Ellipsis},
		{"WWWW", Ellipsis},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, measure, 700)
		if got != tt.want {
			t.Errorf("Truncate(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if runeLen(got) >= runeLen(tt.in) {
			t.Errorf("Truncate(%q) = %q is not shorter", tt.in, got)
		}
	}
}

func TestTruncateIsShorter(t *testing.T) {
	measure := fixedWidth(9)
	for n := 1; n <= 200; n++ {
		text := strings.Repeat("x", n)
		got := Truncate(text, measure, 700)
		if measure(text) <= 700 {
			if got != text {
				t.Errorf("n=%d: fitting text changed to %q", n, got)
			}
			continue
		}
		if !strings.HasSuffix(got, Ellipsis) {
			t.Errorf("n=%d: %q lacks the ellipsis", n, got)
		}
		if runeLen(got) >= n {
			t.Errorf("n=%d: truncated to %d runes", n, runeLen(got))
		}
		if measure(got) > 700 {
			t.Errorf("n=%d: truncated width %.0f exceeds 700", n, measure(got))
		}
	}
}

func TestTruncateTinyWidth(t *testing.T) {
	if got := Truncate("Madhouse", fixedWidth(10), 5); got != Ellipsis {
		t.Errorf("Truncate(tiny width) = %q, want %q", got, Ellipsis)
	}
}

func TestPackTags(t *testing.T) {
	l := DefaultTagLayout()
	measure := fixedWidth(10)

	tags := []string{"Action", "Comedy", "Drama", "Thriller", "Romance", "Mystery", "Fantasy"}
	chips := PackTags(tags, measure, l)

	wantX := []float64{50, 150, 250, 340, 460, 570}
	if len(chips) != len(wantX) {
		t.Fatalf("PackTags placed %d chips, want %d", len(chips), len(wantX))
	}
	for i, c := range chips {
		if c.Text != tags[i] {
			t.Errorf("chip %d = %q, want %q", i, c.Text, tags[i])
		}
		if c.X != wantX[i] {
			t.Errorf("chip %d x = %v, want %v", i, c.X, wantX[i])
		}
		if c.Right() > l.MaxX {
			t.Errorf("chip %d right edge %v exceeds %v", i, c.Right(), l.MaxX)
		}
		if want := measure(c.Text) + 2*l.HPad; c.Width != want {
			t.Errorf("chip %d width = %v, want %v", i, c.Width, want)
		}
		if c.Y != l.Y || c.Height != l.ChipHeight {
			t.Errorf("chip %d at y=%v h=%v", i, c.Y, c.Height)
		}
		if c.TextX != c.X+l.HPad || c.TextY != l.Y+5 {
			t.Errorf("chip %d text at (%v, %v)", i, c.TextX, c.TextY)
		}
	}
}

func TestPackTagsStopsAtFirstMiss(t *testing.T) {
	tags := []string{"Action", strings.Repeat("W", 80), "Drama"}
	chips := PackTags(tags, fixedWidth(10), DefaultTagLayout())
	if len(chips) != 1 || chips[0].Text != "Action" {
		t.Errorf("PackTags = %+v, want only Action", chips)
	}
}

func TestPackTagsEmpty(t *testing.T) {
	if chips := PackTags(nil, fixedWidth(10), DefaultTagLayout()); len(chips) != 0 {
		t.Errorf("PackTags(nil) = %+v", chips)
	}
}

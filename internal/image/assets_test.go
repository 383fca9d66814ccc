package imagepkg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultAssets(t *testing.T) {
	a := testAssets(t)
	if a.Bold == nil || a.Medium == nil {
		t.Fatal("embedded fonts not parsed")
	}
	if b := a.Star.Bounds(); b.Dx() != 56 || b.Dy() != 56 {
		t.Errorf("star icon = %dx%d, want 56x56", b.Dx(), b.Dy())
	}

	face, err := newFace(a.Bold, 65)
	if err != nil {
		t.Fatalf("newFace() error = %v", err)
	}
	defer face.Close()
	if w := measurer(face)("Attack on Titan"); w <= 0 {
		t.Errorf("measured width = %v", w)
	}
}

func TestLoadAssetsMissing(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(garbage, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := map[string]AssetPaths{
		"missing font":   {BoldFont: filepath.Join(dir, "nope.ttf")},
		"unparsed font":  {MediumFont: garbage},
		"missing icon":   {StarIcon: filepath.Join(dir, "star.png")},
		"undecoded icon": {StarIcon: garbage},
	}
	for name, p := range tests {
		if _, err := LoadAssets(p); !IsKind(err, KindAssetMissing) {
			t.Errorf("%s: LoadAssets() error = %v, want ASSET_MISSING", name, err)
		}
	}
}

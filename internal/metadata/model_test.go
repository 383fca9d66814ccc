package metadata

import (
	"errors"
	"reflect"
	"testing"
)

func TestFormatScore(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8.5, "85%"},
		{10, "100%"},
		{0, "0%"},
		{7.25, "72%"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.in); got != tt.want {
			t.Errorf("FormatScore(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitGenres(t *testing.T) {
	got := SplitGenres([]string{"Action & Adventure", "Drama", "Sci-Fi & Fantasy", " "})
	want := []string{"Action", "Adventure", "Drama", "Sci-Fi", "Fantasy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitGenres() = %v, want %v", got, want)
	}
	if got := SplitGenres(nil); got != nil {
		t.Errorf("SplitGenres(nil) = %v", got)
	}
}

func TestStatusError(t *testing.T) {
	if err := statusError(404); !errors.Is(err, ErrNotFound) {
		t.Errorf("statusError(404) = %v", err)
	}
	if err := statusError(503); !errors.Is(err, ErrUnavailable) {
		t.Errorf("statusError(503) = %v", err)
	}
}

package imagepkg

import (
	"context"
	"errors"
	"testing"
)

type mapFetcher map[string][]byte

func (m mapFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if b, ok := m[url]; ok {
		return b, nil
	}
	return nil, errors.New("404 " + url)
}

func TestFetchSources(t *testing.T) {
	f := mapFetcher{
		"p": []byte("poster"),
		"b": []byte("backdrop"),
	}
	tests := []struct {
		name         string
		poster, back string
		wantErr      bool
		wantBackdrop bool
	}{
		{"both", "p", "b", false, true},
		{"poster only", "p", "", false, false},
		{"missing poster url", "", "b", true, false},
		{"poster fails", "x", "b", true, false},
		{"backdrop fails", "p", "x", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := FetchSources(context.Background(), f, tt.poster, tt.back)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FetchSources() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if src.Poster != nil || src.Backdrop != nil {
					t.Error("partial sources returned with an error")
				}
				return
			}
			if string(src.Poster) != "poster" {
				t.Errorf("poster = %q", src.Poster)
			}
			if src.hasBackdrop() != tt.wantBackdrop {
				t.Errorf("hasBackdrop() = %v, want %v", src.hasBackdrop(), tt.wantBackdrop)
			}
		})
	}
}

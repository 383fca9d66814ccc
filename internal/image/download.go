package imagepkg

import (
	"context"
	"fmt"
)

// Fetcher returns the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetchSources downloads the poster and, when backdropURL is not empty, the
// backdrop. A failed download fails the whole call; there is no retry.
func FetchSources(ctx context.Context, f Fetcher, posterURL, backdropURL string) (SourceImages, error) {
	var src SourceImages
	if posterURL == "" {
		return src, fmt.Errorf("poster url is empty")
	}

	var err error
	if src.Poster, err = f.Fetch(ctx, posterURL); err != nil {
		return SourceImages{}, fmt.Errorf("fetch poster: %w", err)
	}
	if backdropURL != "" {
		if src.Backdrop, err = f.Fetch(ctx, backdropURL); err != nil {
			return SourceImages{}, fmt.Errorf("fetch backdrop: %w", err)
		}
	}
	return src, nil
}

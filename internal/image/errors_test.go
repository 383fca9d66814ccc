package imagepkg

import (
	"errors"
	"fmt"
	"testing"
)

func TestRenderErrorChain(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := fmt.Errorf("init -> poster-fitted: %w", wrapError(KindDecodeFailed, cause, "decode %s", "poster"))

	if !IsKind(err, KindDecodeFailed) {
		t.Errorf("IsKind(%v, DECODE_FAILED) = false", err)
	}
	if IsKind(err, KindEncodeFailed) {
		t.Error("IsKind matched the wrong kind")
	}
	if !errors.Is(err, cause) {
		t.Error("cause is not reachable through Unwrap")
	}
	if want := "init -> poster-fitted: DECODE_FAILED: decode poster: unexpected EOF"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestKindOfForeignError(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != "" {
		t.Errorf("KindOf(plain error) = %q", got)
	}
	if got := KindOf(nil); got != "" {
		t.Errorf("KindOf(nil) = %q", got)
	}
	if got := newError(KindAssetMissing, "no font").Error(); got != "ASSET_MISSING: no font" {
		t.Errorf("Error() = %q", got)
	}
}

package imagepkg

import (
	"errors"
	"fmt"
)

// ErrorKind is a machine-readable render failure category.
type ErrorKind string

const (
	KindDecodeFailed ErrorKind = "DECODE_FAILED"
	KindAssetMissing ErrorKind = "ASSET_MISSING"
	KindInvalidInfo  ErrorKind = "INVALID_INFO"
	KindEncodeFailed ErrorKind = "ENCODE_FAILED"
)

// RenderError is returned by every failing render. The pipeline never panics
// on bad input; callers switch on Kind.
type RenderError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, format string, args ...any) *RenderError {
	return &RenderError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, cause error, format string, args ...any) *RenderError {
	return &RenderError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether any RenderError in err's chain has the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// KindOf extracts the kind of err, or "" when err is not a RenderError.
func KindOf(err error) ErrorKind {
	var e *RenderError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrEncoding         = errors.New("invalid utf-8 encoding")
	ErrEmptyCorpus      = errors.New("empty corpus")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrDegenerateInput  = errors.New("degenerate input")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicate        = errors.New("duplicate entry")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

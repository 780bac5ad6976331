package core

import (
	"errors"
)

var (
	ErrUnsupportedKind       = errors.New("unsupported asset kind")
	ErrFetchFailed           = errors.New("fetch failed")
	ErrDecodeFailed          = errors.New("decode failed")
	ErrTimeout               = errors.New("asset load timed out")
	ErrDuplicateID           = errors.New("duplicate asset id in batch")
	ErrEmptyID               = errors.New("asset id is empty")
	ErrClosed                = errors.New("coordinator already closed")
	ErrUnknownManifestFormat = errors.New("unknown manifest format")
)

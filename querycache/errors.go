package querycache

import "errors"

// Configuration errors.
var (
	// ErrInvalidMaxSize indicates Config.MaxSize is zero or negative.
	ErrInvalidMaxSize = errors.New("querycache: max size must be positive")

	// ErrInvalidTTL indicates Config.TTL is zero or negative.
	ErrInvalidTTL = errors.New("querycache: ttl must be positive")
)

// Runtime errors.
var (
	// ErrNilCache indicates a nil Cache was provided.
	ErrNilCache = errors.New("querycache: cache is nil")

	// ErrNilPipeline indicates a nil pipeline function was provided.
	ErrNilPipeline = errors.New("querycache: pipeline is nil")
)

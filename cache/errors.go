package cache

import "errors"

// Construction errors. Each geometry validation failure wraps one of these
// sentinels so callers can tell the conditions apart with errors.Is.
var (
	ErrBlockSizeNotPowerOfTwo = errors.New("cache block size is not a power of two")
	ErrZeroSets               = errors.New("number of cache sets must be non-zero")
	ErrSetCountNotPowerOfTwo  = errors.New("number of cache sets is not a power of two")
	ErrInvalidAddressWidth    = errors.New("address width must be between 1 and 64 bits")
	ErrAddressWidthTooNarrow  = errors.New("address width cannot hold the offset and index fields")
)

// ErrLegacyReplacement is returned by Access when the cache was built with
// WithLegacyReplacement and a miss occurs in a set-associative geometry.
var ErrLegacyReplacement = errors.New("legacy replacement policy only handles direct-mapped caches")

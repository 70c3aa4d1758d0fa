package memo

import (
	"fmt"
	"strings"
)

// Keyer is implemented by argument types that provide their own cache
// key. Custom keys are recommended for performance-sensitive types:
// the default debug formatting can be slow for large values and may
// collide for types whose formatted representations are ambiguous.
type Keyer interface {
	// CacheKey returns a string uniquely identifying this value
	// within one cache instance.
	CacheKey() string
}

// Key derives a cache key from a computation's input arguments.
// Arguments implementing Keyer contribute their CacheKey; everything
// else is formatted descriptively with %+v. Multiple arguments are
// joined with ":".
//
// The default formatting is a convenience, not a guarantee: implement
// Keyer on argument types where key stability or formatting cost
// matters.
func Key(args ...any) string {
	if len(args) == 1 {
		return keyOf(args[0])
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = keyOf(a)
	}
	return strings.Join(parts, ":")
}

func keyOf(arg any) string {
	if k, ok := arg.(Keyer); ok {
		return k.CacheKey()
	}
	return fmt.Sprintf("%+v", arg)
}

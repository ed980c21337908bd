package pathfilter

import "errors"

// ErrInvalidPattern is returned by New when a pattern does not compile.
// The wrapped message names the offending pattern.
var ErrInvalidPattern = errors.New("invalid path pattern")

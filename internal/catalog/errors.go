package catalog

import (
	"errors"
)

// ErrUpstreamUnavailable signals that every discovery strategy failed,
// so no catalog page could be assembled. It leads to a "502 Bad Gateway" response.
var ErrUpstreamUnavailable = errors.New("upstream movie API unavailable")

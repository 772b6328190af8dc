package source

import "errors"

// Sentinel kinds for record source errors.
var (
	ErrMissingCredentials = errors.New("missing source credentials")
	ErrFetch              = errors.New("fetch records failed")
	ErrStatus             = errors.New("unexpected source status")
	ErrDecode             = errors.New("decode records failed")
)

package color

import "errors"

// ErrMalformedColor indicates a color string does not match the expected
// parenthesized, comma-separated numeric form.
var ErrMalformedColor = errors.New("malformed color string")

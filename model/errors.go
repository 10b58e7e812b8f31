package model

import "errors"

// ErrInvalidArgument is wrapped by every generator that rejects a count,
// ratio or progression it cannot work with.
var ErrInvalidArgument = errors.New("invalid argument")

package common

import (
	"errors"
)

var ErrStoreUnavailable = errors.New("metadata store unavailable")
var ErrStoreRejected = errors.New("metadata store rejected the assignment")
var ErrMalformedAssignment = errors.New("malformed assignment")
var ErrFileNotFound = errors.New("assignment file not found")
var ErrIOFailure = errors.New("i/o failure")

package repository

import "errors"

// ErrNotFound is returned when a requested file or record does not exist.
// Callers treat it as "no data", never as a failure.
var ErrNotFound = errors.New("record not found")

// ErrAccessDenied is returned when a relative path resolves outside the data root.
var ErrAccessDenied = errors.New("access denied")

// ErrMalformed is returned when a cache file exists but cannot be decoded.
var ErrMalformed = errors.New("malformed cache file")

// ErrInvalidIdentifier is returned for election ids or country codes that are not plain slugs.
var ErrInvalidIdentifier = errors.New("invalid identifier")

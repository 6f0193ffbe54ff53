package domain

import "errors"

var (
	// ErrKeyNotFound is returned by a Store when a key has no value.
	ErrKeyNotFound = errors.New("key not found")
	// ErrQuizNotFound indicates a quiz ID is absent from its bundle.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrBundleNotFound indicates a bundle ID is absent from the registry.
	ErrBundleNotFound = errors.New("quiz bundle not found")
	// ErrNoCandidates is returned when every eligible quiz in a bundle has been
	// excluded; the practice session is complete.
	ErrNoCandidates = errors.New("no practice candidates left")
)

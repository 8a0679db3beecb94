package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrEmptyPlaylist    = errors.New("no songs available to play")
	ErrUnsupportedMedia = errors.New("only audio files are accepted")
)

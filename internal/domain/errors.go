package domain

import "errors"

var (
	// ErrProviderUnavailable indicates the trivia provider returned a
	// non-success, malformed, or empty response.
	ErrProviderUnavailable = errors.New("question provider unavailable")
	// ErrUserNotFound is returned when a user id has no stored profile.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoPendingSession is returned when an answer arrives for a user with
	// no question awaiting grading.
	ErrNoPendingSession = errors.New("no pending quiz session")
)

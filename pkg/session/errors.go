package session

import "errors"

var (
	// ErrSessionNotFound indicates the store holds no live data for an id.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrNilSession is returned when a nil session is committed or destroyed.
	ErrNilSession = errors.New("session.nil")

	// ErrStoreFailure wraps backend errors returned by a Store.
	ErrStoreFailure = errors.New("session.store_failure")
)

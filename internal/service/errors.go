package service

import "errors"

var (
	// ErrFeatureDisabled is returned when the collaborator a feature needs
	// was not configured.
	ErrFeatureDisabled = errors.New("feature not configured")

	// ErrUnauthenticated is returned when an operation needs a user id and
	// none was supplied.
	ErrUnauthenticated = errors.New("user id required")

	// ErrUpstream wraps failures of remote collaborators that have no local
	// fallback.
	ErrUpstream = errors.New("upstream service failed")
)

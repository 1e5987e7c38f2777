package frontier

import "errors"

var (
	// ErrInvalidFromVersion indicates the starting version of a Spec cannot be parsed.
	ErrInvalidFromVersion = errors.New("invalid fromVersion")

	// ErrChannelNotFound indicates a Spec names a channel the package does not have.
	ErrChannelNotFound = errors.New("channel not found")
)

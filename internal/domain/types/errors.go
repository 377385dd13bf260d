package types

import "errors"

// Sentinel kinds for score input errors.
var (
	ErrInvalidScore = errors.New("invalid score")
)

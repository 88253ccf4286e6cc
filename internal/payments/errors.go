package payments

import "errors"

var (
	// ErrNotFound means a referenced plan, user or session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the request or event payload had the wrong shape.
	ErrValidation = errors.New("invalid request")
)

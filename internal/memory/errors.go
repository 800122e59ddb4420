package memory

import "errors"

var (
	ErrEmptyScope = errors.New("memory: app name and user id are required")
	ErrEmptyQuery = errors.New("memory: query is required")
)

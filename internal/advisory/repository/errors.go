package repository

import "errors"

var (
	ErrEmptySessionID = errors.New("summary: session id is required")
	ErrUnknownField   = errors.New("summary: unknown field")
)

package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyKey        = errors.New("session key is empty")
)

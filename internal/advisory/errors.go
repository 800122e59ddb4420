package advisory

import "errors"

var ErrEmptySessionID = errors.New("session_id is required")

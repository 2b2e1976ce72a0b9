package imports

import "errors"

var (
	ErrEmptyPayload   = errors.New("import payload is empty")
	ErrInvalidPayload = errors.New("import payload is not valid JSON")
	ErrUnauthorized   = errors.New("import requires an authenticated caller")
)

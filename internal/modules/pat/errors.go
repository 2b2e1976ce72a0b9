package pat

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidName   = errors.New("token name is required and must be at most 100 characters")
	ErrInvalidExpiry = errors.New("expires_in_days must be between 0 and 3650")
	ErrNotFound      = errors.New("token not found")
	ErrInvalidToken  = errors.New("invalid token")
)

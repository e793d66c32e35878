package service

import "errors"

// Sentinel errors of the service layer. Handlers translate each into
// exactly one HTTP status; anything unrecognized becomes an opaque 500.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

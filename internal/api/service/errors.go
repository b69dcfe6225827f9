package service

import "errors"

// Validation errors returned by the business layer. The web UI treats
// every rejected operation as a silent no-op; returning typed errors here
// lets callers (and tests) see why an operation was refused while leaving
// the silent presentation to the HTTP layer.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")

	ErrForbidden        = errors.New("caller is not allowed to perform this operation")
	ErrNotFound         = errors.New("record not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotAvailable     = errors.New("book is not available for the requested dates")
	ErrNotReserved      = errors.New("rental is not in reserved status")
	ErrAlreadyRated     = errors.New("rental already has a rating")
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 5")
)

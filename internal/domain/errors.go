package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrVersionMismatch    = errors.New("version mismatch")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

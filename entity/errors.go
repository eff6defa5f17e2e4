package entity

import "errors"

// Sentinel errors shared across the service layers. Handlers map these to
// HTTP status codes with errors.Is; wrapped messages carry the detail.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrConflict          = errors.New("conflict")
	ErrNoTeams           = errors.New("no teams found")
	ErrPersistence       = errors.New("persistence failure")
	ErrNotification      = errors.New("notification failed")
)

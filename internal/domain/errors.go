package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrNoRecipes        = errors.New("no recipes loaded")
	ErrSessionNotActive = errors.New("session is not active")
	ErrAlreadyExists    = errors.New("already exists")
	ErrNotImplemented   = errors.New("not implemented")
)

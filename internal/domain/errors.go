package domain

import "errors"

// Wheel validation and lookup errors
var (
	ErrWheelNotFound   = errors.New("wheel not found")
	ErrWheelNameTaken  = errors.New("a wheel with this name already exists")
	ErrNameRequired    = errors.New("wheel name is required")
	ErrOptionsRequired = errors.New("at least one option is required")
	ErrBlankOption     = errors.New("options cannot be blank")
)

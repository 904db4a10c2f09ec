package domain

import "errors"

// ErrRecordNotFound is returned when a record key cannot be found in the store.
var ErrRecordNotFound = errors.New("record not found")

// ErrInvalidSlot is returned when a color slot other than primary, secondary or failure is addressed.
var ErrInvalidSlot = errors.New("invalid color slot")

// ErrInvalidValue is returned when a constant value is not a finite number.
var ErrInvalidValue = errors.New("invalid constant value")

// ErrUsage is returned when a command is missing required arguments.
var ErrUsage = errors.New("usage error")

// ErrEmptyInput is returned when there is nothing to dispatch.
var ErrEmptyInput = errors.New("empty input")

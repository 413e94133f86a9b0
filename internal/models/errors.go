package models

import "errors"

// ErrBadCredentials is returned by admin login on a password mismatch.
var ErrBadCredentials = errors.New("invalid password")

// ValidationError marks a lead submission missing a required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

// StorageError wraps a database failure so handlers can distinguish it
// from rejected input.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage failure during " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

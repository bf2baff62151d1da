package store

import "errors"

var (
	// ErrValidation is returned before any mutation when input is rejected.
	ErrValidation = errors.New("invalid data")
	// ErrConflict is returned when a reservation overlaps an existing one.
	ErrConflict = errors.New("schedule conflict with another reservation")
	// ErrNotFound is benign: the id is unknown and nothing changed.
	ErrNotFound = errors.New("record not found")
	// ErrStorage means the dataset could not be written even after cleanup.
	ErrStorage = errors.New("could not save data")
	// ErrImport means the import payload was malformed; nothing was applied.
	ErrImport = errors.New("could not import data, check the file format")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

package errors

import (
	"errors"
	"fmt"
)

var (
	// Input errors 🏷️
	ErrValidation     = errors.New("❌ invalid label or pack name")
	ErrDuplicateLabel = errors.New("❌ duplicate label")

	// Intake errors 🖼️
	ErrDecode  = errors.New("❌ image could not be decoded")
	ErrTooTall = errors.New("❌ image exceeds height ceiling")
	ErrStaging = errors.New("❌ image could not be staged")

	// Allocation errors 🔢
	ErrCapacityExceeded = errors.New("❌ too many labels for code point window")

	// Output errors 📦
	ErrLayout  = errors.New("❌ pack layout failed")
	ErrArchive = errors.New("❌ pack archive failed")

	// Configuration errors ⚙️
	ErrInvalidSettings = errors.New("❌ invalid settings")
)

// StageError reports which pipeline stage failed and why.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

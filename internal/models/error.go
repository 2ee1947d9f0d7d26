package models

import "fmt"

// AppError is a non-fatal, row-scoped problem found while generating prompts.
type AppError struct {
	Row     int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Row %d: %s - %v", e.Row, e.Message, e.Err)
	}
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

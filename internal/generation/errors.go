package generation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceNotFound indicates the source path does not resolve to a file.
	ErrSourceNotFound = errors.New("source not found")

	// ErrSchemaMismatch indicates one or more prompt columns are absent from the header.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrSourceRead indicates the source exists but could not be read as a table.
	ErrSourceRead = errors.New("source read error")

	// ErrOutputWrite indicates the prompt file could not be opened or written.
	ErrOutputWrite = errors.New("output write error")

	// ErrInvalidOptions indicates the call arguments break their preconditions.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrRowSkipped marks a row that lacked one of the prompt fields. It is
	// never returned from Generate; it is carried by the run warnings.
	ErrRowSkipped = errors.New("row skipped")
)

// Error is a fatal generation failure. Kind is one of the sentinels above,
// so callers can match with errors.Is.
type Error struct {
	Kind    error
	Path    string
	Missing []string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing required columns %v", e.Missing)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// internal/errors/errors.go
package appErrors

import "fmt"

// MissingSourceError means the leads file does not exist yet.
type MissingSourceError struct {
	Path string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("leads file %s not found", e.Path)
}

func NewMissingSource(path string) error {
	return &MissingSourceError{Path: path}
}

// EmptyInputError means the leads file exists but holds no rows.
type EmptyInputError struct {
	Path string
}

func (e *EmptyInputError) Error() string {
	if e.Path == "" {
		return "no leads to show"
	}
	return fmt.Sprintf("no leads found in %s", e.Path)
}

func NewEmptyInput(path string) error {
	return &EmptyInputError{Path: path}
}

// InvalidFilterError rejects a single filter parameter.
type InvalidFilterError struct {
	Param  string
	Value  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter %s=%q: %s", e.Param, e.Value, e.Reason)
}

func NewInvalidFilter(param, value, reason string) error {
	return &InvalidFilterError{Param: param, Value: value, Reason: reason}
}

// StoreIOError wraps a read or write failure on the feedback store.
type StoreIOError struct {
	Path string
	Op   string
	Err  error
}

func (e *StoreIOError) Error() string {
	return fmt.Sprintf("feedback store %s (%s): %v", e.Op, e.Path, e.Err)
}

func (e *StoreIOError) Unwrap() error {
	return e.Err
}

func NewStoreIO(path, op string, err error) error {
	return &StoreIOError{Path: path, Op: op, Err: err}
}

package orm

import (
	"errors"
	"strings"
)

var (
	ErrInvalidMetadata      = errors.New("invalid metadata")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrExecutionFailure     = errors.New("execution failure")
	ErrNoConnection         = errors.New("no connection")
	ErrNotFound             = errors.New("record not found")
	ErrMustBePointer        = errors.New("must be pointer")
)

type (
	// ExecError is returned when the database reports a failure while
	// executing a generated statement. It matches ErrExecutionFailure with
	// errors.Is and unwraps to the driver error.
	ExecError struct {
		SQL string
		Err error
	}
)

func (e *ExecError) Error() string {
	return "execution failure: " + strings.TrimSpace(e.SQL) + ": " + e.Err.Error()
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

func (e *ExecError) Is(target error) bool {
	return target == ErrExecutionFailure
}

func execError(sql string, err error) error {
	if err == nil {
		return nil
	}
	return &ExecError{SQL: sql, Err: err}
}

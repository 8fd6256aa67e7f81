package interp

import "fmt"

// RuntimeError reports a failure discovered while executing IR: an
// out-of-range array index, a division by zero, a malformed %input line, an
// arity mismatch at %call, or similar -- anything the IR parser could not
// have caught ahead of time.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func errf(format string, args ...interface{}) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

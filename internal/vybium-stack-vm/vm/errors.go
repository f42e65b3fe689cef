package vm

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is raised by Div when the divisor is the additive identity
var ErrDivisionByZero = errors.New("division by zero")

// ExecutionError aborts a run. IP is the index of the failing instruction.
type ExecutionError struct {
	IP          int
	Instruction string
	Err         error
}

// Error returns the error message
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution failed at ip %d (%s): %v", e.IP, e.Instruction, e.Err)
}

// Unwrap returns the cause of the error
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

package vybiumstackvm

import "fmt"

// ErrorCode represents a stack VM error code
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig represents an invalid configuration error
	ErrInvalidConfig

	// ErrVMExecution represents a VM execution error
	ErrVMExecution

	// ErrProofGeneration represents a proof generation error
	ErrProofGeneration

	// ErrProofVerification represents a proof verification error
	ErrProofVerification

	// ErrInvalidProof represents an invalid proof error
	ErrInvalidProof

	// ErrInvalidInput represents an invalid input error
	ErrInvalidInput
)

var errorCodeNames = map[ErrorCode]string{
	ErrUnknown:           "unknown",
	ErrInvalidConfig:     "invalid config",
	ErrVMExecution:       "vm execution",
	ErrProofGeneration:   "proof generation",
	ErrProofVerification: "proof verification",
	ErrInvalidProof:      "invalid proof",
	ErrInvalidInput:      "invalid input",
}

// String returns the name of the error code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// VMError represents a stack VM error
type VMError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *VMError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vybium-stack-vm error [%s]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("vybium-stack-vm error [%s]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *VMError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *VMError) Is(target error) bool {
	t, ok := target.(*VMError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

package codegen

import (
	"fmt"
)

// Error codes
const (
	ErrCodeNoTypes = "NO_TYPES_REQUESTED"
	ErrCodeWrite   = "OUTPUT_WRITE_ERROR"
)

// Error messages
const (
	ErrMsgNoTypes = "No types requested: pass at least one --type"
	ErrMsgWrite   = "Failed to write %s: %s"
)

// GenerateError represents errors raised while driving a generator run
type GenerateError struct {
	Message string
	Code    string
}

func (e *GenerateError) Error() string {
	return e.Message
}

// NewError creates a new GenerateError with the given code and message
func NewError(code, message string) *GenerateError {
	return &GenerateError{
		Code:    code,
		Message: message,
	}
}

// NewErrorf creates a new GenerateError with the given code and formatted message
func NewErrorf(code, format string, args ...any) *GenerateError {
	return &GenerateError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common error constructors
func NewNoTypesError() *GenerateError {
	return NewError(ErrCodeNoTypes, ErrMsgNoTypes)
}

func NewWriteError(path string, err error) *GenerateError {
	return NewErrorf(ErrCodeWrite, ErrMsgWrite, path, err.Error())
}

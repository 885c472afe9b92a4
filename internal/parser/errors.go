package parser

import (
	"fmt"
)

// Error codes
const (
	ErrCodeLoad         = "PACKAGE_LOAD_ERROR"
	ErrCodeSyntax       = "SYNTAX_ERROR"
	ErrCodeEmptyPackage = "EMPTY_PACKAGE"
	ErrCodeSplitPackage = "SPLIT_PACKAGE"
	ErrCodeUnknownType  = "UNKNOWN_TYPE"
)

// Error messages
const (
	ErrMsgLoad         = "Failed to read package directory %s: %s"
	ErrMsgSyntax       = "Failed to parse %s: %s"
	ErrMsgEmptyPackage = "No Go source files in %s"
	ErrMsgSplitPackage = "Directory %s mixes packages %s and %s"
	ErrMsgUnknownType  = "Type %s not declared in package %s (%s)"
)

// ParseError represents errors that can occur while loading the target package
type ParseError struct {
	Message string
	Code    string
}

func (e *ParseError) Error() string {
	return e.Message
}

// NewError creates a new ParseError with the given code and message
func NewError(code, message string) *ParseError {
	return &ParseError{
		Code:    code,
		Message: message,
	}
}

// NewErrorf creates a new ParseError with the given code and formatted message
func NewErrorf(code, format string, args ...any) *ParseError {
	return &ParseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common error constructors
func NewLoadError(dir string, err error) *ParseError {
	return NewErrorf(ErrCodeLoad, ErrMsgLoad, dir, err.Error())
}

func NewSyntaxError(path string, err error) *ParseError {
	return NewErrorf(ErrCodeSyntax, ErrMsgSyntax, path, err.Error())
}

func NewEmptyPackageError(dir string) *ParseError {
	return NewErrorf(ErrCodeEmptyPackage, ErrMsgEmptyPackage, dir)
}

func NewSplitPackageError(dir, found, extra string) *ParseError {
	return NewErrorf(ErrCodeSplitPackage, ErrMsgSplitPackage, dir, found, extra)
}

func NewUnknownTypeError(typeName, pkg, dir string) *ParseError {
	return NewErrorf(ErrCodeUnknownType, ErrMsgUnknownType, typeName, pkg, dir)
}

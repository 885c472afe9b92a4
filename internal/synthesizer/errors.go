package synthesizer

import (
	"fmt"
	"strings"
)

// Error codes
const (
	ErrCodeUnsupportedShape        = "UNSUPPORTED_SHAPE"
	ErrCodeMalformedAnnotation     = "MALFORMED_ANNOTATION"
	ErrCodeMissingDefaultVariant   = "MISSING_DEFAULT_VARIANT"
	ErrCodeAmbiguousDefaultVariant = "AMBIGUOUS_DEFAULT_VARIANT"
	ErrCodeRender                  = "RENDER_ERROR"
)

// Error messages
const (
	ErrMsgUnsupportedShape        = "Type %s cannot take defaults: %s"
	ErrMsgMalformedAnnotation     = "Type %s has a malformed annotation: %s"
	ErrMsgMissingDefaultVariant   = "Type %s has no default variant: mark exactly one constant with //%sdefault"
	ErrMsgAmbiguousDefaultVariant = "Type %s has %d default variants (%s): exactly one constant may carry the marker"
	ErrMsgRender                  = "Failed to render generated code for %s: %s"
)

// SynthesisError represents errors raised while generating a default clause
type SynthesisError struct {
	Message string
	Code    string
}

func (e *SynthesisError) Error() string {
	return e.Message
}

// NewError creates a new SynthesisError with the given code and message
func NewError(code, message string) *SynthesisError {
	return &SynthesisError{
		Code:    code,
		Message: message,
	}
}

// NewErrorf creates a new SynthesisError with the given code and formatted message
func NewErrorf(code, format string, args ...any) *SynthesisError {
	return &SynthesisError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common error constructors
func NewUnsupportedShapeError(typeName, reason string) *SynthesisError {
	return NewErrorf(ErrCodeUnsupportedShape, ErrMsgUnsupportedShape, typeName, reason)
}

func NewMalformedAnnotationError(typeName, detail string) *SynthesisError {
	return NewErrorf(ErrCodeMalformedAnnotation, ErrMsgMalformedAnnotation, typeName, detail)
}

func NewMissingDefaultVariantError(typeName, directivePrefix string) *SynthesisError {
	return NewErrorf(ErrCodeMissingDefaultVariant, ErrMsgMissingDefaultVariant, typeName, directivePrefix)
}

func NewAmbiguousDefaultVariantError(typeName string, marked []string) *SynthesisError {
	return NewErrorf(ErrCodeAmbiguousDefaultVariant, ErrMsgAmbiguousDefaultVariant,
		typeName, len(marked), strings.Join(marked, ", "))
}

func NewRenderError(typeName string, err error) *SynthesisError {
	return NewErrorf(ErrCodeRender, ErrMsgRender, typeName, err.Error())
}

// Package errors provides error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates a malformed request document
	TypeInput Type = "INVALID_JSON"

	// TypeValidation indicates one or more fields failed validation
	TypeValidation Type = "VALIDATION_ERROR"

	// TypeUnknownVariant indicates an unrecognized enumeration value
	TypeUnknownVariant Type = "UNKNOWN_VARIANT"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeCatalog indicates invalid provider reference data
	TypeCatalog Type = "CATALOG_ERROR"

	// TypeInternal indicates a defect in the computation
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{Type: errType, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// IsType checks if an error, or anything it wraps, is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Catalog creates a catalog error
func Catalog(message string, cause error) *Error {
	return Wrap(TypeCatalog, message, cause)
}

// FieldProblem describes a single invalid field in a request.
type FieldProblem struct {
	Field   string `json:"field"`
	Code    Type   `json:"code"`
	Message string `json:"message"`

	variant *UnknownVariantError
}

// ValidationError collects every field problem found in a request.
type ValidationError struct {
	Problems []FieldProblem `json:"problems"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Field+": "+p.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the unknown-variant problems so errors.As can find them.
func (e *ValidationError) Unwrap() []error {
	var errs []error
	for _, p := range e.Problems {
		if p.variant != nil {
			errs = append(errs, p.variant)
		}
	}
	return errs
}

// Add records a field problem.
func (e *ValidationError) Add(field, message string) {
	e.Problems = append(e.Problems, FieldProblem{Field: field, Code: TypeValidation, Message: message})
}

// Addf records a formatted field problem.
func (e *ValidationError) Addf(field, format string, args ...interface{}) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// AddVariant records an unknown enumeration value.
func (e *ValidationError) AddVariant(v *UnknownVariantError) {
	e.Problems = append(e.Problems, FieldProblem{
		Field:   v.Field,
		Code:    TypeUnknownVariant,
		Message: v.Error(),
		variant: v,
	})
}

// HasProblems reports whether any problem was recorded.
func (e *ValidationError) HasProblems() bool {
	return len(e.Problems) > 0
}

// OnlyVariants reports whether every problem is an unknown variant.
func (e *ValidationError) OnlyVariants() bool {
	if len(e.Problems) == 0 {
		return false
	}
	for _, p := range e.Problems {
		if p.Code != TypeUnknownVariant {
			return false
		}
	}
	return true
}

// Code returns the response code for the collected problems.
func (e *ValidationError) Code() Type {
	if e.OnlyVariants() {
		return TypeUnknownVariant
	}
	return TypeValidation
}

// UnknownVariantError reports a value outside a closed enumeration.
type UnknownVariantError struct {
	Field   string
	Value   string
	Allowed []string
}

// Error implements the error interface
func (e *UnknownVariantError) Error() string {
	allowed := append([]string(nil), e.Allowed...)
	sort.Strings(allowed)
	return fmt.Sprintf("unknown value %q (allowed: %s)", e.Value, strings.Join(allowed, ", "))
}

// InternalComputationError marks a defect in the cost model. Validated input
// should never produce one.
type InternalComputationError struct {
	Stage string
	Cause error
}

// Error implements the error interface
func (e *InternalComputationError) Error() string {
	return fmt.Sprintf("internal computation error in %s: %v", e.Stage, e.Cause)
}

// Unwrap returns the underlying error
func (e *InternalComputationError) Unwrap() error {
	return e.Cause
}

// Internal creates an internal computation error
func Internal(stage string, cause error) *InternalComputationError {
	return &InternalComputationError{Stage: stage, Cause: cause}
}

// HTTPStatus maps an error to the status code the API should return.
func HTTPStatus(err error) int {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var uv *UnknownVariantError
	if stderrors.As(err, &uv) {
		return http.StatusBadRequest
	}
	if IsType(err, TypeInput) || IsType(err, TypeValidation) || IsType(err, TypeUnknownVariant) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// As is errors.As, re-exported so callers need only one errors import.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

package typeschema

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeUnresolvable  ErrorType = "unresolvable"
	ErrorTypeNaming        ErrorType = "naming"
	ErrorTypeCatalog       ErrorType = "catalog"
	ErrorTypeInternal      ErrorType = "internal"
)

// ErrConfiguration matches every *ConfigError through errors.Is.
var ErrConfiguration = errors.New("typeschema: configuration error")

// SchemaError represents errors raised while preparing or running a generation pass.
type SchemaError struct {
	Type     ErrorType      `json:"type"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Identity TypeIdentity   `json:"identity,omitempty"`
	Field    string         `json:"field,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
	Cause    error          `json:"-"`
}

func (e *SchemaError) Error() string {
	if e.Identity != "" && e.Field != "" {
		return fmt.Sprintf("[%s:%s] type %s field '%s': %s", e.Type, e.Code, e.Identity, e.Field, e.Message)
	}
	if e.Identity != "" {
		return fmt.Sprintf("[%s:%s] type %s: %s", e.Type, e.Code, e.Identity, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("[%s:%s] field '%s': %s", e.Type, e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a single detail to a SchemaError
func (e *SchemaError) WithDetail(key string, value any) *SchemaError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause adds a cause to a SchemaError
func (e *SchemaError) WithCause(cause error) *SchemaError {
	e.Cause = cause
	return e
}

// WithIdentity adds type context to a SchemaError
func (e *SchemaError) WithIdentity(id TypeIdentity) *SchemaError {
	e.Identity = id
	return e
}

// WithField adds field context to a SchemaError
func (e *SchemaError) WithField(field string) *SchemaError {
	e.Field = field
	return e
}

// Error and warning codes
const (
	ErrCodeMissingOption      = "MISSING_OPTION"
	ErrCodeInvalidOption      = "INVALID_OPTION"
	ErrCodeUnresolvableField  = "UNRESOLVABLE_FIELD"
	ErrCodeDuplicateProperty  = "DUPLICATE_PROPERTY"
	ErrCodeEmptyPropertyName  = "EMPTY_PROPERTY_NAME"
	ErrCodeInvalidCatalog     = "INVALID_CATALOG"
	ErrCodeDuplicateType      = "DUPLICATE_TYPE"
	ErrCodeTypeNotFound       = "TYPE_NOT_FOUND"
	ErrCodeUnresolvedWarnings = "UNRESOLVED_WARNINGS"
)

// NewSchemaError creates a new SchemaError
func NewSchemaError(errorType ErrorType, code, message string) *SchemaError {
	return &SchemaError{
		Type:    errorType,
		Code:    code,
		Message: message,
	}
}

// NewCatalogError creates a catalog parsing error
func NewCatalogError(code, message string) *SchemaError {
	return NewSchemaError(ErrorTypeCatalog, code, message)
}

// NewTypeNotFoundError creates an error for a type missing from a catalog
func NewTypeNotFoundError(id TypeIdentity) *SchemaError {
	return NewSchemaError(ErrorTypeCatalog, ErrCodeTypeNotFound, "type not found").WithIdentity(id)
}

// ConfigError represents a configuration validation error. It is fatal and
// surfaces before any type is walked.
type ConfigError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ConfigError) Error() string {
	return "config validation error for field '" + e.Field + "': " + e.Message
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// IsConfigError reports whether err carries a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Warning is a non-fatal issue found during a generation pass. Warnings never
// abort the pass; they are collected on the pass diagnostics.
type Warning struct {
	Code     string       `json:"code"`
	Path     string       `json:"path"`
	Identity TypeIdentity `json:"identity,omitempty"`
	Message  string       `json:"message"`
}

func (w Warning) Error() string {
	if w.Identity != "" {
		return fmt.Sprintf("%s at %s (%s): %s", w.Code, w.Path, w.Identity, w.Message)
	}
	return fmt.Sprintf("%s at %s: %s", w.Code, w.Path, w.Message)
}

// NewUnresolvableFieldWarning reports a field or element type that could not be
// classified; the generator emits an empty object schema in its place.
func NewUnresolvableFieldWarning(path string, id TypeIdentity, reason string) Warning {
	return Warning{Code: ErrCodeUnresolvableField, Path: path, Identity: id, Message: reason}
}

// NewDuplicatePropertyWarning reports a property dropped because an earlier field
// resolved to the same name.
func NewDuplicatePropertyWarning(path string, id TypeIdentity, name string) Warning {
	return Warning{Code: ErrCodeDuplicateProperty, Path: path, Identity: id, Message: fmt.Sprintf("property %q already defined", name)}
}

// Diagnostics is the side channel on which a generation pass reports warnings.
type Diagnostics interface {
	HasWarnings() bool
	Warnings() []Warning
	// Strict returns an error combining every warning, or nil when there are none.
	Strict() error
}

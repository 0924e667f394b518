package errors

import (
	"fmt"
	"time"
)

// Error types for the osmtags system
type ErrorType string

const (
	// Caller input errors
	ErrorTypeFormat           ErrorType = "format"
	ErrorTypeValueType        ErrorType = "type"
	ErrorTypeMissingParameter ErrorType = "missing_parameter"

	// Dataset errors
	ErrorTypeDataset ErrorType = "dataset"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"

	// Internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// FormatError represents malformed tag input text: a missing separator, an
// empty key, malformed JSON or a JSON value that is not an object.
type FormatError struct {
	Type       ErrorType
	Message    string
	Line       int // 1-based; 0 when the error is not tied to a line
	Underlying error
}

// NewFormatError creates a format error that is not tied to a line
func NewFormatError(message string) *FormatError {
	return &FormatError{Type: ErrorTypeFormat, Message: message}
}

// NewLineFormatError creates a format error for a specific input line
func NewLineFormatError(message string, line int) *FormatError {
	return &FormatError{Type: ErrorTypeFormat, Message: message, Line: line}
}

// WithUnderlying attaches the error that caused the format failure
func (e *FormatError) WithUnderlying(err error) *FormatError {
	e.Underlying = err
	return e
}

// Error implements the error interface
func (e *FormatError) Error() string {
	msg := e.Message
	if e.Underlying != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	if e.Line > 0 {
		return fmt.Sprintf("invalid tag format at line %d: %s", e.Line, msg)
	}
	return fmt.Sprintf("invalid tag format: %s", msg)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *FormatError) Unwrap() error {
	return e.Underlying
}

// TypeError reports a tag value that is not a string
type TypeError struct {
	Type    ErrorType
	Message string
	Key     string
}

// NewTypeError creates a new value type error for key
func NewTypeError(message, key string) *TypeError {
	return &TypeError{Type: ErrorTypeValueType, Message: message, Key: key}
}

// Error implements the error interface
func (e *TypeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s (key %q)", e.Message, e.Key)
	}
	return e.Message
}

// MissingParameterError is returned by the dispatch layer when a required
// operation argument is absent
type MissingParameterError struct {
	Type      ErrorType
	Tool      string
	Parameter string
}

// NewMissingParameterError creates a new missing parameter error
func NewMissingParameterError(tool, parameter string) *MissingParameterError {
	return &MissingParameterError{
		Type:      ErrorTypeMissingParameter,
		Tool:      tool,
		Parameter: parameter,
	}
}

// Error implements the error interface
func (e *MissingParameterError) Error() string {
	if e.Tool == "" {
		return fmt.Sprintf("missing required parameter %q", e.Parameter)
	}
	return fmt.Sprintf("%s: missing required parameter %q", e.Tool, e.Parameter)
}

// DatasetError represents a failure to read or decode a dataset file
type DatasetError struct {
	Type       ErrorType
	File       string
	Entry      string
	Underlying error
	Timestamp  time.Time
}

// NewDatasetError creates a new dataset error
func NewDatasetError(file string, err error) *DatasetError {
	return &DatasetError{
		Type:       ErrorTypeDataset,
		File:       file,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithEntry records which entry of the file failed to decode
func (e *DatasetError) WithEntry(entry string) *DatasetError {
	e.Entry = entry
	return e
}

// Error implements the error interface
func (e *DatasetError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("dataset %s: entry %q: %v", e.File, e.Entry, e.Underlying)
	}
	return fmt.Sprintf("dataset %s: %v", e.File, e.Underlying)
}

// Unwrap returns the underlying error
func (e *DatasetError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// ErrOrNil returns nil when no errors were collected
func (e *MultiError) ErrOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Package errors provides structured error handling for nmapreport operations.
// It defines error codes, error types, and provides utilities for creating
// and handling errors with context and structured information.
package errors

import (
	"fmt"
)

// ErrorCode represents different types of errors that can occur.
type ErrorCode string

const (
	// General errors.
	CodeUnknown       ErrorCode = "UNKNOWN"
	CodeValidation    ErrorCode = "VALIDATION"
	CodeConfiguration ErrorCode = "CONFIGURATION"

	// Input errors. These are raised per document and skip only the
	// document that caused them.
	CodeBadExtension   ErrorCode = "BAD_EXTENSION"
	CodeFileNotFound   ErrorCode = "FILE_NOT_FOUND"
	CodeFilePermission ErrorCode = "FILE_PERMISSION"
	CodeParseFailed    ErrorCode = "PARSE_FAILED"

	// Pipeline errors. Any of these ends the run with a failure exit.
	CodeNoInput     ErrorCode = "NO_INPUT"
	CodeNoRecords   ErrorCode = "NO_RECORDS"
	CodeEmptyFilter ErrorCode = "EMPTY_FILTER"

	// Output errors.
	CodeRenderFailed    ErrorCode = "RENDER_FAILED"
	CodeWriteFailed     ErrorCode = "WRITE_FAILED"
	CodeDirectoryCreate ErrorCode = "DIRECTORY_CREATE"
)

// ParseError represents an error that occurred while reading or decoding
// a single scan document.
type ParseError struct {
	Code    ErrorCode
	Message string
	File    string
	Line    int
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("[%s] %s (file: %s)", e.Code, e.Message, e.File)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// WithLine records the line in the document where decoding failed.
func (e *ParseError) WithLine(line int) *ParseError {
	e.Line = line
	return e
}

// NewParseError creates a new parse error with the specified code and message.
func NewParseError(code ErrorCode, message string) *ParseError {
	return &ParseError{
		Code:    code,
		Message: message,
	}
}

// NewParseErrorWithFile creates a parse error for a specific document.
func NewParseErrorWithFile(code ErrorCode, message, file string) *ParseError {
	return &ParseError{
		Code:    code,
		Message: message,
		File:    file,
	}
}

// WrapParseError wraps an existing error as a parse error.
func WrapParseError(code ErrorCode, message string, err error) *ParseError {
	return &ParseError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapParseErrorWithFile wraps an error with document information.
func WrapParseErrorWithFile(code ErrorCode, message, file string, err error) *ParseError {
	return &ParseError{
		Code:    code,
		Message: message,
		File:    file,
		Cause:   err,
	}
}

// ReportError represents an error raised while aggregating records or
// rendering an output artifact.
type ReportError struct {
	Code     ErrorCode
	Message  string
	Artifact string
	Cause    error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Artifact != "" {
		return fmt.Sprintf("[%s] %s (artifact: %s)", e.Code, e.Message, e.Artifact)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Cause
}

// NewReportError creates a new report error.
func NewReportError(code ErrorCode, message string) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
	}
}

// NewReportErrorWithArtifact creates a report error for a specific artifact.
func NewReportErrorWithArtifact(code ErrorCode, message, artifact string) *ReportError {
	return &ReportError{
		Code:     code,
		Message:  message,
		Artifact: artifact,
	}
}

// WrapReportError wraps an existing error as a report error.
func WrapReportError(code ErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapReportErrorWithArtifact wraps an error with artifact information.
func WrapReportErrorWithArtifact(code ErrorCode, message, artifact string, err error) *ReportError {
	return &ReportError{
		Code:     code,
		Message:  message,
		Artifact: artifact,
		Cause:    err,
	}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Code    ErrorCode
	Message string
	Field   string
	Value   interface{}
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error.
func NewConfigError(code ErrorCode, message string) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
	}
}

// NewConfigFieldError creates a configuration error for a specific field.
func NewConfigFieldError(code ErrorCode, message, field string, value interface{}) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Field:   field,
		Value:   value,
	}
}

// WrapConfigError wraps an existing error as a configuration error.
func WrapConfigError(code ErrorCode, message string, err error) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Utility functions for common error operations

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	switch e := err.(type) {
	case *ParseError:
		return e.Code == code
	case *ReportError:
		return e.Code == code
	case *ConfigError:
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error if it has one.
func GetCode(err error) ErrorCode {
	switch e := err.(type) {
	case *ParseError:
		return e.Code
	case *ReportError:
		return e.Code
	case *ConfigError:
		return e.Code
	}
	return CodeUnknown
}

// IsSkippable determines if an error affects a single input document and
// should be reported as a warning rather than stopping the run.
func IsSkippable(err error) bool {
	code := GetCode(err)
	switch code {
	case CodeBadExtension, CodeFileNotFound, CodeFilePermission, CodeParseFailed:
		return true
	default:
		return false
	}
}

// IsFatal determines if an error indicates a fatal condition that should stop execution.
func IsFatal(err error) bool {
	code := GetCode(err)
	switch code {
	case CodeNoInput, CodeNoRecords, CodeEmptyFilter, CodeConfiguration:
		return true
	default:
		return false
	}
}

// Common error creation functions

// ErrBadExtension creates an error for documents that are not nmap XML.
func ErrBadExtension(file string) *ParseError {
	return NewParseErrorWithFile(CodeBadExtension, "Input does not have an .xml extension", file)
}

// ErrFileNotFound creates an error for missing input documents.
func ErrFileNotFound(file string, err error) *ParseError {
	return WrapParseErrorWithFile(CodeFileNotFound, "Input file could not be opened", file, err)
}

// ErrParseFailed creates an error for malformed scan documents.
func ErrParseFailed(file string, err error) *ParseError {
	return WrapParseErrorWithFile(CodeParseFailed, "Failed to parse scan document", file, err)
}

// ErrNoInput creates an error for runs where no document could be read.
func ErrNoInput() *ReportError {
	return NewReportError(CodeNoInput, "No input files could be processed")
}

// ErrNoRecords creates an error for runs that parsed cleanly but found no results.
func ErrNoRecords() *ReportError {
	return NewReportError(CodeNoRecords, "No scan results found in input files")
}

// ErrEmptyFilter creates an error for filters that discard every record.
func ErrEmptyFilter() *ReportError {
	return NewReportError(CodeEmptyFilter, "No records remain after filtering")
}

// ErrRenderFailed creates an error for artifact rendering failures.
func ErrRenderFailed(artifact string, err error) *ReportError {
	return WrapReportErrorWithArtifact(CodeRenderFailed, "Failed to render artifact", artifact, err)
}

// ErrWriteFailed creates an error for artifact write failures.
func ErrWriteFailed(artifact string, err error) *ReportError {
	return WrapReportErrorWithArtifact(CodeWriteFailed, "Failed to write artifact", artifact, err)
}

// ErrConfigInvalid creates an error for invalid configuration.
func ErrConfigInvalid(field string, value interface{}) *ConfigError {
	return NewConfigFieldError(CodeValidation, "Invalid configuration value", field, value)
}

// ErrConfigMissing creates an error for missing required configuration.
func ErrConfigMissing(field string) *ConfigError {
	return NewConfigFieldError(CodeConfiguration, "Required configuration field missing", field, nil)
}

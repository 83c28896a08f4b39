// Package errors provides standardized error types for the compression
// analysis pipeline.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrCacheCorrupt indicates a cache artifact that cannot be decoded
	ErrCacheCorrupt = errors.New("cache corrupt")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
)

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "Zefania XML")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// CompressionError represents a codec failure on a specific unit of text.
// Any CompressionError aborts the whole aggregation run.
type CompressionError struct {
	Algorithm string // Algorithm name (e.g., "gzip", "bzip2")
	Unit      string // Unit identifier the codec was running on
	Err       error  // Underlying error
}

func (e *CompressionError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("%s compression failed for %s: %v", e.Algorithm, e.Unit, e.Err)
	}
	return fmt.Sprintf("%s compression failed: %v", e.Algorithm, e.Err)
}

func (e *CompressionError) Unwrap() error {
	return e.Err
}

// CacheError represents a cache artifact problem. Corrupt artifacts unwrap
// to ErrCacheCorrupt so callers can fall back to recomputation.
type CacheError struct {
	Path    string // Artifact path
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *CacheError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("cache artifact %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("cache artifact: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrCacheCorrupt
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for creating common errors

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewCompression creates a CompressionError
func NewCompression(algorithm, unit string, err error) *CompressionError {
	return &CompressionError{
		Algorithm: algorithm,
		Unit:      unit,
		Err:       err,
	}
}

// NewCache creates a CacheError
func NewCache(path, message string, err error) *CacheError {
	return &CacheError{
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

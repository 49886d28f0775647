package geography

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for dataset sources.
type ErrorCategory string

const (
	ErrorTimeout  ErrorCategory = "timeout"
	ErrorBadData  ErrorCategory = "bad_data"
	ErrorOutage   ErrorCategory = "outage"
	ErrorNotFound ErrorCategory = "not_found"
	ErrorInternal ErrorCategory = "internal"
)

// SourceError wraps a source failure with its category.
type SourceError struct {
	Category   ErrorCategory
	Source     string
	Message    string
	Underlying error
}

func (e *SourceError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("geography %s [%s]: %s: %v", e.Source, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("geography %s [%s]: %s", e.Source, e.Category, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Underlying
}

func NewSourceError(category ErrorCategory, source, message string, underlying error) *SourceError {
	return &SourceError{Category: category, Source: source, Message: message, Underlying: underlying}
}

// Category extracts the category from err. Context deadlines count as timeouts.
func Category(err error) ErrorCategory {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Category
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	return ErrorInternal
}

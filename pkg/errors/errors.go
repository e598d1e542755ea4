package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents network-related errors while fetching the source page
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeFeed represents feed generation errors
	ErrorTypeFeed ErrorType = "feed"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// PipelineError represents an error raised by one of the pipeline components
type PipelineError struct {
	Type      ErrorType
	Component string
	Message   string
	Err       error
	Time      time.Time
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Component, e.Message)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether the error should stop the pipeline.
// Every pipeline failure degrades to a safe default instead; only
// configuration errors are fatal, and those surface at startup.
func (e *PipelineError) IsFatal() bool {
	return e.Type == ErrorTypeConfiguration
}

// New creates a new PipelineError
func New(errType ErrorType, component, message string, err error) *PipelineError {
	return &PipelineError{
		Type:      errType,
		Component: component,
		Message:   message,
		Err:       err,
		Time:      time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(component, message string, err error) *PipelineError {
	return New(ErrorTypeFetch, component, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(component, message string, err error) *PipelineError {
	return New(ErrorTypeParsing, component, message, err)
}

// NewCache creates a new cache error
func NewCache(component, message string, err error) *PipelineError {
	return New(ErrorTypeCache, component, message, err)
}

// NewFeed creates a new feed error
func NewFeed(component, message string, err error) *PipelineError {
	return New(ErrorTypeFeed, component, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(component, message string, err error) *PipelineError {
	return New(ErrorTypePublisher, component, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *PipelineError {
	return New(ErrorTypeConfiguration, "", message, err)
}

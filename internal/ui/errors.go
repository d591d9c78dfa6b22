package ui

import (
	"context"
	"errors"
	"fmt"

	"essaipanel/internal/domain"
)

// Error represents a user-facing error with a stable code.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes shown in the load indicator and CLI output.
const (
	ErrCodeSourceUnreachable  = "SOURCE_UNREACHABLE"
	ErrCodeUnexpectedStatus   = "UNEXPECTED_STATUS"
	ErrCodeEmptyDocument      = "EMPTY_DOCUMENT"
	ErrCodeMalformedDocument  = "MALFORMED_DOCUMENT"
	ErrCodeSchemaMismatch     = "SCHEMA_MISMATCH"
	ErrCodeInvalidSource      = "INVALID_SOURCE"
	ErrCodeInvalidConfig      = "INVALID_CONFIG"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeToolNotFound       = "TOOL_NOT_FOUND"
	ErrCodeOperationCancelled = "OPERATION_CANCELLED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// MapLoadError converts the reason of an empty load into an Error.
func MapLoadError(err error) *Error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewErrorWithDetails(ErrCodeOperationCancelled, "Load cancelled", err.Error())
	case errors.Is(err, domain.ErrInvalidSource):
		return NewErrorWithDetails(ErrCodeInvalidSource, "Tool database source is invalid", err.Error())
	case errors.Is(err, domain.ErrUnexpectedStatus):
		return NewErrorWithDetails(ErrCodeUnexpectedStatus, "Tool database server refused the request", err.Error())
	case errors.Is(err, domain.ErrFetchFailed):
		return NewErrorWithDetails(ErrCodeSourceUnreachable, "Tool database could not be read", err.Error())
	case errors.Is(err, domain.ErrEmptyDocument):
		return NewError(ErrCodeEmptyDocument, "Tool database is empty")
	case errors.Is(err, domain.ErrSchemaMismatch):
		return NewErrorWithDetails(ErrCodeSchemaMismatch, "Tool database has an unexpected shape", err.Error())
	case errors.Is(err, domain.ErrParseFailed):
		return NewErrorWithDetails(ErrCodeMalformedDocument, "Tool database is not valid JSON", err.Error())
	default:
		return MapDomainError(err)
	}
}

// MapDomainError converts the remaining domain errors to Error.
func MapDomainError(err error) *Error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrToolNotFound):
		return NewError(ErrCodeToolNotFound, "Tool not found")
	case errors.Is(err, domain.ErrInvalidConfig):
		return NewErrorWithDetails(ErrCodeInvalidConfig, "Settings are invalid", err.Error())
	case errors.Is(err, domain.ErrInvalidFilter), errors.Is(err, domain.ErrInvalidSchema),
		errors.Is(err, domain.ErrSelectionOutOfRange):
		return NewErrorWithDetails(ErrCodeInvalidRequest, "Invalid request", err.Error())
	}

	if code, ok := domain.CodeFrom(err); ok {
		switch code {
		case domain.CodeUnavailable:
			return NewErrorWithDetails(ErrCodeSourceUnreachable, "Tool database could not be read", err.Error())
		case domain.CodeDataLoss:
			return NewErrorWithDetails(ErrCodeMalformedDocument, "Tool database could not be parsed", err.Error())
		case domain.CodeInvalidArgument:
			return NewErrorWithDetails(ErrCodeInvalidRequest, "Invalid request", err.Error())
		case domain.CodeNotFound:
			return NewErrorWithDetails(ErrCodeToolNotFound, "Tool not found", err.Error())
		case domain.CodeCanceled:
			return NewErrorWithDetails(ErrCodeOperationCancelled, "Operation cancelled", err.Error())
		}
	}
	return NewErrorWithDetails(ErrCodeInternal, "Internal error", err.Error())
}

func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NewErrorWithDetails(code, message, details string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: details,
	}
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for consistent error handling.
var (
	ErrInvalidSource       = errors.New("invalid tool database source")
	ErrFetchFailed         = errors.New("tool database fetch failed")
	ErrUnexpectedStatus    = errors.New("unexpected http status")
	ErrEmptyDocument       = errors.New("tool database document is empty")
	ErrParseFailed         = errors.New("tool database parse failed")
	ErrSchemaMismatch      = errors.New("tool database does not match schema")
	ErrInvalidSchema       = errors.New("unknown attribute schema")
	ErrInvalidFilter       = errors.New("invalid tool filter")
	ErrSelectionOutOfRange = errors.New("selection out of range")
	ErrToolNotFound        = errors.New("tool not found")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

type ErrorCode string

const (
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeUnavailable     ErrorCode = "UNAVAILABLE"
	CodeDataLoss        ErrorCode = "DATA_LOSS"
	CodeInternal        ErrorCode = "INTERNAL"
	CodeCanceled        ErrorCode = "CANCELED"
)

type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

func Wrap(code ErrorCode, op string, err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		if existing.Op != "" || op == "" {
			return existing
		}
		return &Error{
			Code:    existing.Code,
			Op:      op,
			Message: existing.Message,
			Cause:   existing.Cause,
		}
	}
	return E(code, op, "", err)
}

// CodeFrom classifies an error produced anywhere in the load pipeline.
func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	switch {
	case errors.Is(err, ErrInvalidSource), errors.Is(err, ErrInvalidSchema), errors.Is(err, ErrInvalidFilter),
		errors.Is(err, ErrSelectionOutOfRange), errors.Is(err, ErrInvalidConfig):
		return CodeInvalidArgument, true
	case errors.Is(err, ErrToolNotFound):
		return CodeNotFound, true
	case errors.Is(err, ErrFetchFailed), errors.Is(err, ErrUnexpectedStatus):
		return CodeUnavailable, true
	case errors.Is(err, ErrEmptyDocument), errors.Is(err, ErrParseFailed), errors.Is(err, ErrSchemaMismatch):
		return CodeDataLoss, true
	default:
		return "", false
	}
}

package ui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"essaipanel/internal/domain"
)

func TestErrorStringFormatsDetails(t *testing.T) {
	uiErr := &Error{Code: "CODE", Message: "message", Details: "details"}
	if got := uiErr.Error(); got != "CODE: message (details)" {
		t.Fatalf("unexpected error string: %s", got)
	}

	uiErr = &Error{Code: "CODE", Message: "message"}
	if got := uiErr.Error(); got != "CODE: message" {
		t.Fatalf("unexpected error string without details: %s", got)
	}
}

func TestMapLoadError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "fetch", err: fmt.Errorf("%w: dial tcp", domain.ErrFetchFailed), code: ErrCodeSourceUnreachable},
		{name: "status", err: fmt.Errorf("%w: 404 Not Found", domain.ErrUnexpectedStatus), code: ErrCodeUnexpectedStatus},
		{name: "empty", err: domain.ErrEmptyDocument, code: ErrCodeEmptyDocument},
		{name: "parse", err: fmt.Errorf("%w: invalid character", domain.ErrParseFailed), code: ErrCodeMalformedDocument},
		{name: "schema", err: fmt.Errorf("%w: missing tools", domain.ErrSchemaMismatch), code: ErrCodeSchemaMismatch},
		{name: "source", err: domain.ErrInvalidSource, code: ErrCodeInvalidSource},
		{name: "cancelled", err: context.Canceled, code: ErrCodeOperationCancelled},
		{name: "coded", err: domain.E(domain.CodeUnavailable, "fetch", "down", nil), code: ErrCodeSourceUnreachable},
		{name: "default", err: errors.New("boom"), code: ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uiErr := MapLoadError(tt.err)
			require.NotNil(t, uiErr)
			if uiErr.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, uiErr.Code)
			}
		})
	}

	require.Nil(t, MapLoadError(nil))
}

func TestMapDomainError(t *testing.T) {
	require.Equal(t, ErrCodeToolNotFound, MapDomainError(domain.ErrToolNotFound).Code)
	require.Equal(t, ErrCodeInvalidConfig, MapDomainError(fmt.Errorf("%w: bad", domain.ErrInvalidConfig)).Code)
	require.Equal(t, ErrCodeInvalidRequest, MapDomainError(domain.ErrInvalidFilter).Code)
	require.Nil(t, MapDomainError(nil))
}

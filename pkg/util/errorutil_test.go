package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Codes(t *testing.T) {
	assert.True(t, IsUnauthenticated(NewUnauthenticated("no session")))
	assert.True(t, IsInvalidArgument(NewInvalidArgument("missing field", nil)))
	assert.True(t, IsConflict(NewConflict("duplicate", nil)))

	assert.False(t, IsConflict(NewUnauthenticated("no session")))
	assert.False(t, IsConflict(errors.New("plain error")))
	assert.False(t, IsConflict(nil))
}

func TestDomainError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("saving ticket: %w", NewConflict("duplicate", nil))
	assert.True(t, IsConflict(err))
}

func TestDomainError_Message(t *testing.T) {
	err := NewInvalidArgument("ticket number is required", map[string]any{"field": "id"})
	assert.Equal(t, "ticket number is required", err.Error())

	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "id", domainErr.Details["field"])
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &DomainError{Code: CodeConflict, Message: "wrapped", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "wrapped: root cause", err.Error())
}

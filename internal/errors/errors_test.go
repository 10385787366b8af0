package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Unwrap(t *testing.T) {
	cause := context.Canceled
	err := NewCancelledError(cause, "simulation")

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, IsType(err, ErrorTypeCancelled))
	assert.True(t, HasCode(err, CodeRunCancelled))
	assert.Equal(t, "simulation", err.Context["operation"])
}

func TestIsTypeThroughWrapping(t *testing.T) {
	tick := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	err := fmt.Errorf("run: %w", NewPersistError(errors.New("boom"), tick))

	assert.True(t, IsType(err, ErrorTypeDatabase))
	assert.True(t, HasCode(err, CodePersistFailed))
	assert.False(t, HasCode(err, CodeInvalidWindow))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeDatabase))
}

func TestAppError_Is(t *testing.T) {
	start := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	err := NewInvalidWindowError(start, start.Add(-time.Hour))

	assert.ErrorIs(t, err, New(ErrorTypeValidation, CodeInvalidWindow, "any"))
	assert.NotErrorIs(t, err, New(ErrorTypeValidation, CodeInvalidUser, "any"))
}

func TestAppError_LogFields(t *testing.T) {
	err := NewExternalAPIError(errors.New("timeout"), "telegram").WithContext("chat_id", int64(7))

	fields := err.LogFields()

	assert.Contains(t, fields, "error_code")
	assert.Contains(t, fields, CodeExternalAPI)
	assert.Contains(t, fields, "internal_error")
	assert.Contains(t, fields, "chat_id")
}

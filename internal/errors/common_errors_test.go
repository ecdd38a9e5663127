package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    NewDataError("duplicate game id 2023_1_BUF_NYJ"),
			wantMessage: "[DATA] duplicate game id 2023_1_BUF_NYJ",
		},
		{
			name:        "error with cause",
			appError:    NewNetworkError("fetch season 2023", fmt.Errorf("status 404")),
			wantMessage: "[NETWORK] fetch season 2023: status 404",
		},
		{
			name:        "not found",
			appError:    NewNotFoundError("game 2023_1_BUF_NYJ"),
			wantMessage: "[NOT_FOUND] game 2023_1_BUF_NYJ not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("missing column home_elo_pre")
	err := fmt.Errorf("load: %w", NewSchemaError("game feature store", cause))

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrTypeSchema, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeNetwork, Message: "fetch"}
	err.WithContext("season", 2023).WithContext("group", "OFF")

	assert.Equal(t, 2023, err.Context["season"])
	assert.Equal(t, "OFF", err.Context["group"])
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{"matching type", NewNetworkError("x", nil), ErrTypeNetwork, true},
		{"wrapped matching type", fmt.Errorf("wrap: %w", NewConfigError("x", nil)), ErrTypeConfig, true},
		{"other type", NewParsingError("x", nil), ErrTypeSchema, false},
		{"plain error", errors.New("x"), ErrTypeNetwork, false},
		{"nil", nil, ErrTypeNetwork, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.errType))
		})
	}
}

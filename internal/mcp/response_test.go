package mcp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	osmerrors "github.com/standardbeagle/osmtags/internal/errors"
)

func TestCreateJSONResponse(t *testing.T) {
	result, err := createJSONResponse(map[string]int{"count": 3})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.JSONEq(t, `{"count": 3}`, resultText(t, result))
}

func TestCreateJSONResponse_Unmarshalable(t *testing.T) {
	_, err := createJSONResponse(map[string]any{"ch": make(chan int)})
	require.Error(t, err)
}

func TestCreateErrorResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorResponse
	}{
		{
			name: "format with line",
			err:  osmerrors.NewLineFormatError("missing '=' separator", 3),
			want: ErrorResponse{ErrorType: "format", Line: 3},
		},
		{
			name: "wrapped type error",
			err:  fmt.Errorf("parse: %w", osmerrors.NewTypeError("All values must be strings", "capacity")),
			want: ErrorResponse{ErrorType: "type", Key: "capacity"},
		},
		{
			name: "missing parameter",
			err:  osmerrors.NewMissingParameterError("validate_tag", "value"),
			want: ErrorResponse{ErrorType: "missing_parameter", Parameter: "value"},
		},
		{
			name: "dataset",
			err:  osmerrors.NewDatasetError("presets.json", fmt.Errorf("unexpected EOF")),
			want: ErrorResponse{ErrorType: "dataset"},
		},
		{
			name: "invalid parameters",
			err:  fmt.Errorf("%w: bad", errInvalidParameters),
			want: ErrorResponse{ErrorType: ErrorTypeInvalidParameters},
		},
		{
			name: "plain",
			err:  fmt.Errorf("something else"),
			want: ErrorResponse{ErrorType: "internal"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := createErrorResponse("op", tt.err)
			require.NoError(t, err)
			require.True(t, result.IsError)

			var got ErrorResponse
			decodeResult(t, resultText(t, result), &got)
			assert.False(t, got.Success)
			assert.Equal(t, "op", got.Operation)
			assert.Equal(t, tt.err.Error(), got.Error)
			assert.Equal(t, tt.want.ErrorType, got.ErrorType)
			assert.Equal(t, tt.want.Line, got.Line)
			assert.Equal(t, tt.want.Key, got.Key)
			assert.Equal(t, tt.want.Parameter, got.Parameter)
		})
	}
}

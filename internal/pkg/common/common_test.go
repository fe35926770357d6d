package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestIsValidationErrorWrapped(t *testing.T) {
	err := fmt.Errorf("check availability: %w", NewValidationError("pantry[0].unit: unknown unit"))
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(errors.New("boom")))
}

func TestToResponse(t *testing.T) {
	status, resp := ToResponse(NewValidationError("bad servings"), false)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ErrCodeValidation, resp.Code)
	assert.Equal(t, "bad servings", resp.Message)

	wrapped := NewError(ErrCodeServiceUnavailable, "服務暫時不可用", http.StatusServiceUnavailable, errors.New("redis down"))
	status, resp = ToResponse(wrapped, true)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "redis down", resp.Details)

	status, resp = ToResponse(errors.New("boom"), false)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Empty(t, resp.Details)
}

func TestDecodeJSONStrict(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, DecodeJSONStrict(strings.NewReader(`{"name":"tomato"}`), &v))
	assert.Equal(t, "tomato", v.Name)

	assert.Error(t, DecodeJSONStrict(strings.NewReader(`{"name":"tomato","extra":1}`), &v))
	assert.Error(t, ParseJSONBytes([]byte(`{"name":"a"} {"name":"b"}`), &v))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestFilterFieldsDropsSnapshots(t *testing.T) {
	fields := filterFields([]zap.Field{
		zap.Int("pantry", 3),
		zap.String("request_id", "abc"),
	})
	require.Len(t, fields, 1)
	assert.Equal(t, "request_id", fields[0].Key)
}

func TestHashBytesStable(t *testing.T) {
	assert.Equal(t, HashBytes([]byte("x")), HashBytes([]byte("x")))
	assert.NotEqual(t, HashBytes([]byte("x")), HashBytes([]byte("y")))
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

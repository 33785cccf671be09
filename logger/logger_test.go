package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_InfoFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("food-ordering", &buf)

	l.Info("checkout", "req-1", "order created")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "order created", entry["msg"])
	assert.Equal(t, "food-ordering", entry["service"])
	assert.Equal(t, "checkout", entry["action"])
	assert.Equal(t, "req-1", entry["request_id"])
}

func TestLogger_ErrorGroup(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("food-ordering", &buf)

	l.Error("refund", "req-2", "refund failed", errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	group, ok := entry["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "boom", group["msg"])
}

func TestRequestIDContext(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))

	id := NewRequestID()
	assert.Len(t, id, 36)
	ctx := WithRequestID(context.Background(), id)
	assert.Equal(t, id, RequestID(ctx))
}

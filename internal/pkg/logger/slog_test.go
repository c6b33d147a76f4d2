package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer, level string) *Logger {
	return New(Config{Level: level, Format: "json", Output: buf})
}

func TestWithContext_AddsRequestAndSubject(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, "info")

	ctx := WithRequestIDContext(context.Background(), "req-1")
	ctx = WithSubjectContext(ctx, "42")

	log.WithComponent("test").WithContext(ctx).Info("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "42", entry["subject"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestWithContext_EmptyContextReturnsSameLogger(t *testing.T) {
	log := Discard()
	assert.Same(t, log, log.WithContext(context.Background()))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, "warn")

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.LogAuthAttempt("password", "alice", false, "invalid credentials")
	assert.Contains(t, buf.String(), `"identifier":"alice"`)
	assert.Contains(t, buf.String(), `"success":false`)
}

func TestClientContext(t *testing.T) {
	ctx := WithClientContext(context.Background(), ClientInfo{IP: "10.0.0.1", UserAgent: "curl"})

	info := GetClientFromContext(ctx)
	assert.Equal(t, "10.0.0.1", info.IP)
	assert.Equal(t, "curl", info.UserAgent)
	assert.Equal(t, ClientInfo{}, GetClientFromContext(context.Background()))
	assert.Equal(t, "", GetRequestIDFromContext(context.Background()))
}

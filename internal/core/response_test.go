// AngelaMos | 2026
// response_test.go

package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestInternalServerErrorLogsRequestID(t *testing.T) {
	logs := captureLogs(t)

	req := httptest.NewRequest(http.MethodGet, "/api/events/get", nil)
	req = req.WithContext(WithRequestID(req.Context(), "req-42"))
	rec := httptest.NewRecorder()

	InternalServerError(rec, req, errors.New("pq: relation missing"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation missing")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "/api/events/get", entry["path"])
	assert.Equal(t, "pq: relation missing", entry["error"])
	assert.Contains(t, entry, "trace_id")
}

func TestJSONErrorKeepsAppErrorStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, ConflictError("slot taken"))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "slot taken", body.Error)
}

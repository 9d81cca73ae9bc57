package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"interview-assistant-be/internal/bootstrap"
	"interview-assistant-be/internal/config"
	"interview-assistant-be/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "integration-secret"

type testEnv struct {
	app           *fiber.App
	container     *bootstrap.Container
	analyticsPath string
}

// newTestEnv boots the full server on temp directories with the mock LLM and
// STT providers. extra overrides individual env vars.
func newTestEnv(t *testing.T, extra map[string]string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	analytics := filepath.Join(dir, "analytics.jsonl")

	env := map[string]string{
		"GO_ENV":            "test",
		"API_KEY":           testAPIKey,
		"LLM_PROVIDER":      "openai",
		"OPENAI_API_KEY":    "",
		"GROQ_API_KEY":      "",
		"GEMINI_API_KEY":    "",
		"STT_PROVIDER":      "none",
		"SESSIONS_DIR":      filepath.Join(dir, "sessions"),
		"ANALYTICS_PATH":    analytics,
		"LOG_FILE_PATH":     filepath.Join(dir, "logs", "app.log"),
		"STT_LOG_FILE_PATH": filepath.Join(dir, "logs", "stt.log"),
		"OTEL_ENABLED":      "false",
	}
	for k, v := range extra {
		env[k] = v
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg := config.Load(filepath.Join(dir, "missing.env"))
	container, err := bootstrap.NewContainer(cfg)
	require.NoError(t, err)
	require.NoError(t, container.StartConsumers(context.Background()))

	srv := server.New(cfg, container)
	t.Cleanup(func() {
		_ = srv.GetApp().Shutdown()
		_ = container.Close(context.Background())
	})

	return &testEnv{app: srv.GetApp(), container: container, analyticsPath: analytics}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, authed bool) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if authed {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+testAPIKey)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func (e *testEnv) createSession(t *testing.T) string {
	t.Helper()
	resp, raw := e.do(t, http.MethodPost, "/api/session", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var res struct {
		SessionId string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))
	require.NotEmpty(t, res.SessionId)
	return res.SessionId
}

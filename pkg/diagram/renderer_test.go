package diagram

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKroki(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32, *atomic.Value) {
	t.Helper()
	var calls atomic.Int32
	var lastBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/mermaid/svg", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		raw, _ := io.ReadAll(r.Body)
		lastBody.Store(string(raw))
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, &lastBody
}

func TestRenderCachesByThemeAndCode(t *testing.T) {
	srv, calls, lastBody := newKroki(t, http.StatusOK, "<svg>ok</svg>")
	r := NewRenderer(srv.URL, time.Hour)
	ctx := context.Background()

	svg, err := r.Render(ctx, "```mermaid\nflowchart LR\n  A-->B\n```", "")
	require.NoError(t, err)
	assert.Equal(t, "<svg>ok</svg>", svg)
	assert.Equal(t, "flowchart LR\n  A-->B", lastBody.Load())

	_, err = r.Render(ctx, "flowchart LR\n  A-->B", "default")
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())

	_, err = r.Render(ctx, "flowchart LR\n  A-->B", "dark")
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, "%%{init: { 'theme': 'dark' } }%%\nflowchart LR\n  A-->B", lastBody.Load())
}

func TestRenderErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		_, err := NewRenderer("http://127.0.0.1:1", 0).Render(ctx, "```mermaid\n```", "")
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := NewRenderer("http://127.0.0.1:1", 0).Render(ctx, strings.Repeat("a", MaxCodeLength+1), "")
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("limit counts characters", func(t *testing.T) {
		srv, calls, _ := newKroki(t, http.StatusOK, "<svg>ok</svg>")
		_, err := NewRenderer(srv.URL, 0).Render(ctx, strings.Repeat("é", MaxCodeLength), "")
		require.NoError(t, err)
		assert.EqualValues(t, 1, calls.Load())
	})

	t.Run("upstream status", func(t *testing.T) {
		srv, _, _ := newKroki(t, http.StatusBadRequest, "Syntax error")
		_, err := NewRenderer(srv.URL, 0).Render(ctx, "flowchart LR\nA-->", "")
		assert.ErrorIs(t, err, ErrRender)
	})

	t.Run("not svg", func(t *testing.T) {
		srv, _, _ := newKroki(t, http.StatusOK, "<html>oops</html>")
		_, err := NewRenderer(srv.URL, 0).Render(ctx, "flowchart LR\nA-->B", "")
		assert.ErrorIs(t, err, ErrRender)
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := NewRenderer("http://127.0.0.1:1", 0).Render(ctx, "flowchart LR\nA-->B", "")
		assert.ErrorIs(t, err, ErrRender)
	})
}

func TestSanitize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  flowchart LR\nA-->B  ", "flowchart LR\nA-->B"},
		{"```mermaid\ngraph TD\nA-->B\n```", "graph TD\nA-->B"},
		{"```\ngraph TD\n```\n\n", "graph TD"},
		{"```mermaid\ngraph TD\nA-->B", "graph TD\nA-->B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), tt.in)
	}
}

func TestApplyThemeKeepsExistingInit(t *testing.T) {
	code := "%%{init: {'theme':'forest'}}%%\ngraph TD"
	assert.Equal(t, code, applyTheme(code, "dark"))
	assert.Equal(t, "graph TD", applyTheme("graph TD", DefaultTheme))
}

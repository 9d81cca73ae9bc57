package controller

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"interview-assistant-be/internal/dto"
	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/pkg/logger"
	"interview-assistant-be/internal/pkg/serverutils"
	"interview-assistant-be/internal/repository/implementation"
	"interview-assistant-be/internal/service"
	"interview-assistant-be/pkg/answer"
	"interview-assistant-be/pkg/llm/mock"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, map[string]interface{}) {}

func newTestApp(t *testing.T) (*fiber.App, service.ISessionService) {
	t.Helper()
	log := logger.NewNopLogger()
	repo, err := implementation.NewSessionRepository(t.TempDir(), log)
	require.NoError(t, err)

	rules := answer.DefaultRules()
	classifier := answer.NewClassifier(rules)
	sessions := service.NewSessionService(repo)
	interview := service.NewInterviewService(
		repo,
		classifier,
		answer.NewBuilder(classifier, 5),
		answer.NewBudget(rules, 300, 800, 1200, 0),
		mock.New(),
		nopPublisher{},
		log,
		service.InterviewConfig{Temperature: 0.4},
	)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	api := app.Group("/api")
	NewSessionController(sessions).RegisterRoutes(api)
	NewHistoryController(sessions).RegisterRoutes(api)
	NewQuestionController(interview, log).RegisterRoutes(api)
	NewProfileController(service.NewProfileService(repo, nopPublisher{})).RegisterRoutes(api)
	NewHealthController(HealthInfo{Version: "test", LLMProvider: mock.Name, STTProvider: "none"}).RegisterRoutes(app)
	return app, sessions
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/session", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res dto.CreateSessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res.SessionId
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// readEvents splits an SSE body into (event, data) pairs. Multi-line data is
// rejoined with newlines.
func readEvents(t *testing.T, body io.Reader) [][2]string {
	t.Helper()
	var (
		events    [][2]string
		event     string
		dataLines []string
	)
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if event != "" || dataLines != nil {
				events = append(events, [2]string{event, strings.Join(dataLines, "\n")})
			}
			event, dataLines = "", nil
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		}
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestQuestionController(t *testing.T) {
	app, sessions := newTestApp(t)
	id := createSession(t, app)
	question := "How would you design a rate limiter for a public API?"

	t.Run("plain answer", func(t *testing.T) {
		resp := postJSON(t, app, "/api/question", dto.AskQuestionRequest{SessionId: id, Question: question})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res dto.AnswerResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Contains(t, res.Answer, "placeholder answer")
	})

	t.Run("stream via query flag", func(t *testing.T) {
		resp := postJSON(t, app, "/api/question?stream=true", dto.AskQuestionRequest{SessionId: id, Question: question})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get(fiber.HeaderContentType))

		evs := readEvents(t, resp.Body)
		require.NotEmpty(t, evs)
		assert.Equal(t, "end", evs[len(evs)-1][0])

		var streamed strings.Builder
		for _, ev := range evs[:len(evs)-1] {
			assert.Empty(t, ev[0])
			streamed.WriteString(ev[1])
		}

		history, err := sessions.History(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, history.QnA, 2)
		assert.Equal(t, history.QnA[0].Answer, history.QnA[1].Answer)
		assert.Equal(t, history.QnA[1].Answer, streamed.String())
	})

	t.Run("stream errors before the body are JSON", func(t *testing.T) {
		resp := postJSON(t, app, "/api/question", dto.AskQuestionRequest{SessionId: uuid.NewString(), Question: question, Stream: true})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get(fiber.HeaderContentType))
	})

	t.Run("validation", func(t *testing.T) {
		resp := postJSON(t, app, "/api/question", dto.AskQuestionRequest{Question: question})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp = postJSON(t, app, "/api/question", dto.AskQuestionRequest{SessionId: id, Question: "  "})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		for _, body := range []string{`{"session_id": "abc", `, `{"session_id": 42}`} {
			req := httptest.NewRequest(http.MethodPost, "/api/question", strings.NewReader(body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)

			var res serverutils.BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
			assert.Equal(t, "Invalid request body", res.Message)
		}
	})
}

func TestEventWriter(t *testing.T) {
	var buf bytes.Buffer
	w := eventWriter{w: bufio.NewWriter(&buf)}

	require.NoError(t, w.Data("line one\nline two"))
	require.NoError(t, w.Error(apperror.Validation("bad input")))
	require.NoError(t, w.Error(errors.New("secret detail")))
	require.NoError(t, w.End())

	assert.Equal(t,
		"data: line one\ndata: line two\n\n"+
			"event: error\ndata: bad input\n\n"+
			"event: error\ndata: Internal server error\n\n"+
			"event: end\n\n",
		buf.String())
}

func TestHistoryController(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)
	postJSON(t, app, "/api/question", dto.AskQuestionRequest{SessionId: id, Question: "What is a mutex?"})

	cases := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"non-numeric index", http.MethodDelete, "/api/history/" + id + "/abc", http.StatusBadRequest},
		{"index out of range", http.MethodDelete, "/api/history/" + id + "/5", http.StatusBadRequest},
		{"remove entry", http.MethodDelete, "/api/history/" + id + "/0", http.StatusOK},
		{"unknown session", http.MethodGet, "/api/history/" + uuid.NewString(), http.StatusNotFound},
		{"clear", http.MethodDelete, "/api/history/" + id, http.StatusOK},
		{"show", http.MethodGet, "/api/history/" + id, http.StatusOK},
		{"transcript", http.MethodGet, "/api/session/" + id + "/transcript", http.StatusOK},
		{"delete session", http.MethodDelete, "/api/session/" + id, http.StatusOK},
		{"delete session again", http.MethodDelete, "/api/session/" + id, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestProfileController(t *testing.T) {
	app, sessions := newTestApp(t)
	id := createSession(t, app)

	upload := func(t *testing.T, fields map[string]string, filename, content string) *http.Response {
		t.Helper()
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		if filename != "" {
			part, err := mw.CreateFormFile("file", filename)
			require.NoError(t, err)
			_, err = part.Write([]byte(content))
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload_profile", &body)
		req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := upload(t, map[string]string{"session_id": id}, "cv.txt", "Senior Go engineer")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res dto.UploadProfileResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, len("Senior Go engineer"), res.Characters)

	session, err := sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Senior Go engineer", session.ProfileText)

	assert.Equal(t, http.StatusBadRequest, upload(t, map[string]string{"session_id": id}, "", "").StatusCode)
	assert.Equal(t, http.StatusBadRequest, upload(t, nil, "cv.txt", "text").StatusCode)
	assert.Equal(t, http.StatusBadRequest, upload(t, map[string]string{"session_id": id}, "cv.txt", "  ").StatusCode)
}

func TestHealthController(t *testing.T) {
	app, _ := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, mock.Name, res.LLM.Provider)
	assert.Equal(t, 0, res.Sockets)
}

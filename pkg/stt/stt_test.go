package stt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmitsPlaceholderPerFrame(t *testing.T) {
	stream := NewMock().Open()
	ctx := context.Background()

	got, err := stream.Feed(ctx, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, MockText, got)

	got, err = stream.Feed(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = stream.Close(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMockHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMock().Open().Feed(ctx, []byte{1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewWhisperRequiresKey(t *testing.T) {
	_, err := NewWhisper(WhisperConfig{})
	assert.Error(t, err)
}

func TestWhisperBuffersUntilChunkSize(t *testing.T) {
	var calls int
	var sizes []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)

		file, _, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		data, _ := io.ReadAll(file)
		sizes = append(sizes, len(data))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"text":" part %d "}`, calls)
	}))
	defer srv.Close()

	whisper, err := NewWhisper(WhisperConfig{APIKey: "k", BaseURL: srv.URL, ChunkBytes: 8})
	require.NoError(t, err)

	stream := whisper.Open()
	ctx := context.Background()

	got, err := stream.Feed(ctx, []byte("head"))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = stream.Feed(ctx, []byte("abcd"))
	require.NoError(t, err)
	assert.Equal(t, "part 1", got)

	got, err = stream.Feed(ctx, []byte("xy"))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = stream.Close(ctx)
	require.NoError(t, err)
	assert.Equal(t, "part 2", got)

	assert.Equal(t, []int{8, 6}, sizes)
}

func TestWhisperCloseWithoutAudio(t *testing.T) {
	whisper, err := NewWhisper(WhisperConfig{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	got, err := whisper.Open().Close(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWhisperCloseAfterFlushSendsNothing(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"text":"hello"}`)
	}))
	defer srv.Close()

	whisper, err := NewWhisper(WhisperConfig{APIKey: "k", BaseURL: srv.URL, ChunkBytes: 10})
	require.NoError(t, err)

	stream := whisper.Open()
	ctx := context.Background()

	for _, frame := range [][]byte{[]byte("header-bytes"), []byte("second-frame")} {
		got, err := stream.Feed(ctx, frame)
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
	}

	got, err := stream.Close(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, calls)
}

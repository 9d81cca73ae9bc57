package stt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	WhisperName          = "openai"
	DefaultWhisperModel  = "whisper-1"
	DefaultChunkBytes    = 256 * 1024
	defaultAudioFilename = "audio.webm"
	defaultAudioMIME     = "audio/webm"
)

type WhisperConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	ChunkBytes int
}

// Whisper transcribes buffered audio through the OpenAI transcription API.
// Audio is sent every ChunkBytes and once more when the stream closes.
type Whisper struct {
	client     openai.Client
	model      string
	chunkBytes int
}

func NewWhisper(cfg WhisperConfig) (*Whisper, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("whisper transcriber requires an API key")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultWhisperModel
	}
	if cfg.ChunkBytes <= 0 {
		cfg.ChunkBytes = DefaultChunkBytes
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{}),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Whisper{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		chunkBytes: cfg.ChunkBytes,
	}, nil
}

func (w *Whisper) Name() string { return WhisperName }

func (w *Whisper) Open() Stream {
	return &whisperStream{whisper: w}
}

type whisperStream struct {
	whisper *Whisper
	header  []byte
	buf     bytes.Buffer
	flushed bool
}

// Feed buffers the frame. The first frame carries the container header, so
// it is kept and prepended to every later window.
func (s *whisperStream) Feed(ctx context.Context, frame []byte) (string, error) {
	if len(frame) == 0 {
		return "", nil
	}
	if s.header == nil {
		s.header = append([]byte(nil), frame...)
	} else {
		s.buf.Write(frame)
	}

	if len(s.header)+s.buf.Len() < s.whisper.chunkBytes {
		return "", nil
	}
	return s.flush(ctx)
}

func (s *whisperStream) Close(ctx context.Context) (string, error) {
	// Nothing arrived since the last window.
	if s.header == nil || (s.flushed && s.buf.Len() == 0) {
		return "", nil
	}
	return s.flush(ctx)
}

func (s *whisperStream) flush(ctx context.Context) (string, error) {
	window := make([]byte, 0, len(s.header)+s.buf.Len())
	window = append(window, s.header...)
	window = append(window, s.buf.Bytes()...)
	s.buf.Reset()
	s.flushed = true

	resp, err := s.whisper.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(window), defaultAudioFilename, defaultAudioMIME),
		Model: openai.AudioModel(s.whisper.model),
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

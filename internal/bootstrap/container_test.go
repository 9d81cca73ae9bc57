package bootstrap

import (
	"testing"

	"interview-assistant-be/internal/config"
	"interview-assistant-be/pkg/stt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranscriber(t *testing.T) {
	cases := []struct {
		name     string
		provider string
		key      string
		want     string
	}{
		{"default", "", "", stt.MockName},
		{"none", "none", "sk-test", stt.MockName},
		{"openai without key falls back", "openai", "", stt.MockName},
		{"openai", "openai", "sk-test", stt.WhisperName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{
				STT: config.STTConfig{Provider: tc.provider, Model: "whisper-1"},
				LLM: config.LLMConfig{OpenAIKey: tc.key},
			}
			tr, err := newTranscriber(cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, tr.Name())
		})
	}

	_, err := newTranscriber(&config.Config{STT: config.STTConfig{Provider: "deepgram"}})
	assert.Error(t, err)
}

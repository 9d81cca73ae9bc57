package handler

import (
	"testing"

	"interview-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestSTTHandlerAuthorized(t *testing.T) {
	cases := []struct {
		name   string
		key    string
		header string
		want   bool
	}{
		{"no key configured", "", "", true},
		{"exact match", "secret", "secret", true},
		{"one of several offered", "secret", "audio.v1, secret", true},
		{"missing", "secret", "", false},
		{"wrong key", "secret", "guess", false},
		{"prefix only", "secret", "secre", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewSTTHandler(nil, nil, tc.key, logger.NewNopLogger())
			assert.Equal(t, tc.want, h.authorized(tc.header))
		})
	}
}

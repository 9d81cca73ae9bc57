package controller

import (
	"bufio"
	"errors"
	"strings"

	"interview-assistant-be/internal/pkg/apperror"
)

// eventWriter frames Server-Sent Events onto a fasthttp body stream and
// flushes after every event.
type eventWriter struct {
	w *bufio.Writer
}

// Data writes chunk as one event. Each line of a multi-line chunk gets its
// own "data:" field so clients rejoin them with newlines.
func (e eventWriter) Data(chunk string) error {
	for _, line := range strings.Split(chunk, "\n") {
		e.w.WriteString("data: ")
		e.w.WriteString(line)
		e.w.WriteByte('\n')
	}
	e.w.WriteByte('\n')
	return e.w.Flush()
}

func (e eventWriter) End() error {
	e.w.WriteString("event: end\n\n")
	return e.w.Flush()
}

func (e eventWriter) Error(err error) error {
	message := "Internal server error"
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	e.w.WriteString("event: error\n")
	e.w.WriteString("data: ")
	e.w.WriteString(message)
	e.w.WriteString("\n\n")
	return e.w.Flush()
}

package websocket

import (
	"context"

	"interview-assistant-be/internal/pkg/logger"
	"interview-assistant-be/internal/service"

	"github.com/gofiber/websocket/v2"
)

const sendBuffer = 64

// ServeWs runs one STT socket until it ends. The read pump runs on the
// calling goroutine; ServeWs returns once the write pump has finished.
func ServeWs(hub *Hub, conn *websocket.Conn, stream *service.TranscriptStream, log logger.ILogger) {
	client := &Client{
		Hub:       hub,
		Conn:      conn,
		SessionId: stream.SessionId(),
		stream:    stream,
		logger:    log,
		send:      make(chan outbound, sendBuffer),
	}
	hub.register(client)
	defer hub.unregister(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		client.writePump()
	}()

	client.readPump(ctx)
	<-done
}

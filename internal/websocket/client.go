package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"interview-assistant-be/internal/pkg/logger"
	"interview-assistant-be/internal/service"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20

	// EndMarker is the text frame a client sends when it has no more audio.
	EndMarker = "__end__"
)

// Message is what the server sends over the socket as JSON text frames.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type outbound struct {
	kind int
	data []byte
}

// Client pumps one socket: audio frames in, transcript messages out.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	SessionId string

	stream *service.TranscriptStream
	logger logger.ILogger

	mu     sync.Mutex
	send   chan outbound
	closed bool
}

// enqueue hands a frame to the write pump. Frames queued after the client
// finished are dropped.
func (c *Client) enqueue(msg outbound) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("Client", "Send buffer full, dropping message", map[string]interface{}{"session_id": c.SessionId})
	}
}

func (c *Client) sendJSON(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	c.enqueue(outbound{kind: websocket.TextMessage, data: data})
}

func (c *Client) closeWith(code int, reason string) {
	c.enqueue(outbound{kind: websocket.CloseMessage, data: websocket.FormatCloseMessage(code, reason)})
}

func (c *Client) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) partial(text string) {
	if text != "" {
		c.sendJSON(Message{Type: "partial_transcript", Text: text})
	}
}

// readPump feeds inbound audio to the transcript stream until the client
// sends EndMarker, a frame fails, or the connection drops.
func (c *Client) readPump(ctx context.Context) {
	defer c.finish()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		kind, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("Client", "Socket dropped", map[string]interface{}{
					"session_id": c.SessionId,
					"error":      err.Error(),
				})
			}
			// Persist whatever audio was still buffered.
			if _, err := c.stream.Close(ctx); err != nil {
				c.logger.Error("Client", "Final transcription failed", map[string]interface{}{
					"session_id": c.SessionId,
					"error":      err.Error(),
				})
			}
			return
		}
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))

		switch kind {
		case websocket.BinaryMessage:
			text, err := c.stream.Feed(ctx, data)
			if err != nil {
				c.fail(err)
				return
			}
			c.partial(text)

		case websocket.TextMessage:
			if string(data) != EndMarker {
				continue
			}
			text, err := c.stream.Close(ctx)
			if err != nil {
				c.fail(err)
				return
			}
			c.partial(text)
			c.sendJSON(Message{Type: "end"})
			c.closeWith(websocket.CloseNormalClosure, "")
			return
		}
	}
}

func (c *Client) fail(err error) {
	c.logger.Error("Client", "Transcription failed", map[string]interface{}{
		"session_id": c.SessionId,
		"error":      err.Error(),
	})
	c.closeWith(websocket.CloseInternalServerErr, "transcription failed")
}

// writePump is the only writer on the connection. It returns after sending a
// close frame or once the send channel is closed.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(msg.kind, msg.data); err != nil {
				return
			}
			if msg.kind == websocket.CloseMessage {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

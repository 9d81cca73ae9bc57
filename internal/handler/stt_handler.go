package handler

import (
	"strings"

	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/pkg/logger"
	"interview-assistant-be/internal/pkg/serverutils"
	"interview-assistant-be/internal/service"
	internalWS "interview-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type STTHandler struct {
	transcripts service.ITranscriptService
	hub         *internalWS.Hub
	apiKey      string
	logger      logger.ILogger
}

func NewSTTHandler(transcripts service.ITranscriptService, hub *internalWS.Hub, apiKey string, log logger.ILogger) *STTHandler {
	return &STTHandler{
		transcripts: transcripts,
		hub:         hub,
		apiKey:      apiKey,
		logger:      log,
	}
}

func (h *STTHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/stt/:session_id", h.ServeWs)
}

// ServeWs authenticates through Sec-WebSocket-Protocol, checks the session,
// and only then upgrades. Browsers cannot set Authorization on a socket, so
// the key travels as the offered subprotocol and is echoed back on success.
func (h *STTHandler) ServeWs(c *fiber.Ctx) error {
	if !h.authorized(c.Get("Sec-WebSocket-Protocol")) {
		h.logger.Warn("STTHandler", "Rejected socket without valid API key", map[string]interface{}{
			"ip": c.IP(),
		})
		return apperror.Auth("Invalid or missing API key")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	stream, err := h.transcripts.Open(c.UserContext(), c.Params("session_id"))
	if err != nil {
		return err
	}

	cfg := websocket.Config{}
	if h.apiKey != "" {
		cfg.Subprotocols = []string{h.apiKey}
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("STTHandler", "Starting STT session", map[string]interface{}{
			"session_id": stream.SessionId(),
			"provider":   h.transcripts.Provider(),
		})
		internalWS.ServeWs(h.hub, conn, stream, h.logger)
		h.logger.Info("STTHandler", "STT session ended", map[string]interface{}{
			"session_id": stream.SessionId(),
		})
	}, cfg)(c)
}

func (h *STTHandler) authorized(header string) bool {
	if h.apiKey == "" {
		return true
	}
	for _, offered := range strings.Split(header, ",") {
		if serverutils.KeyMatches(h.apiKey, offered) {
			return true
		}
	}
	return false
}

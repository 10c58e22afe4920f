package handler

import (
	"time"

	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/internal/service"
	internalWS "pdf-chat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// StreamHandler exposes the streaming chat endpoint and hands upgraded
// connections to the protocol loop.
type StreamHandler struct {
	hub         *internalWS.Hub
	chatService service.IChatService
	logger      logger.ILogger

	chunkSize  int
	chunkDelay time.Duration
}

func NewStreamHandler(
	hub *internalWS.Hub,
	chatService service.IChatService,
	log logger.ILogger,
	chunkSize int,
	chunkDelay time.Duration,
) *StreamHandler {
	return &StreamHandler{
		hub:         hub,
		chatService: chatService,
		logger:      log,
		chunkSize:   chunkSize,
		chunkDelay:  chunkDelay,
	}
}

// ServeWs upgrades the connection and runs the chat stream until disconnect.
func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Starting chat stream session", nil)
			internalWS.ServeChat(h.hub, conn, h.chatService, h.logger, h.chunkSize, h.chunkDelay)
			h.logger.Info("StreamHandler", "Chat stream session ended", nil)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *StreamHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/chat", h.ServeWs)
}

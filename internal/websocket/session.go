package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pdf-chat-be/internal/dto"
	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/pkg/logger"
)

// Conn is the slice of *websocket.Conn the streaming loop needs.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v interface{}) error
	Close() error
}

// Responder is the chat service surface used by the protocol loop. The steps
// are split so frames can be emitted between session resolution, answering
// and persistence.
type Responder interface {
	ResolveSession(ctx context.Context, chatId string) string
	AnswerFor(ctx context.Context, question, chatId string) (answer string, source string, err error)
	SaveAnswer(ctx context.Context, chatId, question, answer, source string) (*entity.ChatMessage, error)
}

// ChatSession drives one websocket connection's sequential message loop:
// receive a question, stream the answer in chunks, persist, repeat. Errors on
// a single frame never close the connection; only transport failure does.
type ChatSession struct {
	hub       *Hub
	conn      Conn
	responder Responder
	logger    logger.ILogger

	chunkSize  int
	chunkDelay time.Duration
}

// ServeChat registers the connection and runs its loop until the transport
// drops. It blocks, so the upgrade handler calls it from the connection's
// goroutine.
func ServeChat(hub *Hub, conn Conn, responder Responder, log logger.ILogger, chunkSize int, chunkDelay time.Duration) {
	session := &ChatSession{
		hub:        hub,
		conn:       conn,
		responder:  responder,
		logger:     log,
		chunkSize:  chunkSize,
		chunkDelay: chunkDelay,
	}

	hub.register <- session
	defer func() {
		hub.unregister <- session
		conn.Close()
	}()

	session.run()
}

func (s *ChatSession) run() {
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			s.logger.Info("ChatSession", "Connection closed", map[string]interface{}{"reason": err.Error()})
			return
		}
		s.handleFrame(raw)
	}
}

// handleFrame processes one inbound frame. Any failure, including a panic in
// a downstream collaborator, is reported as an error frame and the loop keeps
// receiving.
func (s *ChatSession) handleFrame(raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			s.sendError(fmt.Sprintf("An error occurred: %v", r))
		}
	}()

	var req dto.WsChatRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		s.sendError("Invalid JSON format")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		s.sendError("Question cannot be empty")
		return
	}

	ctx := context.Background()
	chatId := s.responder.ResolveSession(ctx, req.ChatId)

	if err := s.conn.WriteJSON(dto.NewTypingFrame("Analyzing documents...")); err != nil {
		return
	}

	answer, source, err := s.responder.AnswerFor(ctx, question, chatId)
	if err != nil {
		s.sendError("An error occurred: " + err.Error())
		return
	}

	full, delivered := s.streamChunks(answer)

	// Persist regardless of delivery: the exchange happened even if the
	// client went away mid-stream.
	msg, err := s.responder.SaveAnswer(ctx, chatId, question, full, source)
	if err != nil {
		s.sendError("An error occurred: " + err.Error())
		return
	}

	if !delivered {
		return
	}

	s.sendComplete(msg)
}

func (s *ChatSession) sendComplete(msg *entity.ChatMessage) {
	frame := &dto.WsCompleteFrame{
		Type:      dto.FrameTypeComplete,
		Id:        msg.Id,
		Question:  msg.Question,
		Answer:    msg.Answer,
		Source:    msg.Source,
		Timestamp: msg.CreatedAt,
		ChatId:    msg.ChatId,
	}
	if err := s.conn.WriteJSON(frame); err != nil {
		s.logger.Warn("ChatSession", "Failed to send complete frame", map[string]interface{}{"error": err.Error()})
	}
}

// streamChunks emits the answer in fixed-size word runs with pacing between
// them. It returns the reconstructed answer and whether every chunk reached
// the client; emission stops at the first failed write.
func (s *ChatSession) streamChunks(answer string) (string, bool) {
	chunks := SplitChunks(answer, s.chunkSize)

	var full strings.Builder
	delivered := true
	for _, chunk := range chunks {
		full.WriteString(chunk.Content)
		if !delivered {
			continue
		}
		if err := s.conn.WriteJSON(chunk); err != nil {
			s.logger.Warn("ChatSession", "Client gone mid-stream, stopping chunks", map[string]interface{}{"error": err.Error()})
			delivered = false
			continue
		}
		if s.chunkDelay > 0 {
			time.Sleep(s.chunkDelay)
		}
	}

	return strings.TrimSpace(full.String()), delivered
}

// SplitChunks breaks an answer into whitespace-token runs of the given size,
// each joined with a trailing space. The final chunk is flagged.
func SplitChunks(answer string, size int) []*dto.WsChunkFrame {
	if size <= 0 {
		size = 1
	}

	words := strings.Fields(answer)
	chunks := make([]*dto.WsChunkFrame, 0, (len(words)+size-1)/size)
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		content := strings.Join(words[i:end], " ") + " "
		chunks = append(chunks, dto.NewChunkFrame(content, i+size >= len(words)))
	}
	return chunks
}

func (s *ChatSession) sendError(message string) {
	if err := s.conn.WriteJSON(dto.NewErrorFrame(message)); err != nil {
		s.logger.Warn("ChatSession", "Failed to send error frame", map[string]interface{}{"error": err.Error()})
	}
}

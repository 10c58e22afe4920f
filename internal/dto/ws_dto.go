package dto

import (
	"time"

	"github.com/google/uuid"
)

// Outbound websocket frames form a tagged union on the "type" field.
const (
	FrameTypeTyping   = "typing"
	FrameTypeChunk    = "chunk"
	FrameTypeComplete = "complete"
	FrameTypeError    = "error"
)

// WsChatRequest is the single inbound frame shape.
type WsChatRequest struct {
	Question string `json:"question"`
	ChatId   string `json:"chat_id,omitempty"`
}

type WsTypingFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type WsChunkFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	IsFinal bool   `json:"is_final"`
}

type WsCompleteFrame struct {
	Type      string    `json:"type"`
	Id        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	ChatId    string    `json:"chat_id"`
}

type WsErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewTypingFrame(message string) *WsTypingFrame {
	return &WsTypingFrame{Type: FrameTypeTyping, Message: message}
}

func NewChunkFrame(content string, isFinal bool) *WsChunkFrame {
	return &WsChunkFrame{Type: FrameTypeChunk, Content: content, IsFinal: isFinal}
}

func NewErrorFrame(message string) *WsErrorFrame {
	return &WsErrorFrame{Type: FrameTypeError, Message: message}
}

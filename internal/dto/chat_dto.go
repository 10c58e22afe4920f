package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Question string `json:"question" validate:"required"`
	ChatId   string `json:"chat_id,omitempty"`
}

type ChatResponse struct {
	Answer    string    `json:"answer"`
	Source    string    `json:"source"`
	Id        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ChatId    string    `json:"chat_id"`
}

type CreateChatResponse struct {
	ChatId  string `json:"chat_id"`
	Message string `json:"message"`
}

type ResetRequest struct {
	ChatId *string `json:"chat_id,omitempty"`
}

type ResetResponse struct {
	Message   string  `json:"message"`
	SessionId string  `json:"session_id"`
	ChatId    *string `json:"chat_id,omitempty"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	ChatId    string    `json:"chat_id"`
}

type ChatHistoryResponse struct {
	ChatId       string                 `json:"chat_id"`
	Messages     []*ChatMessageResponse `json:"messages"`
	MessageCount int                    `json:"message_count"`
}

type ChatSummary struct {
	ChatId          string     `json:"chat_id"`
	MessageCount    int        `json:"message_count"`
	FirstQuestion   *string    `json:"first_question,omitempty"`
	LastMessageTime *time.Time `json:"last_message_time,omitempty"`
	LastActiveTime  *time.Time `json:"last_active_time,omitempty"`
}

type AllChatsResponse struct {
	Chats         []*ChatSummary `json:"chats"`
	TotalSessions int            `json:"total_sessions"`
	TotalMessages int            `json:"total_messages"`
}

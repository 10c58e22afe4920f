package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_RESET").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeChatMessageCreated = "CHAT_MESSAGE_CREATED"
	TypeFilesUploaded      = "FILES_UPLOADED"
	TypeSessionReset       = "SESSION_RESET"
)

// BaseEvent is the generic implementation used by the chat services.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewChatMessageCreated(chatId, messageId string) BaseEvent {
	return BaseEvent{
		Type: TypeChatMessageCreated,
		Data: map[string]interface{}{
			"chat_id":    chatId,
			"message_id": messageId,
		},
		OccurredAt: time.Now(),
	}
}

func NewFilesUploaded(chatId string, count int, totalBytes int64) BaseEvent {
	return BaseEvent{
		Type: TypeFilesUploaded,
		Data: map[string]interface{}{
			"chat_id":     chatId,
			"count":       count,
			"total_bytes": totalBytes,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionReset(chatId string, full bool) BaseEvent {
	data := map[string]interface{}{"full": full}
	if chatId != "" {
		data["chat_id"] = chatId
	}
	return BaseEvent{
		Type:       TypeSessionReset,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

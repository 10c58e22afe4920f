package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one persisted question/answer exchange. Immutable once
// created; insertion order within a session is the chronological order.
type ChatMessage struct {
	Id        uuid.UUID
	ChatId    string
	Question  string
	Answer    string
	Source    string
	CreatedAt time.Time
}

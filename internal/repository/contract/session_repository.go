package contract

import (
	"time"

	"pdf-chat-be/internal/entity"
)

// ISessionRepository is the process-wide session registry: chat histories,
// uploaded-file lists and last-active timestamps keyed by chat id, plus the
// rotating epoch token and the has-memory flag.
//
// The registry is deliberately lenient: writes create missing sub-records on
// the fly, lookups of unknown ids return empty results, and removals of
// absent entries are no-ops. Existence checks that must surface a 404 belong
// to the callers, not here.
type ISessionRepository interface {
	// CreateSession allocates a fresh chat id with empty history, empty file
	// list and last-active set to now.
	CreateSession() string

	// EnsureSession initializes the sub-records for a caller-supplied chat id
	// if they do not exist yet.
	EnsureSession(chatId string)

	// AddMessage appends a question/answer exchange. An empty chatId creates
	// a new session first; an unknown chatId is initialized on the fly.
	AddMessage(question, answer, source, chatId string) *entity.ChatMessage

	GetHistory(chatId string) []*entity.ChatMessage
	GetAllSessions() map[string][]*entity.ChatMessage
	Exists(chatId string) bool

	// Touch updates last-active without adding a message. Unknown ids are
	// ignored.
	Touch(chatId string)
	LastActive(chatId string) (time.Time, bool)

	// Reset with a chat id removes that session's three sub-records and keeps
	// the epoch. With an empty chat id it clears all histories and last-active
	// entries, clears file lists only when clearFiles is set, and rotates the
	// epoch.
	Reset(chatId string, clearFiles bool)

	AddFiles(chatId string, files []*entity.UploadedFile)
	GetFiles(chatId string) []*entity.UploadedFile
	HasFileList(chatId string) bool
	DeleteFile(chatId string, fileId string)
	ClearFiles(chatId string)

	TotalMessages() int
	SessionCount() int
	TotalFiles() int

	Epoch() string
	HasMemory() bool
}

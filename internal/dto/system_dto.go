package dto

import "time"

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// StatusResponse reports the global counters. SessionId is the process-wide
// epoch token; it changes on every full reset so clients can detect a wipe.
type StatusResponse struct {
	HasMemory          bool   `json:"has_memory"`
	SessionId          string `json:"session_id"`
	UploadedFilesCount int    `json:"uploaded_files_count"`
	ChatHistoryCount   int    `json:"chat_history_count"`
	ChatSessionsCount  int    `json:"chat_sessions_count"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	SessionId string    `json:"session_id"`
	HasMemory bool      `json:"has_memory"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// UploadedFile is the metadata of one uploaded PDF. The file body itself is
// discarded after validation; only the metadata is kept per session.
type UploadedFile struct {
	Id         uuid.UUID
	Filename   string
	Size       int64
	UploadedAt time.Time
}

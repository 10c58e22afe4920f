package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadedFileResponse struct {
	Id         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadTime time.Time `json:"upload_time"`
}

type UploadResponse struct {
	Message string                  `json:"message"`
	Files   []*UploadedFileResponse `json:"files"`
}

type FilesResponse struct {
	Files          []*UploadedFileResponse `json:"files"`
	TotalFiles     int                     `json:"total_files"`
	TotalSizeBytes int64                   `json:"total_size_bytes"`
}

type DeleteFileResponse struct {
	Message string `json:"message"`
}

package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"pdf-chat-be/internal/constant"
	"pdf-chat-be/internal/dto"
	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/mapper"
	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/internal/repository/contract"
	"pdf-chat-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFileService interface {
	Upload(ctx context.Context, chatId string, files []*multipart.FileHeader) (*dto.UploadResponse, error)
	GetFiles(ctx context.Context, chatId string) (*dto.FilesResponse, error)
	DeleteFile(ctx context.Context, chatId, fileId string) (*dto.DeleteFileResponse, error)
	ClearFiles(ctx context.Context, chatId string) (*dto.DeleteFileResponse, error)
}

type fileService struct {
	sessionRepo contract.ISessionRepository
	chatMapper  *mapper.ChatMapper
	publisher   IPublisherService
	logger      logger.ILogger
}

func NewFileService(
	sessionRepo contract.ISessionRepository,
	chatMapper *mapper.ChatMapper,
	publisher IPublisherService,
	log logger.ILogger,
) IFileService {
	return &fileService{
		sessionRepo: sessionRepo,
		chatMapper:  chatMapper,
		publisher:   publisher,
		logger:      log,
	}
}

func (s *fileService) Upload(ctx context.Context, chatId string, files []*multipart.FileHeader) (*dto.UploadResponse, error) {
	if len(files) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No files provided")
	}

	uploaded := make([]*entity.UploadedFile, 0, len(files))
	var totalBytes int64

	for _, fh := range files {
		if !strings.HasSuffix(strings.ToLower(fh.Filename), constant.AllowedFileExtension) {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s is not a PDF", fh.Filename))
		}

		size, err := readSize(fh)
		if err != nil {
			return nil, err
		}
		if size > constant.MaxFileSize {
			return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("%s exceeds 10 MB", fh.Filename))
		}

		uploaded = append(uploaded, &entity.UploadedFile{
			Id:         uuid.New(),
			Filename:   fh.Filename,
			Size:       size,
			UploadedAt: time.Now(),
		})
		totalBytes += size
	}

	// Upload may target a session that was never explicitly created.
	s.sessionRepo.EnsureSession(chatId)
	s.sessionRepo.AddFiles(chatId, uploaded)

	if err := s.publisher.Publish(ctx, events.NewFilesUploaded(chatId, len(uploaded), totalBytes)); err != nil {
		s.logger.Warn("FileService", "Failed to publish upload event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.UploadResponse{
		Message: fmt.Sprintf("Uploaded %d file(s)", len(uploaded)),
		Files:   s.chatMapper.FilesToResponses(uploaded),
	}, nil
}

// readSize drains the part to count bytes; only metadata is kept.
func readSize(fh *multipart.FileHeader) (int64, error) {
	f, err := fh.Open()
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := io.Copy(io.Discard, f)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *fileService) GetFiles(_ context.Context, chatId string) (*dto.FilesResponse, error) {
	files := s.sessionRepo.GetFiles(chatId)

	var totalBytes int64
	for _, f := range files {
		totalBytes += f.Size
	}

	return &dto.FilesResponse{
		Files:          s.chatMapper.FilesToResponses(files),
		TotalFiles:     len(files),
		TotalSizeBytes: totalBytes,
	}, nil
}

func (s *fileService) DeleteFile(_ context.Context, chatId, fileId string) (*dto.DeleteFileResponse, error) {
	if !s.sessionRepo.HasFileList(chatId) {
		return nil, fiber.NewError(fiber.StatusNotFound, "chat_id not found")
	}

	// Deleting an unknown file id is a no-op, not an error.
	s.sessionRepo.DeleteFile(chatId, fileId)

	return &dto.DeleteFileResponse{Message: "File deleted"}, nil
}

func (s *fileService) ClearFiles(_ context.Context, chatId string) (*dto.DeleteFileResponse, error) {
	if !s.sessionRepo.HasFileList(chatId) {
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("chat_id %s not found", chatId))
	}

	s.sessionRepo.ClearFiles(chatId)

	return &dto.DeleteFileResponse{Message: "All files deleted"}, nil
}

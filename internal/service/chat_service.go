package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"pdf-chat-be/internal/dto"
	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/mapper"
	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/internal/repository/contract"
	"pdf-chat-be/pkg/events"
	"pdf-chat-be/pkg/qa"

	"github.com/gofiber/fiber/v2"
)

// IChatService orchestrates sessions, answering and history. The streaming
// handler uses the ResolveSession/AnswerFor/SaveAnswer triplet so it can
// interleave protocol frames between the steps; SendChat is the same flow in
// one call for the plain HTTP endpoint.
type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateChatResponse, error)
	SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)

	ResolveSession(ctx context.Context, chatId string) string
	AnswerFor(ctx context.Context, question, chatId string) (answer string, source string, err error)
	SaveAnswer(ctx context.Context, chatId, question, answer, source string) (*entity.ChatMessage, error)

	GetHistory(ctx context.Context, chatId string) (*dto.ChatHistoryResponse, error)
	GetAllChats(ctx context.Context) (*dto.AllChatsResponse, error)
	Reset(ctx context.Context, req *dto.ResetRequest) (*dto.ResetResponse, error)
	Status(ctx context.Context) (*dto.StatusResponse, error)
	Health(ctx context.Context) *dto.HealthResponse
}

type chatService struct {
	sessionRepo contract.ISessionRepository
	answerer    qa.Answerer
	chatMapper  *mapper.ChatMapper
	publisher   IPublisherService
	logger      logger.ILogger
}

func NewChatService(
	sessionRepo contract.ISessionRepository,
	answerer qa.Answerer,
	chatMapper *mapper.ChatMapper,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessionRepo: sessionRepo,
		answerer:    answerer,
		chatMapper:  chatMapper,
		publisher:   publisher,
		logger:      log,
	}
}

func (s *chatService) CreateSession(_ context.Context) (*dto.CreateChatResponse, error) {
	chatId := s.sessionRepo.CreateSession()
	s.logger.Info("ChatService", "Chat session created", map[string]interface{}{"chat_id": chatId})

	return &dto.CreateChatResponse{
		ChatId:  chatId,
		Message: "New chat session created successfully",
	}, nil
}

func (s *chatService) SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Question cannot be empty")
	}

	chatId := s.ResolveSession(ctx, req.ChatId)

	answer, source, err := s.AnswerFor(ctx, question, chatId)
	if err != nil {
		return nil, err
	}

	msg, err := s.SaveAnswer(ctx, chatId, question, answer, source)
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Answer:    msg.Answer,
		Source:    msg.Source,
		Id:        msg.Id,
		Timestamp: msg.CreatedAt,
		ChatId:    chatId,
	}, nil
}

func (s *chatService) ResolveSession(_ context.Context, chatId string) string {
	if chatId == "" {
		return s.sessionRepo.CreateSession()
	}
	return chatId
}

func (s *chatService) AnswerFor(ctx context.Context, question, chatId string) (string, string, error) {
	files := s.sessionRepo.GetFiles(chatId)
	return s.answerer.Answer(ctx, question, files)
}

func (s *chatService) SaveAnswer(ctx context.Context, chatId, question, answer, source string) (*entity.ChatMessage, error) {
	msg := s.sessionRepo.AddMessage(question, answer, source, chatId)

	// Activity events are best-effort; a bus failure never fails the request.
	if err := s.publisher.Publish(ctx, events.NewChatMessageCreated(msg.ChatId, msg.Id.String())); err != nil {
		s.logger.Warn("ChatService", "Failed to publish message event", map[string]interface{}{"error": err.Error()})
	}

	return msg, nil
}

func (s *chatService) GetHistory(_ context.Context, chatId string) (*dto.ChatHistoryResponse, error) {
	if !s.sessionRepo.Exists(chatId) {
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Chat ID %s not found", chatId))
	}

	// Opening a chat counts as activity even without a new message.
	s.sessionRepo.Touch(chatId)
	messages := s.sessionRepo.GetHistory(chatId)

	return &dto.ChatHistoryResponse{
		ChatId:       chatId,
		Messages:     s.chatMapper.MessagesToResponses(messages),
		MessageCount: len(messages),
	}, nil
}

func (s *chatService) GetAllChats(_ context.Context) (*dto.AllChatsResponse, error) {
	allChats := s.sessionRepo.GetAllSessions()

	summaries := make([]*dto.ChatSummary, 0, len(allChats))
	for chatId, messages := range allChats {
		summary := &dto.ChatSummary{
			ChatId:       chatId,
			MessageCount: len(messages),
		}
		if len(messages) > 0 {
			first := messages[0].Question
			last := messages[len(messages)-1].CreatedAt
			summary.FirstQuestion = &first
			summary.LastMessageTime = &last
			summary.LastActiveTime = &last
		}
		if lastActive, ok := s.sessionRepo.LastActive(chatId); ok {
			summary.LastActiveTime = &lastActive
		}
		summaries = append(summaries, summary)
	}

	// Most recently active first; sessions without a timestamp sort last.
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i].LastActiveTime, summaries[j].LastActiveTime
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	return &dto.AllChatsResponse{
		Chats:         summaries,
		TotalSessions: s.sessionRepo.SessionCount(),
		TotalMessages: s.sessionRepo.TotalMessages(),
	}, nil
}

func (s *chatService) Reset(ctx context.Context, req *dto.ResetRequest) (*dto.ResetResponse, error) {
	var chatId string
	if req.ChatId != nil {
		chatId = *req.ChatId
	}

	// Files are wiped only on a full reset; a scoped reset always removes the
	// target session's file list regardless of this flag.
	clearFiles := chatId == ""
	s.sessionRepo.Reset(chatId, clearFiles)

	if err := s.publisher.Publish(ctx, events.NewSessionReset(chatId, chatId == "")); err != nil {
		s.logger.Warn("ChatService", "Failed to publish reset event", map[string]interface{}{"error": err.Error()})
	}

	message := "All chats and files reset successfully"
	if chatId != "" {
		message = fmt.Sprintf("Chat %s reset successfully", chatId)
	}

	return &dto.ResetResponse{
		Message:   message,
		SessionId: s.sessionRepo.Epoch(),
		ChatId:    req.ChatId,
	}, nil
}

func (s *chatService) Status(_ context.Context) (*dto.StatusResponse, error) {
	return &dto.StatusResponse{
		HasMemory:          s.sessionRepo.HasMemory(),
		SessionId:          s.sessionRepo.Epoch(),
		UploadedFilesCount: s.sessionRepo.TotalFiles(),
		ChatHistoryCount:   s.sessionRepo.TotalMessages(),
		ChatSessionsCount:  s.sessionRepo.SessionCount(),
	}, nil
}

func (s *chatService) Health(_ context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		SessionId: s.sessionRepo.Epoch(),
		HasMemory: s.sessionRepo.HasMemory(),
	}
}

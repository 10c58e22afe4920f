package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pdf-chat-be/internal/dto"
	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/mapper"
	"pdf-chat-be/internal/repository/contract"
	"pdf-chat-be/internal/repository/memory"
	"pdf-chat-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type stubPublisher struct {
	published []events.Event
	err       error
}

func (p *stubPublisher) Publish(_ context.Context, event events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

type stubAnswerer struct {
	answer string
	source string
	err    error
	seen   []*entity.UploadedFile
}

func (a *stubAnswerer) Answer(_ context.Context, _ string, files []*entity.UploadedFile) (string, string, error) {
	a.seen = files
	return a.answer, a.source, a.err
}

func newChatFixture(t *testing.T) (IChatService, contract.ISessionRepository, *stubAnswerer, *stubPublisher) {
	t.Helper()
	repo := memory.NewSessionRepository()
	answerer := &stubAnswerer{answer: "stub answer", source: "stub.pdf"}
	publisher := &stubPublisher{}
	svc := NewChatService(repo, answerer, mapper.NewChatMapper(), publisher, nopLogger{})
	return svc, repo, answerer, publisher
}

func TestSendChatEmptyQuestion(t *testing.T) {
	svc, _, _, _ := newChatFixture(t)

	_, err := svc.SendChat(context.Background(), &dto.ChatRequest{Question: "  \t "})

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
}

func TestSendChatCreatesSessionWhenOmitted(t *testing.T) {
	svc, repo, _, publisher := newChatFixture(t)

	resp, err := svc.SendChat(context.Background(), &dto.ChatRequest{Question: "hello"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ChatId)
	assert.Equal(t, "stub answer", resp.Answer)
	assert.Equal(t, "stub.pdf", resp.Source)
	assert.True(t, repo.Exists(resp.ChatId))
	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.TypeChatMessageCreated, publisher.published[0].EventType())
}

func TestSendChatUsesSessionFiles(t *testing.T) {
	svc, repo, answerer, _ := newChatFixture(t)

	chatId := repo.CreateSession()
	repo.AddFiles(chatId, []*entity.UploadedFile{
		{Id: uuid.New(), Filename: "a.pdf", Size: 10, UploadedAt: time.Now()},
	})

	_, err := svc.SendChat(context.Background(), &dto.ChatRequest{Question: "hi", ChatId: chatId})
	require.NoError(t, err)

	require.Len(t, answerer.seen, 1)
	assert.Equal(t, "a.pdf", answerer.seen[0].Filename)
}

func TestSendChatAnswererFailure(t *testing.T) {
	svc, repo, answerer, _ := newChatFixture(t)
	answerer.err = errors.New("model unavailable")

	chatId := repo.CreateSession()
	_, err := svc.SendChat(context.Background(), &dto.ChatRequest{Question: "hi", ChatId: chatId})

	require.Error(t, err)
	assert.Empty(t, repo.GetHistory(chatId), "failed answers must not be persisted")
}

func TestSaveAnswerSurvivesPublisherFailure(t *testing.T) {
	svc, repo, _, publisher := newChatFixture(t)
	publisher.err = errors.New("bus down")

	chatId := repo.CreateSession()
	msg, err := svc.SaveAnswer(context.Background(), chatId, "q", "a", "s.pdf")

	require.NoError(t, err)
	assert.Equal(t, "a", msg.Answer)
	assert.Len(t, repo.GetHistory(chatId), 1)
}

func TestGetHistoryUnknownChat(t *testing.T) {
	svc, _, _, _ := newChatFixture(t)

	_, err := svc.GetHistory(context.Background(), "nope")

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}

func TestGetHistoryTouchesSession(t *testing.T) {
	svc, repo, _, _ := newChatFixture(t)

	chatId := repo.CreateSession()
	before, ok := repo.LastActive(chatId)
	require.True(t, ok)

	time.Sleep(5 * time.Millisecond)
	resp, err := svc.GetHistory(context.Background(), chatId)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.MessageCount)

	after, ok := repo.LastActive(chatId)
	require.True(t, ok)
	assert.True(t, after.After(before))
}

func TestGetAllChatsOrdering(t *testing.T) {
	svc, repo, _, _ := newChatFixture(t)

	older := repo.CreateSession()
	repo.AddMessage("first question", "a", "s", older)
	time.Sleep(5 * time.Millisecond)

	newer := repo.CreateSession()
	repo.AddMessage("second question", "a", "s", newer)
	time.Sleep(5 * time.Millisecond)

	// Reading the older chat bumps it back to the front.
	_, err := svc.GetHistory(context.Background(), older)
	require.NoError(t, err)

	resp, err := svc.GetAllChats(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Chats, 2)
	assert.Equal(t, older, resp.Chats[0].ChatId)
	assert.Equal(t, newer, resp.Chats[1].ChatId)
	assert.Equal(t, 2, resp.TotalSessions)
	assert.Equal(t, 2, resp.TotalMessages)

	require.NotNil(t, resp.Chats[0].FirstQuestion)
	assert.Equal(t, "first question", *resp.Chats[0].FirstQuestion)
}

func TestGetAllChatsEmptySessionSortsLast(t *testing.T) {
	svc, repo, _, _ := newChatFixture(t)

	empty := repo.CreateSession()
	time.Sleep(5 * time.Millisecond)
	active := repo.CreateSession()
	repo.AddMessage("q", "a", "s", active)

	resp, err := svc.GetAllChats(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Chats, 2)
	assert.Equal(t, active, resp.Chats[0].ChatId)
	assert.Equal(t, empty, resp.Chats[1].ChatId)
	assert.Nil(t, resp.Chats[1].FirstQuestion)
}

func TestResetScoped(t *testing.T) {
	svc, repo, _, publisher := newChatFixture(t)

	keep := repo.CreateSession()
	repo.AddMessage("q", "a", "s", keep)
	target := repo.CreateSession()
	repo.AddMessage("q", "a", "s", target)
	epochBefore := repo.Epoch()

	resp, err := svc.Reset(context.Background(), &dto.ResetRequest{ChatId: &target})
	require.NoError(t, err)

	assert.Contains(t, resp.Message, target)
	assert.Equal(t, epochBefore, resp.SessionId, "scoped reset keeps the epoch")
	assert.False(t, repo.Exists(target))
	assert.True(t, repo.Exists(keep))
	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.TypeSessionReset, publisher.published[0].EventType())
}

func TestResetFull(t *testing.T) {
	svc, repo, _, _ := newChatFixture(t)

	chatId := repo.CreateSession()
	repo.AddMessage("q", "a", "s", chatId)
	repo.AddFiles(chatId, []*entity.UploadedFile{{Id: uuid.New(), Filename: "a.pdf"}})
	epochBefore := repo.Epoch()

	resp, err := svc.Reset(context.Background(), &dto.ResetRequest{})
	require.NoError(t, err)

	assert.Equal(t, "All chats and files reset successfully", resp.Message)
	assert.NotEqual(t, epochBefore, resp.SessionId, "full reset rotates the epoch")
	assert.Nil(t, resp.ChatId)
	assert.Equal(t, 0, repo.SessionCount())
	assert.Equal(t, 0, repo.TotalFiles())
	assert.False(t, repo.HasMemory())
}

func TestStatusCounts(t *testing.T) {
	svc, repo, _, _ := newChatFixture(t)

	chatId := repo.CreateSession()
	repo.AddMessage("q1", "a", "s", chatId)
	repo.AddMessage("q2", "a", "s", chatId)
	repo.AddFiles(chatId, []*entity.UploadedFile{{Id: uuid.New(), Filename: "a.pdf"}})

	status, err := svc.Status(context.Background())
	require.NoError(t, err)

	assert.True(t, status.HasMemory)
	assert.Equal(t, repo.Epoch(), status.SessionId)
	assert.Equal(t, 1, status.UploadedFilesCount)
	assert.Equal(t, 2, status.ChatHistoryCount)
	assert.Equal(t, 1, status.ChatSessionsCount)
}

func TestHealth(t *testing.T) {
	svc, repo, _, _ := newChatFixture(t)

	health := svc.Health(context.Background())

	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, repo.Epoch(), health.SessionId)
	assert.False(t, health.HasMemory)
	assert.WithinDuration(t, time.Now(), health.Timestamp, time.Second)
}

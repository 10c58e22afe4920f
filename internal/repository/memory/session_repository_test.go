package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"pdf-chat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFile(name string, size int64) *entity.UploadedFile {
	return &entity.UploadedFile{
		Id:         uuid.New(),
		Filename:   name,
		Size:       size,
		UploadedAt: time.Now(),
	}
}

func TestCreateSessionEmptyHistory(t *testing.T) {
	repo := NewSessionRepository()

	chatId := repo.CreateSession()
	require.NotEmpty(t, chatId)

	assert.True(t, repo.Exists(chatId))
	assert.True(t, repo.HasFileList(chatId))
	assert.Empty(t, repo.GetHistory(chatId))
	assert.Empty(t, repo.GetFiles(chatId))

	_, ok := repo.LastActive(chatId)
	assert.True(t, ok)
}

func TestAddMessageOrderAndIds(t *testing.T) {
	repo := NewSessionRepository()
	chatId := repo.CreateSession()

	for i := 0; i < 5; i++ {
		repo.AddMessage(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i), "", chatId)
	}

	history := repo.GetHistory(chatId)
	require.Len(t, history, 5)

	seen := make(map[uuid.UUID]bool)
	for i, msg := range history {
		assert.Equal(t, fmt.Sprintf("q%d", i), msg.Question)
		assert.False(t, seen[msg.Id], "message ids must be unique")
		seen[msg.Id] = true
		if i > 0 {
			assert.False(t, msg.CreatedAt.Before(history[i-1].CreatedAt), "timestamps must be non-decreasing")
		}
	}

	assert.True(t, repo.HasMemory())
}

func TestAddMessageCreatesSessionImplicitly(t *testing.T) {
	repo := NewSessionRepository()

	msg := repo.AddMessage("hello", "world", "", "")
	require.NotEmpty(t, msg.ChatId)
	assert.True(t, repo.Exists(msg.ChatId))
	assert.True(t, repo.HasFileList(msg.ChatId))
}

func TestAddMessageCreateOnWriteForUnknownId(t *testing.T) {
	repo := NewSessionRepository()

	msg := repo.AddMessage("hello", "world", "doc.pdf", "client-chosen-id")
	assert.Equal(t, "client-chosen-id", msg.ChatId)
	assert.True(t, repo.Exists("client-chosen-id"))
	assert.True(t, repo.HasFileList("client-chosen-id"))

	_, ok := repo.LastActive("client-chosen-id")
	assert.True(t, ok)
}

func TestTouchDoesNotCreate(t *testing.T) {
	repo := NewSessionRepository()

	repo.Touch("ghost")
	assert.False(t, repo.Exists("ghost"))
	_, ok := repo.LastActive("ghost")
	assert.False(t, ok)

	chatId := repo.CreateSession()
	before, _ := repo.LastActive(chatId)
	time.Sleep(2 * time.Millisecond)
	repo.Touch(chatId)
	after, _ := repo.LastActive(chatId)
	assert.True(t, after.After(before))
}

func TestScopedReset(t *testing.T) {
	repo := NewSessionRepository()

	target := repo.CreateSession()
	other := repo.CreateSession()
	repo.AddMessage("q", "a", "", target)
	repo.AddMessage("q", "a", "", other)
	repo.AddFiles(target, []*entity.UploadedFile{newFile("a.pdf", 10)})
	repo.AddFiles(other, []*entity.UploadedFile{newFile("b.pdf", 20)})

	epochBefore := repo.Epoch()
	repo.Reset(target, false)

	assert.False(t, repo.Exists(target))
	assert.False(t, repo.HasFileList(target))
	_, ok := repo.LastActive(target)
	assert.False(t, ok)

	assert.True(t, repo.Exists(other))
	assert.Len(t, repo.GetHistory(other), 1)
	assert.Len(t, repo.GetFiles(other), 1)

	assert.Equal(t, epochBefore, repo.Epoch(), "scoped reset keeps the epoch")
}

func TestFullResetKeepsFilesUnlessCleared(t *testing.T) {
	repo := NewSessionRepository()

	chatId := repo.CreateSession()
	repo.AddMessage("q", "a", "", chatId)
	repo.AddFiles(chatId, []*entity.UploadedFile{newFile("a.pdf", 10)})

	epochBefore := repo.Epoch()
	repo.Reset("", false)

	assert.False(t, repo.Exists(chatId))
	assert.True(t, repo.HasFileList(chatId), "full reset without clearFiles keeps file lists")
	assert.Equal(t, 1, repo.TotalFiles())
	assert.NotEqual(t, epochBefore, repo.Epoch(), "full reset rotates the epoch")
	assert.False(t, repo.HasMemory())
}

func TestFullResetClearFiles(t *testing.T) {
	repo := NewSessionRepository()

	chatId := repo.CreateSession()
	repo.AddMessage("q", "a", "", chatId)
	repo.AddFiles(chatId, []*entity.UploadedFile{newFile("a.pdf", 10)})

	epochBefore := repo.Epoch()
	repo.Reset("", true)

	assert.False(t, repo.Exists(chatId))
	assert.False(t, repo.HasFileList(chatId))
	assert.Equal(t, 0, repo.TotalFiles())
	assert.NotEqual(t, epochBefore, repo.Epoch())
}

func TestFileOps(t *testing.T) {
	repo := NewSessionRepository()
	chatId := repo.CreateSession()

	first := newFile("a.pdf", 100)
	second := newFile("b.pdf", 200)
	repo.AddFiles(chatId, []*entity.UploadedFile{first, second})

	require.Len(t, repo.GetFiles(chatId), 2)
	assert.Equal(t, 2, repo.TotalFiles())

	t.Run("delete unknown file id is a no-op", func(t *testing.T) {
		repo.DeleteFile(chatId, uuid.NewString())
		assert.Len(t, repo.GetFiles(chatId), 2)
	})

	t.Run("delete by id removes one entry", func(t *testing.T) {
		repo.DeleteFile(chatId, first.Id.String())
		files := repo.GetFiles(chatId)
		require.Len(t, files, 1)
		assert.Equal(t, "b.pdf", files[0].Filename)
	})

	t.Run("clear files empties the list", func(t *testing.T) {
		repo.ClearFiles(chatId)
		assert.Empty(t, repo.GetFiles(chatId))
		assert.True(t, repo.HasFileList(chatId))
	})

	t.Run("clear files on unknown session is a no-op", func(t *testing.T) {
		repo.ClearFiles("ghost")
		assert.False(t, repo.HasFileList("ghost"))
	})
}

func TestCountsAndSnapshot(t *testing.T) {
	repo := NewSessionRepository()

	a := repo.CreateSession()
	b := repo.CreateSession()
	repo.AddMessage("q1", "a1", "", a)
	repo.AddMessage("q2", "a2", "", a)
	repo.AddMessage("q3", "a3", "", b)

	assert.Equal(t, 3, repo.TotalMessages())
	assert.Equal(t, 2, repo.SessionCount())

	snapshot := repo.GetAllSessions()
	require.Len(t, snapshot, 2)
	assert.Len(t, snapshot[a], 2)
	assert.Len(t, snapshot[b], 1)

	// The snapshot is a copy; mutating it must not touch the registry.
	snapshot[a] = snapshot[a][:1]
	assert.Len(t, repo.GetHistory(a), 2)
}

func TestConcurrentWrites(t *testing.T) {
	repo := NewSessionRepository()
	chatId := repo.CreateSession()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			repo.AddMessage(fmt.Sprintf("q%d", n), "a", "", chatId)
			repo.GetHistory(chatId)
		}(i)
	}
	wg.Wait()

	assert.Len(t, repo.GetHistory(chatId), 20)
	assert.Equal(t, 20, repo.TotalMessages())
}

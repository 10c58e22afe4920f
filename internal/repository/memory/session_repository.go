package memory

import (
	"sync"
	"time"

	"pdf-chat-be/internal/entity"
	"pdf-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps all chat state in process memory. Three keyed
// stores share one mutex so that a session's history, file list and
// last-active entry are created and destroyed as a unit; readers never see a
// partially initialized session.
type SessionRepository struct {
	mu         sync.RWMutex
	histories  *cache.Cache // chatId -> []*entity.ChatMessage
	files      *cache.Cache // chatId -> []*entity.UploadedFile
	lastActive *cache.Cache // chatId -> time.Time
	epoch      string
	hasMemory  bool
}

func NewSessionRepository() contract.ISessionRepository {
	// No expiration and no janitor: sessions live until an explicit reset.
	return &SessionRepository{
		histories:  cache.New(cache.NoExpiration, 0),
		files:      cache.New(cache.NoExpiration, 0),
		lastActive: cache.New(cache.NoExpiration, 0),
		epoch:      uuid.NewString(),
	}
}

func (r *SessionRepository) CreateSession() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	chatId := uuid.NewString()
	r.initSessionLocked(chatId)
	return chatId
}

func (r *SessionRepository) EnsureSession(chatId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.histories.Get(chatId); !found {
		r.initSessionLocked(chatId)
	}
}

// initSessionLocked sets up the three sub-records. Callers hold the lock.
func (r *SessionRepository) initSessionLocked(chatId string) {
	r.histories.Set(chatId, []*entity.ChatMessage{}, cache.NoExpiration)
	r.files.Set(chatId, []*entity.UploadedFile{}, cache.NoExpiration)
	r.lastActive.Set(chatId, time.Now(), cache.NoExpiration)
}

func (r *SessionRepository) AddMessage(question, answer, source, chatId string) *entity.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	if chatId == "" {
		chatId = uuid.NewString()
		r.initSessionLocked(chatId)
	} else if _, found := r.histories.Get(chatId); !found {
		// Create-on-write: tolerate a write racing session creation.
		r.initSessionLocked(chatId)
	}

	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chatId,
		Question:  question,
		Answer:    answer,
		Source:    source,
		CreatedAt: time.Now(),
	}

	history, _ := r.histories.Get(chatId)
	r.histories.Set(chatId, append(history.([]*entity.ChatMessage), msg), cache.NoExpiration)
	r.lastActive.Set(chatId, msg.CreatedAt, cache.NoExpiration)
	r.hasMemory = true

	return msg
}

func (r *SessionRepository) GetHistory(chatId string) []*entity.ChatMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, found := r.histories.Get(chatId)
	if !found {
		return []*entity.ChatMessage{}
	}
	history := stored.([]*entity.ChatMessage)

	out := make([]*entity.ChatMessage, len(history))
	copy(out, history)
	return out
}

func (r *SessionRepository) GetAllSessions() map[string][]*entity.ChatMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string][]*entity.ChatMessage, r.histories.ItemCount())
	for chatId, item := range r.histories.Items() {
		history := item.Object.([]*entity.ChatMessage)
		out := make([]*entity.ChatMessage, len(history))
		copy(out, history)
		snapshot[chatId] = out
	}
	return snapshot
}

func (r *SessionRepository) Exists(chatId string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, found := r.histories.Get(chatId)
	return found
}

func (r *SessionRepository) Touch(chatId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.histories.Get(chatId); found {
		r.lastActive.Set(chatId, time.Now(), cache.NoExpiration)
	}
}

func (r *SessionRepository) LastActive(chatId string) (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, found := r.lastActive.Get(chatId)
	if !found {
		return time.Time{}, false
	}
	return stored.(time.Time), true
}

func (r *SessionRepository) Reset(chatId string, clearFiles bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if chatId != "" {
		// Scoped reset: files go unconditionally, epoch stays.
		r.histories.Delete(chatId)
		r.files.Delete(chatId)
		r.lastActive.Delete(chatId)
	} else {
		r.histories.Flush()
		r.lastActive.Flush()
		if clearFiles {
			r.files.Flush()
		}
		r.epoch = uuid.NewString()
	}

	r.hasMemory = r.histories.ItemCount() > 0
}

func (r *SessionRepository) AddFiles(chatId string, files []*entity.UploadedFile) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := []*entity.UploadedFile{}
	if stored, found := r.files.Get(chatId); found {
		existing = stored.([]*entity.UploadedFile)
	}
	r.files.Set(chatId, append(existing, files...), cache.NoExpiration)
}

func (r *SessionRepository) GetFiles(chatId string) []*entity.UploadedFile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, found := r.files.Get(chatId)
	if !found {
		return []*entity.UploadedFile{}
	}
	files := stored.([]*entity.UploadedFile)

	out := make([]*entity.UploadedFile, len(files))
	copy(out, files)
	return out
}

func (r *SessionRepository) HasFileList(chatId string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, found := r.files.Get(chatId)
	return found
}

func (r *SessionRepository) DeleteFile(chatId string, fileId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, found := r.files.Get(chatId)
	if !found {
		return
	}

	files := stored.([]*entity.UploadedFile)
	kept := make([]*entity.UploadedFile, 0, len(files))
	for _, f := range files {
		if f.Id.String() != fileId {
			kept = append(kept, f)
		}
	}
	r.files.Set(chatId, kept, cache.NoExpiration)
}

func (r *SessionRepository) ClearFiles(chatId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.files.Get(chatId); found {
		r.files.Set(chatId, []*entity.UploadedFile{}, cache.NoExpiration)
	}
}

func (r *SessionRepository) TotalMessages() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, item := range r.histories.Items() {
		total += len(item.Object.([]*entity.ChatMessage))
	}
	return total
}

func (r *SessionRepository) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.histories.ItemCount()
}

func (r *SessionRepository) TotalFiles() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, item := range r.files.Items() {
		total += len(item.Object.([]*entity.UploadedFile))
	}
	return total
}

func (r *SessionRepository) Epoch() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.epoch
}

func (r *SessionRepository) HasMemory() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.hasMemory
}

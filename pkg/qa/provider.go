package qa

import (
	"context"

	"pdf-chat-be/internal/entity"
)

// Answerer produces an answer and a source attribution for a question asked
// against a session's uploaded files. Implementations must be safe for
// concurrent use; a real retrieval/LLM backend slots in here without touching
// the core, and must enforce its own timeout.
type Answerer interface {
	Answer(ctx context.Context, question string, files []*entity.UploadedFile) (answer string, source string, err error)
}

package qa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pdf-chat-be/internal/constant"
	"pdf-chat-be/internal/entity"
)

// MockProvider simulates PDF content analysis with a fixed keyword heuristic.
// It is deterministic apart from the optional simulated analysis delay.
type MockProvider struct {
	analysisDelay time.Duration
}

func NewMockProvider(analysisDelay time.Duration) *MockProvider {
	return &MockProvider{analysisDelay: analysisDelay}
}

func (p *MockProvider) Answer(ctx context.Context, question string, files []*entity.UploadedFile) (string, string, error) {
	if len(files) == 0 {
		return constant.AnswerNoDocuments, "", nil
	}

	if p.analysisDelay > 0 {
		select {
		case <-ctx.Done():
			return "", "", ctx.Err()
		case <-time.After(p.analysisDelay):
		}
	}

	lower := strings.ToLower(question)

	switch {
	case strings.Contains(lower, "summary") || strings.Contains(lower, "summarize"):
		return fmt.Sprintf(constant.AnswerSummaryTemplate, len(files)), sourceFor(files), nil
	case strings.Contains(lower, "what") || strings.Contains(lower, "how") || strings.Contains(lower, "why"):
		return fmt.Sprintf(constant.AnswerFactualTemplate, question), sourceFor(files), nil
	default:
		return fmt.Sprintf(constant.AnswerGenericTemplate, question), sourceFor(files), nil
	}
}

func sourceFor(files []*entity.UploadedFile) string {
	if len(files) > 1 {
		return fmt.Sprintf(constant.SourceMultipleTemplate, len(files))
	}
	return files[0].Filename
}

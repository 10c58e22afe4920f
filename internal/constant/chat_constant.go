package constant

const (
	// MaxFileSize is the per-file upload limit (10 MiB), checked after the
	// full body has been read.
	MaxFileSize = 10 * 1024 * 1024

	AllowedFileExtension = ".pdf"

	DefaultStreamChunkSize = 3
	DefaultStreamDelayMs   = 100
	DefaultAnswerDelayMs   = 500
)

// Mock answer templates. These reproduce the placeholder responder's fixed
// phrasing; a real retrieval backend replaces the whole qa provider, not
// these strings.
const (
	AnswerNoDocuments = "I don't have any documents to reference. Please upload some PDFs first."

	AnswerSummaryTemplate = "Based on the uploaded document(s), here's a summary: " +
		"The documents contain information relevant to your query. " +
		"This is a mock response simulating content analysis from %d uploaded file(s)."

	AnswerFactualTemplate = "According to the uploaded documents, here's what I found: %s - " +
		"This is a simulated response that would typically be generated by analyzing " +
		"the PDF content using AI/LLM."

	AnswerGenericTemplate = "I found relevant information in your documents regarding: '%s'. " +
		"This response is generated from the uploaded PDF content analysis simulation."

	SourceMultipleTemplate = "Multiple sources (%d files)"
)

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
	"github.com/docuchat/docuchat/internal/core/ports/driving"
	"github.com/docuchat/docuchat/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// Default generation and retrieval parameters.
const (
	// DefaultContextTokens caps the retrieved context included in the
	// prompt.
	DefaultContextTokens = 4000

	// DefaultAnswerTokens caps the generated answer length.
	DefaultAnswerTokens = 1024

	// DefaultHistoryLimit bounds how many prior conversation messages
	// are replayed into the prompt.
	DefaultHistoryLimit = 10
)

// defaultSystemPrompt grounds the model in the retrieved context. Used
// when no prompt store is configured or the stored prompt is missing.
const defaultSystemPrompt = `You are a helpful assistant that answers questions about documents.
Answer ONLY using the provided document context. Do not use outside knowledge.
If the context does not contain the information needed to answer, reply exactly:
"I don't see information about that in the document."
Be concise and accurate. Quote the document where it helps.`

// chunkSeparator joins retrieved chunk texts inside the prompt.
const chunkSeparator = "\n\n---\n\n"

// ChatService orchestrates one retrieval-augmented chat turn:
// resolve the document, retrieve similar chunks, assemble a grounded
// prompt, generate. Failures are converted to a structured ChatResult
// at this boundary and never propagate past it.
type ChatService struct {
	docStore driven.DocumentStore
	vectors  driven.VectorStore
	llm      driven.LLMService

	// Optional collaborators.
	prompts   driven.PromptStore
	chatStore driven.ChatStore
	ingest    driving.IngestService

	topK          int
	contextTokens int
	answerTokens  int
	historyLimit  int
	counter       tokenCounter
}

// ChatOption configures the chat service.
type ChatOption func(*ChatService)

// WithPromptStore sets the store for the grounding system prompt.
func WithPromptStore(prompts driven.PromptStore) ChatOption {
	return func(s *ChatService) {
		s.prompts = prompts
	}
}

// WithChatStore enables conversation persistence.
func WithChatStore(store driven.ChatStore) ChatOption {
	return func(s *ChatService) {
		s.chatStore = store
	}
}

// WithIngestService enables the lazy-ingest fallback for documents
// that have no stored chunks yet.
func WithIngestService(ingest driving.IngestService) ChatOption {
	return func(s *ChatService) {
		s.ingest = ingest
	}
}

// WithTopK sets the number of chunks retrieved per turn.
func WithTopK(k int) ChatOption {
	return func(s *ChatService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithContextTokens sets the token budget for retrieved context.
func WithContextTokens(tokens int) ChatOption {
	return func(s *ChatService) {
		if tokens > 0 {
			s.contextTokens = tokens
		}
	}
}

// WithAnswerTokens sets the generation length cap.
func WithAnswerTokens(tokens int) ChatOption {
	return func(s *ChatService) {
		if tokens > 0 {
			s.answerTokens = tokens
		}
	}
}

// NewChatService creates a new chat service.
func NewChatService(
	docStore driven.DocumentStore,
	vectors driven.VectorStore,
	llm driven.LLMService,
	opts ...ChatOption,
) *ChatService {
	s := &ChatService{
		docStore:      docStore,
		vectors:       vectors,
		llm:           llm,
		topK:          driven.DefaultTopK,
		contextTokens: DefaultContextTokens,
		answerTokens:  DefaultAnswerTokens,
		historyLimit:  DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendMessage runs one chat turn against a document.
func (s *ChatService) SendMessage(ctx context.Context, documentID, message string) domain.ChatResult {
	answer, stage, err := s.run(ctx, documentID, message, nil, nil)
	if err != nil {
		logger.Warn("Chat turn failed at %s for document %s: %v", stage, documentID, err)
		return domain.Failure(err)
	}
	return domain.ChatResult{Success: true, Answer: answer}
}

// SendMessageStream runs one chat turn, forwarding token fragments to
// onToken in generation order.
func (s *ChatService) SendMessageStream(
	ctx context.Context, documentID, message string, onToken func(token string) error,
) domain.ChatResult {
	answer, stage, err := s.run(ctx, documentID, message, nil, onToken)
	if err != nil {
		logger.Warn("Chat turn failed at %s for document %s: %v", stage, documentID, err)
		return domain.Failure(err)
	}
	return domain.ChatResult{Success: true, Answer: answer}
}

// Converse runs one chat turn inside an existing conversation. The
// user message is appended before generation; the assistant answer is
// appended only on success, so a failed turn leaves the question on
// record without a phantom answer.
func (s *ChatService) Converse(ctx context.Context, conversationID, documentID, message string) domain.ChatResult {
	return s.converse(ctx, conversationID, documentID, message, nil)
}

// ConverseStream runs a conversation turn, forwarding token fragments
// to onToken in generation order. Persistence rules match Converse.
func (s *ChatService) ConverseStream(
	ctx context.Context, conversationID, documentID, message string, onToken func(token string) error,
) domain.ChatResult {
	return s.converse(ctx, conversationID, documentID, message, onToken)
}

func (s *ChatService) converse(
	ctx context.Context, conversationID, documentID, message string, onToken func(token string) error,
) domain.ChatResult {
	if s.chatStore == nil {
		if onToken != nil {
			return s.SendMessageStream(ctx, documentID, message, onToken)
		}
		return s.SendMessage(ctx, documentID, message)
	}

	if _, err := s.chatStore.GetConversation(ctx, conversationID); err != nil {
		logger.Warn("Chat turn failed: conversation %s: %v", conversationID, err)
		return domain.Failure(err)
	}

	history, err := s.recentHistory(ctx, conversationID)
	if err != nil {
		logger.Warn("Chat turn failed: history for %s: %v", conversationID, err)
		return domain.Failure(err)
	}

	now := time.Now()
	userMsg := &domain.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Role:           domain.RoleUser,
		Content:        message,
		CreatedAt:      now,
	}
	if err := s.chatStore.AppendMessage(ctx, userMsg); err != nil {
		logger.Warn("Chat turn failed: append user message: %v", err)
		return domain.Failure(err)
	}

	answer, stage, err := s.run(ctx, documentID, message, history, onToken)
	if err != nil {
		logger.Warn("Chat turn failed at %s for document %s: %v", stage, documentID, err)
		return domain.Failure(err)
	}

	assistantMsg := &domain.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Role:           domain.RoleAssistant,
		Content:        answer,
		CreatedAt:      time.Now(),
	}
	if err := s.chatStore.AppendMessage(ctx, assistantMsg); err != nil {
		// The answer exists; losing the record is a warning, not a
		// failed turn.
		logger.Warn("Could not record assistant message for %s: %v", conversationID, err)
	}

	return domain.ChatResult{Success: true, Answer: answer}
}

// run executes the turn's stage machine and returns the answer, the
// stage reached, and the first error encountered.
func (s *ChatService) run(
	ctx context.Context,
	documentID, message string,
	history []driven.ChatMessage,
	onToken func(token string) error,
) (string, domain.Stage, error) {
	stage := domain.StageIdle
	advance := func(next domain.Stage) {
		stage = next
		logger.Debug("Chat stage: %s", next)
	}

	logger.Section("Chat Turn")
	logger.Debug("Document: %s, question: %q", documentID, message)

	advance(domain.StageResolvingDocument)
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return "", stage, err
	}

	advance(domain.StageRetrieving)

	// Lazy-ingest fallback: a document uploaded before ingestion
	// succeeded has no chunks yet. The pipeline is idempotent and
	// serialised, so triggering it here is safe.
	count, err := s.vectors.Count(ctx, doc.ID)
	if err != nil {
		return "", stage, fmt.Errorf("%w: %w", domain.ErrRetrievalFailed, err)
	}
	if count == 0 && s.ingest != nil {
		logger.Info("Document %s has no chunks, ingesting before retrieval", doc.ID)
		if _, err := s.ingest.Ingest(ctx, doc.ID); err != nil {
			return "", stage, err
		}
	}

	scored, err := s.vectors.Query(ctx, doc.ID, message, s.topK)
	if err != nil {
		return "", stage, fmt.Errorf("%w: %w", domain.ErrRetrievalFailed, err)
	}
	logger.Debug("Retrieved %d chunks", len(scored))

	advance(domain.StagePromptAssembly)
	messages := s.assemblePrompt(scored, history, message)

	advance(domain.StageGenerating)
	opts := driven.ChatOptions{MaxTokens: s.answerTokens, Temperature: 0}

	var answer string
	if onToken != nil {
		answer, err = s.llm.ChatStream(ctx, messages, opts, onToken)
	} else {
		answer, err = s.llm.Chat(ctx, messages, opts)
	}
	if err != nil {
		return "", stage, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	advance(domain.StageDone)
	return answer, stage, nil
}

// assemblePrompt builds the message list: grounding system prompt with
// the retrieved context, bounded conversation history, then the user
// question.
func (s *ChatService) assemblePrompt(
	scored []domain.ScoredChunk, history []driven.ChatMessage, question string,
) []driven.ChatMessage {
	system := s.systemPrompt()
	contextText := s.contextWindow(scored)
	if contextText != "" {
		system += "\n\nDocument context:\n" + contextText
	}

	messages := make([]driven.ChatMessage, 0, len(history)+2)
	messages = append(messages, driven.ChatMessage{Role: "system", Content: system})
	messages = append(messages, history...)
	messages = append(messages, driven.ChatMessage{Role: "user", Content: question})
	return messages
}

// systemPrompt loads the grounding prompt, falling back to the
// embedded default when no store is configured or the load fails.
func (s *ChatService) systemPrompt() string {
	if s.prompts == nil {
		return defaultSystemPrompt
	}
	prompt, err := s.prompts.Load(driven.PromptChatSystem)
	if err != nil || strings.TrimSpace(prompt) == "" {
		logger.Debug("Prompt store fallback to embedded default: %v", err)
		return defaultSystemPrompt
	}
	return prompt
}

// contextWindow joins retrieved chunk texts until the token budget is
// spent. The best-scoring chunk is always included so the prompt never
// loses its grounding entirely.
func (s *ChatService) contextWindow(scored []domain.ScoredChunk) string {
	var parts []string
	used := 0
	for i, sc := range scored {
		tokens := s.counter.Count(sc.Chunk.Content)
		if i > 0 && used+tokens > s.contextTokens {
			logger.Debug("Context budget reached: %d of %d chunks included", i, len(scored))
			break
		}
		parts = append(parts, sc.Chunk.Content)
		used += tokens
	}
	return strings.Join(parts, chunkSeparator)
}

// recentHistory loads the tail of the conversation as prompt messages.
func (s *ChatService) recentHistory(ctx context.Context, conversationID string) ([]driven.ChatMessage, error) {
	msgs, err := s.chatStore.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(msgs) > s.historyLimit {
		msgs = msgs[len(msgs)-s.historyLimit:]
	}

	history := make([]driven.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, driven.ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	return history, nil
}

package driving

import (
	"context"

	"github.com/docuchat/docuchat/internal/core/domain"
)

// ChatService answers natural-language questions grounded in one
// document's content.
type ChatService interface {
	// SendMessage runs one chat turn against a document. Failures are
	// converted to a structured result; the error return is reserved
	// for programming errors (nil receiver wiring), not pipeline
	// failures.
	SendMessage(ctx context.Context, documentID, message string) domain.ChatResult

	// SendMessageStream behaves like SendMessage but forwards token
	// fragments to onToken as they arrive, in generation order. Tokens
	// are strictly append-only; the returned result carries the full
	// answer.
	SendMessageStream(ctx context.Context, documentID, message string, onToken func(token string) error) domain.ChatResult

	// Converse runs one chat turn inside a conversation, appending the
	// user message and, on success, the assistant answer.
	Converse(ctx context.Context, conversationID, documentID, message string) domain.ChatResult

	// ConverseStream behaves like Converse but forwards token fragments
	// to onToken as they arrive, in generation order.
	ConverseStream(ctx context.Context, conversationID, documentID, message string, onToken func(token string) error) domain.ChatResult
}

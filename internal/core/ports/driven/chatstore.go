package driven

import (
	"context"

	"github.com/docuchat/docuchat/internal/core/domain"
)

// ChatStore persists conversations and their messages.
// This is an optional service - when nil, answers are returned but
// not recorded.
type ChatStore interface {
	// SaveConversation stores or updates a conversation.
	SaveConversation(ctx context.Context, conv *domain.Conversation) error

	// GetConversation retrieves a conversation by ID.
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)

	// ListConversations returns a user's conversations, newest first.
	ListConversations(ctx context.Context, ownerID string) ([]domain.Conversation, error)

	// DeleteConversation removes a conversation; its messages cascade.
	DeleteConversation(ctx context.Context, id string) error

	// AppendMessage appends a message to a conversation.
	AppendMessage(ctx context.Context, msg *domain.Message) error

	// ListMessages returns a conversation's messages ordered by
	// creation time.
	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
}

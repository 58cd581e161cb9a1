package domain

import "time"

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	// RoleUser marks a message written by the user.
	RoleUser MessageRole = "user"

	// RoleAssistant marks a message generated by the model.
	RoleAssistant MessageRole = "assistant"
)

// Conversation groups the messages a user exchanges about a document.
type Conversation struct {
	// ID is the unique identifier for the conversation.
	ID string

	// OwnerID links to the user that started the conversation.
	OwnerID string

	// DocumentID optionally binds the conversation to one document.
	DocumentID *string

	// Title is an optional display title.
	Title string

	// CreatedAt is when the conversation was started.
	CreatedAt time.Time

	// UpdatedAt is when the last message was appended.
	UpdatedAt time.Time
}

// Message is a single turn within a conversation.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// ConversationID links to the parent Conversation.
	ConversationID string

	// Role is the message author.
	Role MessageRole

	// Content is the message text.
	Content string

	// CreatedAt orders messages within a conversation.
	CreatedAt time.Time
}

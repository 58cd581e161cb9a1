package driven

import "context"

// LLMService generates text from an assembled prompt.
//
// Implementations may include:
//   - Google Generative Language API (Gemini)
//   - OpenAI (GPT-4o and compatible chat-completion APIs)
type LLMService interface {
	// Chat produces a completion for the given messages.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ChatStream produces a completion incrementally, invoking onToken
	// for each generated token fragment in generation order, then
	// returning the full text. Implementations that cannot stream fall
	// back to a single onToken call with the complete answer.
	// A non-nil error from onToken aborts generation.
	ChatStream(ctx context.Context, messages []ChatMessage, opts ChatOptions, onToken func(token string) error) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures generation behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return an error
	// so consumers can fall back to their built-in default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptChatSystem is the grounding system prompt for document chat.
	// The template has no format placeholders; retrieved context and the
	// question are supplied as separate messages.
	PromptChatSystem = "chat_system"
)

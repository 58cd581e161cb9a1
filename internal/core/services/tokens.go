package services

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/docuchat/docuchat/internal/logger"
)

// tokenCounter counts prompt tokens with a cl100k_base encoder,
// falling back to a character estimate when the encoding cannot be
// loaded. The fallback overestimates slightly, which only makes the
// context window more conservative.
type tokenCounter struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
}

// Rough fallback: around four characters per token for English text.
const charsPerToken = 4

// promptEncoding is the BPE encoding used for budget counting.
const promptEncoding = "cl100k_base"

func (t *tokenCounter) Count(text string) int {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(promptEncoding)
		if err != nil {
			logger.Debug("Token encoding unavailable, using character estimate: %v", err)
			return
		}
		t.enc = enc
	})

	if t.enc != nil {
		return len(t.enc.Encode(text, nil, nil))
	}
	return (utf8.RuneCountInString(text) + charsPerToken - 1) / charsPerToken
}

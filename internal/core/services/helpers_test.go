package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
	"github.com/docuchat/docuchat/internal/core/ports/driving"
)

// stubEmbedder produces deterministic bag-of-words vectors so texts
// sharing terms score higher than unrelated texts. failuresLeft makes
// the first n batches fail with failErr, for retry tests.
type stubEmbedder struct {
	dims int

	mu           sync.Mutex
	failuresLeft int
	failErr      error
}

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{dims: 16}
}

func (e *stubEmbedder) vector(text string) []float32 {
	vec := make([]float32, e.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%uint32(e.dims)]++
	}
	vec[0]++ // never a zero vector
	return vec
}

func (e *stubEmbedder) takeFailure() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failuresLeft > 0 {
		e.failuresLeft--
		return e.failErr
	}
	return nil
}

func (e *stubEmbedder) Embed(_ context.Context, text string, _ driven.TaskType) ([]float32, error) {
	if err := e.takeFailure(); err != nil {
		return nil, err
	}
	return e.vector(text), nil
}

func (e *stubEmbedder) EmbedBatch(_ context.Context, texts []string, _ driven.TaskType) ([][]float32, error) {
	if err := e.takeFailure(); err != nil {
		return nil, err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = e.vector(text)
	}
	return vectors, nil
}

func (e *stubEmbedder) Dimensions() int { return e.dims }

func (e *stubEmbedder) ModelName() string { return "stub-embedder" }

// fakeLLM returns a scripted answer and records every prompt it saw.
type fakeLLM struct {
	answer string
	tokens []string
	err    error

	mu    sync.Mutex
	calls [][]driven.ChatMessage
}

func (l *fakeLLM) record(messages []driven.ChatMessage) {
	l.mu.Lock()
	l.calls = append(l.calls, messages)
	l.mu.Unlock()
}

func (l *fakeLLM) lastCall() []driven.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.calls) == 0 {
		return nil
	}
	return l.calls[len(l.calls)-1]
}

func (l *fakeLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	l.record(messages)
	if l.err != nil {
		return "", l.err
	}
	return l.answer, nil
}

func (l *fakeLLM) ChatStream(
	_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions, onToken func(token string) error,
) (string, error) {
	l.record(messages)
	if l.err != nil {
		return "", l.err
	}

	tokens := l.tokens
	if tokens == nil {
		tokens = []string{l.answer}
	}
	var full strings.Builder
	for _, token := range tokens {
		if err := onToken(token); err != nil {
			return "", err
		}
		full.WriteString(token)
	}
	return full.String(), nil
}

func (l *fakeLLM) ModelName() string { return "fake-llm" }

// fakeFetcher serves canned responses by URL.
type fakeFetcher struct {
	responses map[string][]byte
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	data, ok := f.responses[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstream, url)
	}
	return data, nil
}

// fakeIngest counts calls and delegates to fn.
type fakeIngest struct {
	fn func(ctx context.Context, documentID string) (driving.IngestStats, error)

	mu    sync.Mutex
	calls int
}

func (f *fakeIngest) Ingest(ctx context.Context, documentID string) (driving.IngestStats, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fn == nil {
		return driving.IngestStats{DocumentID: documentID}, nil
	}
	return f.fn(ctx, documentID)
}

func (f *fakeIngest) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

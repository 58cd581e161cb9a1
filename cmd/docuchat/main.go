// Command docuchat is the entrypoint for the document chat pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	configfile "github.com/docuchat/docuchat/internal/adapters/driven/config/file"
	googleembed "github.com/docuchat/docuchat/internal/adapters/driven/embedding/google"
	openaiembed "github.com/docuchat/docuchat/internal/adapters/driven/embedding/openai"
	"github.com/docuchat/docuchat/internal/adapters/driven/fetch"
	googlellm "github.com/docuchat/docuchat/internal/adapters/driven/llm/google"
	openaillm "github.com/docuchat/docuchat/internal/adapters/driven/llm/openai"
	"github.com/docuchat/docuchat/internal/adapters/driven/storage/sqlite"
	"github.com/docuchat/docuchat/internal/adapters/driven/vector"
	"github.com/docuchat/docuchat/internal/adapters/driving/cli"
	"github.com/docuchat/docuchat/internal/chunker"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
	"github.com/docuchat/docuchat/internal/core/services"
	"github.com/docuchat/docuchat/internal/extractors"
)

// version is overridden at build time via
// -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "docuchat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; keys may come from the environment.
	_ = godotenv.Load()

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	llm, err := buildLLM(cfg)
	if err != nil {
		return err
	}

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("prompt store: %w", err)
	}

	docStore := store.DocumentStore()
	chatStore := store.ChatStore()
	vectors := vector.NewStore(docStore, embedder)
	registry := extractors.DefaultRegistry()

	chunkOpts := []chunker.Option{}
	if size := cfg.GetInt("chunking.size"); size > 0 {
		chunkOpts = append(chunkOpts, chunker.WithChunkSize(size))
	}
	if overlap := cfg.GetInt("chunking.overlap"); overlap > 0 {
		chunkOpts = append(chunkOpts, chunker.WithOverlap(overlap))
	}

	ingest := services.NewIngestService(
		docStore, fetch.New(), registry, chunker.New(chunkOpts...), embedder, vectors,
	)
	documents := services.NewDocumentService(docStore, ingest)

	chatOpts := []services.ChatOption{
		services.WithPromptStore(prompts),
		services.WithChatStore(chatStore),
		services.WithIngestService(ingest),
	}
	if k := cfg.GetInt("retrieval.top_k"); k > 0 {
		chatOpts = append(chatOpts, services.WithTopK(k))
	}
	if budget := cfg.GetInt("retrieval.context_tokens"); budget > 0 {
		chatOpts = append(chatOpts, services.WithContextTokens(budget))
	}
	chat := services.NewChatService(docStore, vectors, llm, chatOpts...)

	cli.SetVersion(version)
	cli.SetDocumentService(documents)
	cli.SetChatService(chat)
	cli.SetIngestService(ingest)
	cli.SetChatStore(chatStore)

	return cli.Execute()
}

// buildEmbedder selects the embedding provider from config, defaulting
// to Google.
func buildEmbedder(cfg *configfile.ConfigStore) (driven.EmbeddingService, error) {
	model := cfg.GetString("embedding.model")

	switch cfg.GetString("embedding.provider") {
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  model,
		})
	case "google", "":
		return googleembed.NewEmbeddingService(googleembed.Config{
			APIKey: googleAPIKey(),
			Model:  model,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.GetString("embedding.provider"))
	}
}

// buildLLM selects the generation provider from config, defaulting to
// Google.
func buildLLM(cfg *configfile.ConfigStore) (driven.LLMService, error) {
	model := cfg.GetString("llm.model")

	switch cfg.GetString("llm.provider") {
	case "openai":
		return openaillm.NewLLMService(openaillm.Config{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  model,
		})
	case "google", "":
		return googlellm.NewLLMService(googlellm.Config{
			APIKey: googleAPIKey(),
			Model:  model,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.GetString("llm.provider"))
	}
}

// googleAPIKey accepts either of the common variable names.
func googleAPIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GOOGLE_API_KEY")
}

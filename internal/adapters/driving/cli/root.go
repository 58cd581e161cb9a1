// Package cli implements the docuchat command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docuchat/docuchat/internal/core/ports/driven"
	"github.com/docuchat/docuchat/internal/core/ports/driving"
	"github.com/docuchat/docuchat/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services are injected by the composition root before Execute runs.
var (
	documentService driving.DocumentService
	chatService     driving.ChatService
	ingestService   driving.IngestService
	chatStore       driven.ChatStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "docuchat",
	Short: "Chat with your documents",
	Long: `Docuchat ingests documents into an embedded vector store and answers
questions about them with retrieval-augmented generation.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose pipeline logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetDocumentService injects the document service.
func SetDocumentService(s driving.DocumentService) {
	documentService = s
}

// SetChatService injects the chat service.
func SetChatService(s driving.ChatService) {
	chatService = s
}

// SetIngestService injects the ingest service.
func SetIngestService(s driving.IngestService) {
	ingestService = s
}

// SetChatStore injects the conversation store used by the HTTP API.
func SetChatStore(s driven.ChatStore) {
	chatStore = s
}

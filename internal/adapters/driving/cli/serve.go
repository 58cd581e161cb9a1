package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/docuchat/docuchat/internal/adapters/driving/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serves the document and chat API over HTTP.

Endpoints cover document upload and management, chat turns (with
optional SSE token streaming), and conversation history.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if documentService == nil || chatService == nil {
		return errors.New("document and chat services not configured")
	}

	server := api.NewServer(documentService, chatService, chatStore)
	cmd.Printf("Listening on %s\n", serveAddr)
	return server.Run(serveAddr)
}

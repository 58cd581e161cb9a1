package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	ingestOwner string
	ingestName  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file-or-url]",
	Short: "Upload and ingest a document",
	Long: `Registers a document and runs the ingestion pipeline:
detect format, extract text, chunk, embed, store.

The argument is a local file path or an http(s) URL.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var reingestCmd = &cobra.Command{
	Use:   "reingest [doc-id]",
	Short: "Re-run ingestion for an existing document",
	Args:  cobra.ExactArgs(1),
	RunE:  runReingest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestOwner, "owner", "local", "owner id for the document")
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "display name (defaults to the file name)")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(reingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	filePath := args[0]
	name := ingestName
	if name == "" {
		name = filepath.Base(filePath)
	}

	doc, err := documentService.Upload(cmd.Context(), ingestOwner, name, filePath)
	if err != nil {
		return fmt.Errorf("failed to ingest document: %w", err)
	}

	cmd.Printf("Ingested %s\n", doc.Name)
	cmd.Printf("  ID: %s\n", doc.ID)
	return nil
}

func runReingest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	stats, err := ingestService.Ingest(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to re-ingest document: %w", err)
	}

	cmd.Printf("Re-ingested %s\n", stats.DocumentID)
	cmd.Printf("  Type:       %s\n", stats.MIMEType)
	cmd.Printf("  Characters: %d\n", stats.Characters)
	cmd.Printf("  Chunks:     %d\n", stats.Chunks)
	return nil
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentsOwner string

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage uploaded documents",
	Long:  `List, rename, or remove uploaded documents.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsRenameCmd = &cobra.Command{
	Use:   "rename [doc-id] [new-name]",
	Short: "Rename a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentsRename,
}

var documentsRmCmd = &cobra.Command{
	Use:   "rm [doc-id]",
	Short: "Remove a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsRm,
}

func init() {
	documentsCmd.PersistentFlags().StringVar(&documentsOwner, "owner", "local", "owner id")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsRenameCmd)
	documentsCmd.AddCommand(documentsRmCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context(), documentsOwner)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name:     %s\n", docs[i].Name)
		cmd.Printf("    Path:     %s\n", docs[i].FilePath)
		cmd.Printf("    Uploaded: %s\n", docs[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentsRename(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Rename(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename document: %w", err)
	}
	cmd.Printf("Renamed %s to %q\n", args[0], args[1])
	return nil
}

func runDocumentsRm(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}

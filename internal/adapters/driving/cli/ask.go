package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askStream bool

var askCmd = &cobra.Command{
	Use:   "ask [doc-id] [question]",
	Short: "Ask a question about a document",
	Long: `Runs one retrieval-augmented chat turn: the most similar chunks of the
document are retrieved and the model answers using only that context.`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askStream, "stream", false, "print the answer as it is generated")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	documentID, question := args[0], args[1]

	if askStream {
		result := chatService.SendMessageStream(cmd.Context(), documentID, question, func(token string) error {
			cmd.Print(token)
			return nil
		})
		if !result.Success {
			return fmt.Errorf("chat failed: %s", result.Error)
		}
		cmd.Println()
		return nil
	}

	result := chatService.SendMessage(cmd.Context(), documentID, question)
	if !result.Success {
		return fmt.Errorf("chat failed: %s", result.Error)
	}
	cmd.Println(result.Answer)
	return nil
}

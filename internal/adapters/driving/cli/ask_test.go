package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docuchat/docuchat/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [doc-id] [question]", askCmd.Use)
}

func TestAskCmd_PrintsAnswer(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "doc-1", "What is the termination clause?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "stub answer")
}

func TestAskCmd_FailureReportsKind(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	chatService = &stubChatService{result: domain.ChatResult{Success: false, Error: domain.KindDocumentNotFound}}

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ask", "missing-doc", "hello"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DocumentNotFound")
}

func TestAskCmd_StreamPrintsTokens(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	chatService = &stubChatService{
		result: domain.ChatResult{Success: true, Answer: "streamed answer"},
		tokens: []string{"streamed ", "answer"},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "doc-1", "question", "--stream"})
	defer func() {
		rootCmd.SetArgs(nil)
		askStream = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "streamed answer")
}

func TestAskCmd_RequiresTwoArgs(t *testing.T) {
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ask", "doc-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

// internal/cli/chat_test.go
package parley

import (
	"bytes"
	"context"
	"testing"

	"github.com/mwiater/parley/internal/appconfig"
)

// TestChatCmd tests the functionality of the chat command. It ensures that
// the command hands the loaded application configuration to the interactive
// interface along with a cancellable context. The test swaps the GUI entry
// point for a recorder, runs the command, and verifies the handoff.
func TestChatCmd(t *testing.T) {
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	originalStartGUI := startGUI
	originalConfig := currentConfig
	defer func() {
		startGUI = originalStartGUI
		currentConfig = originalConfig
	}()

	cfg := &appconfig.Config{ChatModel: "gpt-4o-mini"}
	currentConfig = cfg

	startCalled := false
	var receivedCfg *appconfig.Config
	startGUI = func(ctx context.Context, c *appconfig.Config, cancel context.CancelFunc) {
		startCalled = true
		receivedCfg = c
		if ctx == nil {
			t.Error("expected a context")
		}
		cancel()
	}

	chatCmd.Run(chatCmd, []string{})

	if !startCalled {
		t.Fatal("expected startGUI to be invoked")
	}
	if receivedCfg != cfg {
		t.Fatal("expected startGUI to receive the loaded configuration")
	}
}

package parley

import (
	"context"
)

func runChat() {
	ctx, cancel := context.WithCancel(context.Background())
	startGUI(ctx, GetConfig(), cancel)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/selfunzip/cmd/selfunzip"
	"github.com/arthur-debert/selfunzip/pkg/logging"
	"github.com/arthur-debert/selfunzip/pkg/native"
	"github.com/arthur-debert/selfunzip/pkg/ui/styles"
)

func main() {
	ctx, stop := native.ExitCleanup.Interrupts(context.Background())

	rootCmd := selfunzip.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)

	stop()
	if n := native.ExitCleanup.Pending(); n > 0 {
		logger := logging.GetLogger("main")
		logger.Debug().Int("paths", n).Msg("Deleting leftover temp files")
	}
	native.ExitCleanup.Run()

	if err != nil {
		fmt.Fprintln(os.Stderr, styles.Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

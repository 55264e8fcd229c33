// Command scuttle is the CLI boundary over internal/engine: it owns flag
// parsing and process exit codes only, never cryptographic logic.
package main

import (
	"os"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(exitIOFailure)
	}
	defer logger.Sync()

	root := newRootCommand(logger)
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is overwritten at build time via -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand(logger *zap.Logger) *cobra.Command {
	var silent bool

	root := &cobra.Command{
		Use:           "scuttle",
		Short:         "Encrypt, decrypt, and manage tokens with the scuttle-crypto engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	root.PersistentFlags().BoolVar(&silent, "silent", false, "suppress non-essential log output")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if silent {
			logger = zap.NewNop()
		}
		cmd.SetContext(withLogger(cmd.Context(), logger))
	}

	root.AddCommand(
		newEncryptCommand(),
		newDecryptCommand(),
		newKeygenCommand(),
		newListAlgorithmsCommand(),
		newListEncodersCommand(),
	)
	return root
}

// keyFromHex decodes the --key flag's hex string into raw key bytes.
// Key material never travels through a CLI flag as raw bytes, so hex
// is the wire format for both this flag and keygen's stdout.
func keyFromHex(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("--key is not valid hex: %w", err)
	}
	return key, nil
}

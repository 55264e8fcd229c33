package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/parsonious/scuttle-crypto/internal/engine"
)

func newKeygenCommand() *cobra.Command {
	var (
		algorithm  string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a CSPRNG key sized for the given algorithm",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := engine.GenerateKey(algorithm)
			if err != nil {
				return err
			}
			return writeOutput(outputFile, hex.EncodeToString(key))
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", "AESG", "algorithm name (see list-algorithms)")
	cmd.Flags().StringVar(&outputFile, "output_file", "", "write the hex key here instead of stdout")
	return cmd
}

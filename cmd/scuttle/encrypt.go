package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/parsonious/scuttle-crypto/internal/engine"
)

func newEncryptCommand() *cobra.Command {
	var (
		algorithm    string
		encoder      string
		title        string
		instructions string
		keyHex       string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a title/instructions pair into a container token",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keyFromHex(keyHex)
			if err != nil {
				return err
			}

			token, err := engine.EncryptAndEncode(algorithm, encoder, title, instructions, key)
			if err != nil {
				loggerFrom(cmd.Context()).Warn("encrypt failed", zap.Error(err))
				return err
			}
			return writeOutput(outputFile, token)
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", "AESG", "algorithm name (see list-algorithms)")
	cmd.Flags().StringVar(&encoder, "encoder", "", "encoder name; defaults to the algorithm's own")
	cmd.Flags().StringVar(&title, "title", "", "title field of the encrypted payload")
	cmd.Flags().StringVar(&instructions, "instructions", "", "instructions field of the encrypted payload")
	cmd.Flags().StringVar(&keyHex, "key", "", "hex-encoded key")
	cmd.Flags().StringVar(&outputFile, "output_file", "", "write the token here instead of stdout")
	cmd.MarkFlagRequired("key")
	return cmd
}

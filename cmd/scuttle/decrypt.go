package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/parsonious/scuttle-crypto/internal/engine"
)

func newDecryptCommand() *cobra.Command {
	var (
		encoder    string
		token      string
		keyHex     string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a container token back into its title/instructions pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keyFromHex(keyHex)
			if err != nil {
				return err
			}

			tok, err := readToken(token)
			if err != nil {
				return err
			}

			title, instructions, err := engine.DecodeAndDecrypt(encoder, tok, key)
			if err != nil {
				loggerFrom(cmd.Context()).Warn("decrypt failed", zap.Error(err))
				return err
			}
			return writeOutput(outputFile, fmt.Sprintf("%s\n%s", title, instructions))
		},
	}

	cmd.Flags().StringVar(&encoder, "encoder", "base64url", "encoder the token was produced with")
	cmd.Flags().StringVar(&token, "token", "", "token to decrypt; reads stdin if omitted")
	cmd.Flags().StringVar(&keyHex, "key", "", "hex-encoded key")
	cmd.Flags().StringVar(&outputFile, "output_file", "", "write title/instructions here instead of stdout")
	cmd.MarkFlagRequired("key")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parsonious/scuttle-crypto/internal/engine"
)

func newListAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-algorithms",
		Short: "List every registered algorithm and its key size",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range engine.ListAlgorithms() {
				legacy := ""
				if a.Legacy {
					legacy = " (legacy)"
				}
				fmt.Printf("%-4s  key=%-3d  encoder=%-10s  priority=%-3d%s\n",
					a.Name, a.KeySize, a.DefaultEncoder, a.Priority, legacy)
			}
			return nil
		},
	}
}

func newListEncodersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-encoders",
		Short: "List every registered encoder",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, e := range engine.ListEncoders() {
				urlSafe := ""
				if e.IsURLSafe {
					urlSafe = " (url-safe)"
				}
				fmt.Printf("%s%s\n", e.Name, urlSafe)
			}
			return nil
		},
	}
}

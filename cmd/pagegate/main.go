package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/alex65536/pagegate/internal/util/style"
	"github.com/alex65536/pagegate/internal/version"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: version.Version,
		Use:     "pagegate",
		Short:   "Serves pages that can be hidden behind configuration flags",
	}
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newFlagsCmd())
	rootCmd.AddCommand(newResolveCmd())
	// Errors go through colorable so the prefix renders on Windows consoles too.
	rootCmd.SetErr(style.Stderr())
	rootCmd.SetErrPrefix(style.WithSE("error:", 31, 1))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

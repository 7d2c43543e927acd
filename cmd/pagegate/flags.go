package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alex65536/pagegate/internal/flagstore"
)

func newFlagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags [KEY...]",
		Short: "Show how keys of a flags file evaluate",
		Long: `Prints every requested key with its value and whether it enables the pages
gated by it. Without keys, all keys of the file are printed.
`,
	}
	path := cmd.Flags().StringP("flags", "f", "", "flags file")
	if err := cmd.MarkFlagRequired("flags"); err != nil {
		panic(err)
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		store, err := flagstore.Open(*path)
		if err != nil {
			return err
		}
		keys := args
		if len(keys) == 0 {
			keys = store.Keys()
		}
		out := cmd.OutOrStdout()
		for _, key := range keys {
			v := store.Get(key)
			state := "off"
			if flagstore.Truthy(v) {
				state = "on"
			}
			if _, err := fmt.Fprintf(out, "%s\t%s\t%v\n", key, state, v); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	}
	return cmd
}

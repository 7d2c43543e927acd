package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alex65536/pagegate/internal/util/httputil"
	"github.com/alex65536/pagegate/internal/view"
)

type namedView string

func (v namedView) DisplayName() string                   { return string(v) }
func (namedView) ServeHTTP(http.ResponseWriter, *http.Request) {}

var cliResolver = view.Resolver{
	NotFound: namedView("NotFound"),
	Generic:  namedView("GenericError"),
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve CODE...",
		Short: "Show which error view renders each status code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				code, err := strconv.Atoi(arg)
				if err != nil {
					code = httputil.NoStatus
				}
				name := view.DisplayName(cliResolver.Resolve(code))
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, name); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			return nil
		},
	}
}

// Package main provides the gqlrdf binary entry point.
// gqlrdf exports every entity type of a GraphQL API as a Turtle file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "gqlrdf"
)

// errExportFailed signals a completed run with failed types.
var errExportFailed = errors.New("export finished with failed types")

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Export a GraphQL API as Turtle",
		Long: `gqlrdf reads the JSON schema of a GraphQL API, queries the entity list
of every type and writes the entities as RDF, one Turtle file per type.

Entities carrying an id and a __typename become RDF resources whose class and
IRI are derived from the type name. Every other field is mapped into the
configured vocabulary.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(exportCmd(), configCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})
	return cmd
}

// Package cli implements cookedctl, the operator command line for a cooked session.
package cli

import (
	"fmt"
	"slices"

	"cooked/config"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	BackendURL string
	BucketURL  string

	// loadConfig is swapped in tests
	loadConfig func() (*config.Config, error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for cookedctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{loadConfig: config.New})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cookedctl",
		Short: "cookedctl - drive a cooked session from the terminal",
		Long:  "Sign in, inspect and act on bookings against the backend, sharing the session store with the cooked service.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.BackendURL, "backend", "", "backend base URL, overrides backend.baseUrl")
	cmd.PersistentFlags().StringVar(&opts.BucketURL, "session-bucket", "", "session bucket URL, overrides session.bucketUrl")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewBookingsCommand(opts))
	cmd.AddCommand(NewActCommand(opts))

	return cmd
}

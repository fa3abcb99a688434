// Package cli defines the chemgw command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// NewRootCommand creates the root command with global flags and
// subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "chemgw",
		Short: "Chemistry API gateway — routes questions to specialised backends",
		Long: "chemgw fronts a set of chemistry microservices. It classifies free-text\n" +
			"questions into extraction, spectroscopy or retrosynthesis intents, routes\n" +
			"them to the matching backend, and falls back to a completion model when\n" +
			"no backend applies.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: environment only)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		NewServeCommand(opts),
		NewClassifyCommand(),
	)

	return cmd
}

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information (injected at build time via -ldflags)
var (
	Version   = "dev"     // Set via -ldflags "-X github.com/f3rmion/elshare/internal/cli.Version=x.y.z"
	GitCommit = "unknown" // Set via -ldflags "-X github.com/f3rmion/elshare/internal/cli.GitCommit=abc123"
)

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.OutputFormat == string(OutputFormatJSON) {
				return a.printer(cmd).PrintDocument(map[string]string{
					"version":    Version,
					"commit":     GitCommit,
					"go_version": runtime.Version(),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "elshare version %s\n", Version)
			fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			return nil
		},
	}
}

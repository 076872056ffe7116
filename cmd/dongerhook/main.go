package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/dongerhook/internal/config"
)

const version = "0.1.0"

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

// resolveConfigPath returns --config, or the discovered default.
func (o *rootOptions) resolveConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.Discover()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "dongerhook",
		Short: "Discord interaction endpoint that replies with dongers",
		Long: `dongerhook serves a Discord interactions endpoint. It verifies the
Ed25519 signature on every request, answers pings, and replies to the
slash command with a random donger, optionally from a chosen category.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		fmt.Sprintf("path to config file (default $%s or ./%s)", config.EnvConfigPath, config.DefaultConfigFile))

	root.AddCommand(
		newServeCmd(opts),
		newConfigCmd(opts),
		newContentCmd(opts),
		newKeygenCmd(),
		newSignCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dongerhook version %s\n", version)
		},
	}
}

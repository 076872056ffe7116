package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/dongerhook/internal/config"
	"github.com/mattjoyce/dongerhook/internal/doctor"
)

var errInvalidConfig = errors.New("configuration invalid")

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "System configuration and integrity",
	}
	cmd.AddCommand(newConfigCheckCmd(opts), newConfigLockCmd(opts))
	return cmd
}

func newConfigCheckCmd(opts *rootOptions) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate configuration, content table and integrity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read(opts.resolveConfigPath())
			if err != nil {
				return err
			}

			result := doctor.New(cfg).Validate()
			if jsonOut {
				out, err := doctor.FormatJSON(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			} else {
				fmt.Fprint(cmd.OutOrStdout(), doctor.FormatHuman(result))
			}

			if !result.Valid {
				return errInvalidConfig
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output result as JSON")
	return cmd
}

func newConfigLockCmd(opts *rootOptions) *cobra.Command {
	var dryRun, verbose bool

	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Authorize current state (write " + config.ChecksumFile + ")",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read(opts.resolveConfigPath())
			if err != nil {
				return err
			}

			report, err := config.Lock(cfg, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if verbose || dryRun {
				for _, f := range report.Files {
					fmt.Fprintf(out, "  %s  %s\n", f.Hash, f.Key)
				}
			}
			if dryRun {
				fmt.Fprintf(out, "Dry run: would write %d hash(es) to %s\n", len(report.Files), report.ChecksumPath)
				return nil
			}
			fmt.Fprintf(out, "Wrote %d hash(es) to %s\n", len(report.Files), report.ChecksumPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute hashes without writing")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list each hashed file")
	return cmd
}

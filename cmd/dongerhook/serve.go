package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/dongerhook/internal/config"
	"github.com/mattjoyce/dongerhook/internal/content"
	"github.com/mattjoyce/dongerhook/internal/interaction"
	"github.com/mattjoyce/dongerhook/internal/log"
	"github.com/mattjoyce/dongerhook/internal/metrics"
	"github.com/mattjoyce/dongerhook/internal/signature"
	"github.com/mattjoyce/dongerhook/internal/webhook"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the interaction endpoint in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(opts.resolveConfigPath(), listen)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "override server.listen (host:port)")
	return cmd
}

// loadServeConfig reads the config, applies flag overrides and validates.
func loadServeConfig(configPath, listen string) (*config.Config, error) {
	cfg, err := config.Read(configPath)
	if err != nil {
		return nil, err
	}
	if listen != "" {
		cfg.Server.Listen = listen
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log.Setup(cfg.Service.LogLevel, cfg.Service.LogFormat)
	logger := log.WithComponent("main")
	logger.Info("dongerhook starting", "version", version, "config", cfg.SourcePath)

	integrity, err := config.VerifyIntegrity(cfg)
	if err != nil {
		return fmt.Errorf("integrity check: %w", err)
	}
	for _, w := range integrity.Warnings {
		logger.Warn("integrity", "warning", w)
	}
	if !integrity.Passed {
		return fmt.Errorf("integrity check failed: %s", strings.Join(integrity.Errors, "; "))
	}

	srv, _, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}

	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("dongerhook stopped")
	return nil
}

// buildServer wires the verifier, content table and dispatcher behind the
// HTTP server.
func buildServer(cfg *config.Config, logger *slog.Logger) (*webhook.Server, *content.Table, error) {
	table, err := content.Open(cfg.Content.Path)
	if err != nil {
		return nil, nil, err
	}
	metrics.ContentEntries.Set(float64(table.Len()))
	logger.Info("content table loaded",
		"path", cfg.Content.Path,
		"categories", len(table.Categories()),
		"entries", table.Len(),
	)

	verifier, err := signature.NewVerifier(cfg.Discord.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("discord.public_key: %w", err)
	}
	logger.Info("signature verifier ready", "public_key", hex.EncodeToString(verifier.PublicKey()))

	dispatcher := interaction.NewDispatcher(verifier, table, log.WithComponent("interaction"))

	wcfg, err := webhook.FromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return webhook.New(wcfg, dispatcher, log.WithComponent("webhook")), table, nil
}

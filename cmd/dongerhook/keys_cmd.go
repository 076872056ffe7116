package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/dongerhook/internal/signature"
)

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate an Ed25519 key pair for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, priv, err := signature.GenerateKey()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "public_key:  %s\n", pub)
			fmt.Fprintf(out, "private_key: %s\n", priv)
			return nil
		},
	}
}

func newSignCmd() *cobra.Command {
	var (
		keyHex    string
		timestamp string
		bodyPath  string
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print signature headers for a request body",
		Long: `Print the X-Signature-Ed25519 and X-Signature-Timestamp headers for a
request body, so the endpoint can be exercised without the platform.`,
		Example: `  dongerhook sign --key "$PRIVATE_KEY" --body ping.json
  echo -n '{"type":1}' | dongerhook sign --key "$PRIVATE_KEY"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyHex == "" {
				return errors.New("--key is required")
			}
			key, err := signature.ParsePrivateKey(keyHex)
			if err != nil {
				return err
			}

			body, err := readBody(cmd, bodyPath)
			if err != nil {
				return err
			}
			if timestamp == "" {
				timestamp = strconv.FormatInt(time.Now().Unix(), 10)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", signature.SignatureHeader, signature.Sign(key, timestamp, body))
			fmt.Fprintf(out, "%s: %s\n", signature.TimestampHeader, timestamp)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyHex, "key", "", "hex private key (seed or full key)")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "timestamp to sign (default: now, unix seconds)")
	cmd.Flags().StringVar(&bodyPath, "body", "-", "file holding the exact request body, or - for stdin")
	return cmd
}

func readBody(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

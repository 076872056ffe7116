// Package webhook serves the Discord interaction endpoint over HTTP.
//
// The platform delivers every interaction as a signed POST to a single
// configured path. This package owns the transport concerns around that
// request; verification and routing live in package interaction.
//
// # Security Model
//
// - Body size limits enforced before anything else (413 if exceeded)
// - The full raw body is buffered, since the Ed25519 signature covers it byte for byte
// - Signature failures always produce the same 401 body
// - Request logging excludes bodies and signature headers
//
// # Configuration
//
// The server is configured from dongerhook.yaml:
//
//	server:
//	  listen: ":8000"
//	  path: /
//	  max_body_size: 1MB
//	  read_timeout: 10s
//	  write_timeout: 10s
//	  shutdown_timeout: 5s
//	metrics:
//	  enabled: true
//	  path: /metrics
//
// # Request Flow
//
//  1. HTTP POST arrives at the configured path
//  2. Request id assigned (X-Request-Id, UUID)
//  3. Body read up to max_body_size (413 if larger, 400 on read error)
//  4. Dispatcher verifies, parses and routes the interaction
//  5. Reply rendered as JSON with the status the dispatcher chose
//
// # Other Routes
//
// - GET /healthz: liveness probe, always {"status":"ok"}
// - GET /metrics: Prometheus exposition, when enabled
//
// # Example Usage
//
//	cfg, err := webhook.FromConfig(appConfig)
//	if err != nil {
//		return err
//	}
//	server := webhook.New(cfg, dispatcher, logger)
//	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
//		return err
//	}
package webhook

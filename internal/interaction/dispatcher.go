package interaction

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mattjoyce/dongerhook/internal/signature"
)

//go:generate mockgen -destination=mocks/mock_selector.go -package=mocks github.com/mattjoyce/dongerhook/internal/interaction Selector

// Selector picks the content for a command reply. A nil category means the
// command carried none.
type Selector interface {
	Select(category *string) (string, error)
}

// SignatureChecker verifies a detached signature over timestamp||body.
type SignatureChecker interface {
	Verify(timestamp string, body []byte, signatureHex string) bool
}

// Dispatcher turns a signed request into a Reply. It holds only values
// fixed at construction and is safe for concurrent use.
type Dispatcher struct {
	verifier SignatureChecker
	content  Selector
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(verifier SignatureChecker, content Selector, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		verifier: verifier,
		content:  content,
		logger:   logger,
	}
}

// Dispatch runs one request through verification, parsing and routing.
// It always returns a Reply; failures never escape as errors.
func (d *Dispatcher) Dispatch(ctx context.Context, req RawRequest) Reply {
	logger := d.logger
	if req.ID != "" {
		logger = logger.With("request_id", req.ID)
	}

	timestamp := req.Header.Get(signature.TimestampHeader)
	sig := req.Header.Get(signature.SignatureHeader)
	if !d.verifier.Verify(timestamp, req.Body, sig) {
		logger.WarnContext(ctx, "unsigned request",
			"method", req.Method,
			"has_signature", sig != "",
			"has_timestamp", timestamp != "",
		)
		return Unauthorized()
	}

	env, err := Parse(req.Body)
	if err != nil {
		logger.InfoContext(ctx, "bad request", "error", err)
		return BadRequest()
	}

	logger = logger.With("type", env.Type.String())
	if env.ID != "" {
		logger = logger.With("interaction_id", env.ID)
	}
	logger.InfoContext(ctx, "valid request")

	return d.route(ctx, logger, env)
}

func (d *Dispatcher) route(ctx context.Context, logger *slog.Logger, env *Envelope) Reply {
	switch env.Type {
	case TypePing:
		return Pong()
	case TypeApplicationCommand:
		return d.command(ctx, logger, env)
	default:
		logger.InfoContext(ctx, "bad request", "error", "unrecognized interaction type")
		return BadRequest()
	}
}

func (d *Dispatcher) command(ctx context.Context, logger *slog.Logger, env *Envelope) Reply {
	category, err := env.Category()
	if err != nil {
		logger.InfoContext(ctx, "bad request", "error", err)
		return BadRequest()
	}

	content, err := d.content.Select(category)
	if err != nil {
		// Tables are validated at startup, so this is a configuration fault.
		logger.ErrorContext(ctx, "content selection failed", "error", err)
		return Failure(http.StatusInternalServerError, MessageInternal)
	}

	if category != nil {
		logger.DebugContext(ctx, "command answered", "category", *category)
	}
	return Message(content)
}

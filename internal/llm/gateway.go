package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abhisek/studymate/internal/logger"
	"github.com/abhisek/studymate/internal/store"
)

// Availability reports whether a gateway has a real backend.
type Availability struct {
	Available bool
	Reason    string
}

// Available is the availability of a gateway backed by a provider.
func Available() Availability { return Availability{Available: true} }

// Unavailable is the availability of a gateway that only simulates.
func Unavailable(reason string) Availability {
	return Availability{Reason: reason}
}

func (a Availability) String() string {
	if a.Available {
		return "available"
	}
	return "unavailable: " + a.Reason
}

// Completion is the result of a gateway call.
type Completion struct {
	Text string

	// Simulated is set when Text came from the canned replies rather
	// than the provider.
	Simulated bool

	// Structured is set when the request carried a Schema and Text is
	// JSON that validated against it.
	Structured bool

	Model string
}

// Gateway is the chat-completion client used by the rest of the app.
// Complete never fails: with no provider, or when the provider errors,
// it returns a simulated reply instead.
type Gateway struct {
	provider Provider
	avail    Availability
	cfg      Config
	log      *logger.Logger
}

// NewGateway wraps provider. A nil provider yields an unavailable gateway
// with the given reason.
func NewGateway(provider Provider, reason string, cfg Config, log *logger.Logger) *Gateway {
	g := &Gateway{provider: provider, cfg: cfg, log: logger.OrNop(log)}
	if provider == nil {
		if reason == "" {
			reason = "no provider configured"
		}
		g.avail = Unavailable(reason)
	} else {
		g.avail = Available()
	}
	return g
}

// NewGatewayFromConfig builds the provider described by cfg. Any
// construction error becomes the reason the gateway is unavailable.
func NewGatewayFromConfig(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) *Gateway {
	p, err := NewProvider(ctx, cfg, eventRepo, log)
	if err != nil {
		logger.OrNop(log).Info("llm gateway running in simulation mode", "reason", err.Error())
		return NewGateway(nil, err.Error(), cfg, log)
	}
	return NewGateway(p, "", cfg, log)
}

// Availability reports whether real completions are possible.
func (g *Gateway) Availability() Availability {
	return g.avail
}

// ModelID returns the provider's model, or "simulated".
func (g *Gateway) ModelID() string {
	if g.provider == nil {
		return "simulated"
	}
	return g.provider.ModelID()
}

// Complete sends req to the provider, or simulates a reply.
func (g *Gateway) Complete(ctx context.Context, req Request) Completion {
	if req.Temperature == 0 {
		req.Temperature = g.cfg.Temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = g.cfg.MaxTokens
	}

	if g.provider == nil {
		return g.simulate(ctx, req, g.cfg.SimulatedDelay)
	}

	callCtx := ctx
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	resp, err := g.provider.Generate(callCtx, req)
	if err == nil {
		text := strings.TrimSpace(string(resp.Content))
		if text == "" {
			g.log.Warn("llm returned empty content, simulating", logFields(ctx)...)
			return g.simulate(ctx, req, 0)
		}
		return Completion{Text: text, Structured: req.Schema != nil, Model: resp.Model}
	}

	// Unvalidated content is still useful to lenient parsers.
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) && len(strings.TrimSpace(string(invalid.Content))) > 0 {
		g.log.Warn("llm response failed validation", logFields(ctx, "error", err)...)
		return Completion{Text: strings.TrimSpace(string(invalid.Content)), Model: g.provider.ModelID()}
	}

	var auth *ErrAuth
	if errors.As(err, &auth) {
		g.log.Error("llm credential rejected, simulating", logFields(ctx, "model", g.provider.ModelID(), "error", err)...)
	} else {
		g.log.Warn("llm request failed, simulating", logFields(ctx, "error", err)...)
	}
	return g.simulate(ctx, req, 0)
}

func (g *Gateway) simulate(ctx context.Context, req Request, delay time.Duration) Completion {
	if delay > 0 {
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
		case <-t.C:
		}
	}
	return Completion{Text: Simulate(req), Simulated: true, Model: "simulated"}
}

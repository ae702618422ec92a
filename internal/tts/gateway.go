package tts

import (
	"context"
	"strings"

	"github.com/abhisek/studymate/internal/logger"
)

// Availability reports whether the gateway can reach a speech service.
type Availability struct {
	Available bool
	Reason    string
}

func Available() Availability { return Availability{Available: true} }

func Unavailable(reason string) Availability {
	return Availability{Reason: reason}
}

func (a Availability) String() string {
	if a.Available {
		return "available"
	}
	return "unavailable: " + a.Reason
}

// Synthesizer turns text into audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Audio, error)
}

// Gateway is the speech client used by narration. Synthesize returns nil
// whenever real audio is unavailable; callers fall back to local speech.
type Gateway struct {
	synth Synthesizer
	avail Availability
	cache Cache
	cfg   Config
	log   *logger.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithCache stores synthesized audio in c.
func WithCache(c Cache) Option {
	return func(g *Gateway) { g.cache = c }
}

// NewGateway wraps synth. A nil synth yields an unavailable gateway.
func NewGateway(synth Synthesizer, reason string, cfg Config, log *logger.Logger, opts ...Option) *Gateway {
	g := &Gateway{synth: synth, cfg: cfg, log: logger.OrNop(log)}
	if synth == nil {
		if reason == "" {
			reason = "no speech service configured"
		}
		g.avail = Unavailable(reason)
	} else {
		g.avail = Available()
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// NewGatewayFromConfig builds an ElevenLabs-backed gateway, plus the
// configured cache. Cache setup failures are logged and ignored.
func NewGatewayFromConfig(ctx context.Context, cfg Config, log *logger.Logger) *Gateway {
	log = logger.OrNop(log)
	if err := cfg.Validate(); err != nil {
		log.Info("speech gateway using local speech", "reason", err.Error())
		return NewGateway(nil, err.Error(), cfg, log)
	}

	var opts []Option
	switch {
	case cfg.RedisURL != "":
		c, err := NewRedisCache(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Warn("audio cache disabled", "backend", "redis", "error", err)
		} else {
			opts = append(opts, WithCache(c))
		}
	case cfg.CacheDir != "":
		c, err := NewDiskCache(cfg.CacheDir)
		if err != nil {
			log.Warn("audio cache disabled", "backend", "disk", "error", err)
		} else {
			opts = append(opts, WithCache(c))
		}
	}
	return NewGateway(NewElevenLabsClient(cfg), "", cfg, log, opts...)
}

func (g *Gateway) Availability() Availability {
	return g.avail
}

// Synthesize returns audio for text, or nil when the caller should use
// local speech.
func (g *Gateway) Synthesize(ctx context.Context, text string) *Audio {
	if g.synth == nil {
		return nil
	}
	clean := StripMarkdown(text)
	if clean == "" {
		return nil
	}

	key := CacheKey(g.cfg.VoiceID, g.cfg.ModelID, clean)
	if g.cache != nil {
		data, err := g.cache.Get(ctx, key)
		if err != nil {
			g.log.Warn("audio cache read failed", "error", err)
		} else if len(data) > 0 {
			return &Audio{Data: data, ContentType: "audio/mpeg"}
		}
	}

	audio, err := g.synth.Synthesize(ctx, clean)
	if err != nil {
		g.log.Warn("speech synthesis failed", "error", err)
		return nil
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, key, audio.Data); err != nil {
			g.log.Warn("audio cache write failed", "error", err)
		}
	}
	return audio
}

// StripMarkdown removes heading and emphasis markers.
func StripMarkdown(text string) string {
	return strings.TrimSpace(strings.NewReplacer("#", "", "*", "").Replace(text))
}

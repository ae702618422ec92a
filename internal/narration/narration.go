// Package narration reads lesson text aloud. Audio comes from the speech
// gateway when it has any; otherwise a local speech engine is used.
package narration

import (
	"context"
	"fmt"

	"github.com/abhisek/studymate/internal/logger"
	"github.com/abhisek/studymate/internal/tts"
)

// Synthesizer produces audio, or nil when local speech should be used.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) *tts.Audio
}

// Player plays synthesized audio until it finishes or ctx is cancelled.
type Player interface {
	Play(ctx context.Context, audio *tts.Audio) error
}

// Speaker speaks plain text with a local engine.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Narrator speaks text through the best available route.
type Narrator struct {
	synth   Synthesizer
	player  Player
	speaker Speaker
	log     *logger.Logger
}

func NewNarrator(synth Synthesizer, player Player, speaker Speaker, log *logger.Logger) *Narrator {
	return &Narrator{
		synth:   synth,
		player:  player,
		speaker: speaker,
		log:     logger.OrNop(log).With("component", "narrator"),
	}
}

// Narrate blocks until the text has been spoken or ctx is done.
// A failed audio playback falls back to local speech.
func (n *Narrator) Narrate(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	if n.synth != nil && n.player != nil {
		if audio := n.synth.Synthesize(ctx, text); audio != nil {
			err := n.player.Play(ctx, audio)
			if err == nil || ctx.Err() != nil {
				return err
			}
			n.log.Warn("audio playback failed, using local speech", "error", err)
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if n.speaker == nil {
		return fmt.Errorf("no local speech engine")
	}
	return n.speaker.Speak(ctx, tts.StripMarkdown(text))
}

package narration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/abhisek/studymate/internal/tts"
)

// Commands that can play an mp3 file, in preference order.
var playerCandidates = [][]string{
	{"afplay"},
	{"mpg123", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"mpv", "--no-video", "--really-quiet"},
}

// Commands that speak text passed as the last argument.
var speakerCandidates = [][]string{
	{"say"},
	{"espeak-ng"},
	{"espeak"},
	{"spd-say", "--wait"},
}

// ExecPlayer plays audio with a system binary.
type ExecPlayer struct {
	argv []string
}

// NewExecPlayer finds an audio player on PATH.
func NewExecPlayer() (*ExecPlayer, error) {
	argv, err := lookup(playerCandidates)
	if err != nil {
		return nil, fmt.Errorf("no audio player found: %w", err)
	}
	return &ExecPlayer{argv: argv}, nil
}

func (p *ExecPlayer) Play(ctx context.Context, audio *tts.Audio) error {
	f, err := os.CreateTemp("", "studymate-*.mp3")
	if err != nil {
		return fmt.Errorf("create temp audio: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(audio.Data); err != nil {
		f.Close()
		return fmt.Errorf("write temp audio: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp audio: %w", err)
	}

	args := append(append([]string{}, p.argv[1:]...), f.Name())
	return run(ctx, p.argv[0], args...)
}

// ExecSpeaker speaks with the platform's speech command.
type ExecSpeaker struct {
	argv []string
}

// NewExecSpeaker finds a speech command on PATH.
func NewExecSpeaker() (*ExecSpeaker, error) {
	if runtime.GOOS == "windows" {
		return nil, fmt.Errorf("local speech is not supported on %s", runtime.GOOS)
	}
	argv, err := lookup(speakerCandidates)
	if err != nil {
		return nil, fmt.Errorf("no speech engine found: %w", err)
	}
	return &ExecSpeaker{argv: argv}, nil
}

func (s *ExecSpeaker) Speak(ctx context.Context, text string) error {
	args := append(append([]string{}, s.argv[1:]...), text)
	return run(ctx, s.argv[0], args...)
}

func lookup(candidates [][]string) ([]string, error) {
	var lastErr error
	for _, argv := range candidates {
		path, err := exec.LookPath(argv[0])
		if err != nil {
			lastErr = err
			continue
		}
		return append([]string{path}, argv[1:]...), nil
	}
	return nil, lastErr
}

func run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}

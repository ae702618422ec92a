package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/studymate/internal/config"
	"github.com/abhisek/studymate/internal/lessons"
	"github.com/abhisek/studymate/internal/llm"
	"github.com/abhisek/studymate/internal/logger"
	"github.com/abhisek/studymate/internal/narration"
	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/progress"
	"github.com/abhisek/studymate/internal/services"
	"github.com/abhisek/studymate/internal/store"
	"github.com/abhisek/studymate/internal/syllabus"
	"github.com/abhisek/studymate/internal/tts"
	"github.com/spf13/cobra"
)

// appRuntime bundles everything a command needs. Close releases it.
type appRuntime struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store
	chat  *llm.Gateway
	svc   *services.Services

	// firstRun is set when no profile was stored yet.
	firstRun bool
}

type runtimeOptions struct {
	// logToFile keeps log lines off the terminal while the TUI owns it.
	logToFile bool
	// voice builds the speech gateway and narrator.
	voice bool
}

// openRuntime loads configuration, opens the store, and builds the
// gateways and services.
func openRuntime(cmd *cobra.Command, opts runtimeOptions) (*appRuntime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logOpts := logger.Options{Mode: cfg.LogMode, HashSalt: cfg.LogHashSalt}
	if opts.logToFile {
		logOpts.Path = cfg.LogPath
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetHashSalt(cfg.LogHashSalt)

	userID, err := cfg.ResolveUserID()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.StoreURL())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	rt := &appRuntime{cfg: cfg, log: log, store: st}
	rt.chat = llm.NewGatewayFromConfig(ctx, cfg.LLM, st.EventRepo(), log)

	profiles := profile.NewProvider(st.ProfileRepo(), userID, log)
	exists, err := profiles.Load(ctx)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load profile: %w", err)
	}
	rt.firstRun = !exists

	svc := &services.Services{
		Profiles:     profiles,
		Catalog:      syllabus.NewCatalog(st.SyllabusRepo(), log),
		Lessons:      lessons.NewGenerator(rt.chat, lessons.DefaultConfig(), log),
		Recorder:     progress.NewRecorder(st.ProgressRepo(), st.RoadmapRepo(), log),
		Interactions: st.InteractionRepo(),
		Log:          log,
		Chat:         rt.chat.Availability(),
		Voice:        tts.Unavailable("voice disabled"),
	}
	if opts.voice {
		voice := tts.NewGatewayFromConfig(ctx, cfg.TTS, log)
		svc.Voice = voice.Availability()
		if n := newNarrator(voice, log); n != nil {
			svc.Narrator = n
		}
	}
	rt.svc = svc

	log.Info("studymate started", "user_id", userID, "backend", st.Dialect(), "ai", rt.chat.Availability().String())
	return rt, nil
}

// newNarrator wires synthesized audio and local speech, whichever the
// machine supports. It returns nil when neither is available.
func newNarrator(voice *tts.Gateway, log *logger.Logger) *narration.Narrator {
	var (
		player  narration.Player
		speaker narration.Speaker
	)
	if p, err := narration.NewExecPlayer(); err == nil {
		player = p
	} else {
		log.Info("no audio player found", "error", err)
	}
	if s, err := narration.NewExecSpeaker(); err == nil {
		speaker = s
	} else {
		log.Info("no local speech engine found", "error", err)
	}
	if player == nil && speaker == nil {
		return nil
	}
	return narration.NewNarrator(voice, player, speaker, log)
}

func (rt *appRuntime) Close() {
	if err := rt.store.Close(); err != nil {
		rt.log.Warn("close store", "error", err)
	}
	rt.log.Sync()
}

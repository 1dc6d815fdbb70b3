package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/setfall/internal/assets"
	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/core"
	"github.com/vovakirdan/setfall/internal/platform/tui"
	"github.com/vovakirdan/setfall/internal/sets"
	"github.com/vovakirdan/setfall/internal/storage"
)

const imageTimeout = 10 * time.Second

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// loadGameConfig reads the config file and applies the difficulty preset.
func loadGameConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	switch preset := config.DifficultyPreset(flagDifficulty); preset {
	case "", config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		config.ApplyPreset(&cfg, preset)
	default:
		return cfg, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
	}
	return cfg, nil
}

// newLogger writes to the --log file. Without one, logs go to fallback.
func newLogger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = fallback
	var closer io.Closer = nopCloser{}
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "setfall",
		Level:           level,
	})
	return logger, closer, nil
}

// buildHost assembles everything a game session needs. logTo receives logs
// when no --log file is given. The returned func releases what was opened.
func buildHost(logTo io.Writer) (tui.Host, func(), error) {
	logger, logCloser, err := newLogger(logTo)
	if err != nil {
		return tui.Host{}, nil, err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		logCloser.Close()
		return tui.Host{}, nil, err
	}

	list, err := sets.Load(flagSets)
	if err != nil {
		logCloser.Close()
		return tui.Host{}, nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Play without persistence
		logger.Warn("could not open database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	}

	var images *assets.Cache
	if !flagNoImages {
		images = assets.NewCache(assets.NewHTTPLoader(imageTimeout), logger)
	}

	runtime := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW, runtime.ScreenH = w, h
	}
	if flagFPS > 0 {
		runtime.TickRate = flagFPS
	}
	runtime.Seed = flagSeed

	host := tui.Host{
		Runtime: runtime,
		Config:  cfg,
		Sets:    list,
		Images:  images,
		Store:   store,
		Logger:  logger,
	}

	cleanup := func() {
		images.Close()
		if store != nil {
			store.Close()
		}
		logCloser.Close()
	}
	return host, cleanup, nil
}

// openStore opens the database for the read-only commands.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return store, nil
}

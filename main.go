package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sadopc/pomo/internal/alert"
	"github.com/sadopc/pomo/internal/config"
	"github.com/sadopc/pomo/internal/session"
	"github.com/sadopc/pomo/internal/store"
	"github.com/sadopc/pomo/internal/tui"
)

func main() {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	created, initErr := config.Init(cfgPath)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg)
	defer closeLog()

	if initErr != nil {
		logger.Warn("could not write default config", "path", cfgPath, "err", initErr)
	} else if created {
		logger.Info("wrote default config", "path", cfgPath)
	}

	s, err := store.New(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	logger.Info("starting", "config", cfgPath, "db", cfg.DatabasePath)

	sess := session.Load(s, session.WithLogger(logger))
	player := alert.New(cfg.Alert.Command)

	app := tui.NewApp(sess, player, cfg.Alert.Sound)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the configured log file since the terminal belongs to
// the UI. Without a usable file, logging is discarded.
func newLogger(cfg config.Config) (*log.Logger, func()) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err == nil {
			if f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pomo",
		Level:           level,
	})
	return logger, closeFn
}

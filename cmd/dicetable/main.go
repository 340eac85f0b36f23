// Package main provides the dicetable terminal dice roller.
// It throws dice across the terminal and shows the result of each roll.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicetable/internal/config"
	"github.com/cory-johannsen/dicetable/internal/frontend/terminal"
	"github.com/cory-johannsen/dicetable/internal/game/dice"
	"github.com/cory-johannsen/dicetable/internal/game/preset"
	"github.com/cory-johannsen/dicetable/internal/observability"
	"github.com/cory-johannsen/dicetable/internal/server"
	"github.com/cory-johannsen/dicetable/internal/shell"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (built-in defaults when empty)")
	presetsPath := flag.String("presets", "", "path to a presets YAML file (overrides presets.path)")
	seed := flag.Uint64("seed", 0, "replay rolls from this seed instead of crypto/rand")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *presetsPath != "" {
		cfg.Presets.Path = *presetsPath
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	console, err := terminal.NewConsole(os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatal("dicetable needs an interactive terminal", zap.Error(err))
	}

	presets, err := preset.Load(cfg.Presets.Path)
	if err != nil {
		logger.Fatal("loading presets", zap.Error(err))
	}

	src := dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	}
	roller := dice.NewLoggedRoller(src, logger)
	screen := terminal.NewScreen(os.Stdout, console.Size)
	sh := shell.New(os.Stdin, os.Stdout, screen, console, roller, presets, cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Registered first so it is stopped last, after the shell.
	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("terminal", &server.FuncService{
		StopFn: func() {
			screen.Write(terminal.ShowCursor, terminal.ExitAltScrn)
			_ = screen.Flush()
			if err := console.Restore(); err != nil {
				logger.Warn("restoring terminal", zap.Error(err))
			}
		},
	})
	lifecycle.Add("shell", &server.FuncService{
		StartFn: func() error {
			return sh.Run(ctx)
		},
		StopFn: cancel,
	})

	logger.Info("dicetable initialized",
		zap.Duration("startup", time.Since(start)),
		zap.Int("presets", presets.Len()),
		zap.Bool("seeded", *seed != 0),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("dicetable error", zap.Error(err))
	}
}

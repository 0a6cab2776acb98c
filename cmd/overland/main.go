// Package main is the entry point for Overland.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/samdwyer/overland/internal/game"
	"github.com/samdwyer/overland/internal/gamedata"
	"github.com/samdwyer/overland/internal/grid"
	"github.com/samdwyer/overland/internal/logger"
	"github.com/samdwyer/overland/internal/telemetry"
	"github.com/samdwyer/overland/internal/ui"
	"github.com/samdwyer/overland/internal/world"
)

func main() {
	// Load .env for local development; variables may also be set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	seed := flag.String("seed", cfg.Seed, "world seed")
	dump := flag.String("dump", "", "print a WxH block of terrain around the origin and exit, e.g. 80x40")
	flag.Parse()
	cfg.Seed = *seed

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	if *dump != "" {
		logger.Init(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		if err := runDump(ctx, cfg, *dump); err != nil {
			logger.Log.WithError(err).Fatal("dump failed")
		}
		return
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logOut, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()
	logger.Init(cfg.LogLevel, cfg.LogFormat, logOut)

	g, err := game.New(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to initialize game")
	}
	if err := g.Run(ctx); err != nil {
		logger.Log.WithError(err).Fatal("game error")
	}
}

func runDump(ctx context.Context, cfg game.Config, size string) error {
	width, height, err := parseSize(size)
	if err != nil {
		return err
	}
	pal, err := ui.NewPalette(gamedata.MustLoadTerrainRegistry())
	if err != nil {
		return err
	}
	w := world.New(world.NewNoiseGenerator(cfg.Seed))
	return ui.Dump(ctx, os.Stdout, w, pal, grid.Pt(0, 0), width, height)
}

// parseSize parses "WxH" into positive dimensions.
func parseSize(s string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	if width, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if height, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return width, height, nil
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

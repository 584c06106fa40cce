package main

import (
	"cubetris/client"
	"cubetris/cube"
	"cubetris/scores"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\n\r\033[?25h"
)

func main() {
	speed := flag.Int("speed", int(cube.Slow), "drop speed: 0 slow, 1 normal, 2 fast")
	theme := flag.Int("theme", 0, "layer palette: 0, 1 or 2")
	seed := flag.Int64("seed", 0, "fixed piece sequence seed, 0 for random")
	addr := flag.String("addr", "localhost:9000", "server address for online games")
	logPath := flag.String("log", "", "write debug logs to this file")
	scoresPath := flag.String("scores", "", "high score file, defaults to the user config directory")
	flag.Parse()

	cfg, err := config(*speed, *theme)
	if err != nil {
		log.Fatalf("invalid options: %v", err)
	}

	logger, closeLog, err := newLogger(*logPath)
	if err != nil {
		log.Fatalf("unable to open log file: %v", err)
	}
	defer closeLog()

	if *scoresPath == "" {
		if *scoresPath, err = scores.DefaultPath(); err != nil {
			logger.Warn("high scores disabled", slog.String("error", err.Error()))
		}
	}
	opts := &client.Options{Config: cfg, Address: *addr, Seed: *seed}
	if *scoresPath != "" {
		opts.Scores = scores.NewStore(*scoresPath)
	}

	restore := startRawConsole()
	defer restore()

	c, err := client.New(logger, opts)
	if err != nil {
		restore()
		log.Fatalf("unable to start client: %v", err)
	}
	c.Start()
}

func config(speed, theme int) (cube.Config, error) {
	cfg, err := cube.DefaultConfig().WithSpeed(cube.Speed(speed))
	if err != nil {
		return cube.Config{}, err
	}
	if cfg, err = cfg.WithTheme(theme); err != nil {
		return cube.Config{}, err
	}
	return cfg, cfg.Validate()
}

// newLogger logs JSON to path. Without a path logs are discarded since the
// terminal belongs to the game.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	l := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return l, func() { f.Close() }, nil
}

func startRawConsole() func() {
	fmt.Print(hideCursor)
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("Error setting terminal to raw mode: %v", err)
	}

	var restored bool
	return func() {
		if restored {
			return
		}
		restored = true
		if err := term.Restore(int(os.Stdin.Fd()), oldState); err != nil {
			log.Fatalf("unable to restore the terminal original state: %v", err)
		}
		fmt.Print(showCursor)
	}
}

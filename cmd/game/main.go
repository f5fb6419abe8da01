package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/meteors/internal/clock"
	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/leaderboard"
	"github.com/tomz197/meteors/internal/loop"
	"github.com/tomz197/meteors/internal/loop/client"
	"github.com/tomz197/meteors/internal/object"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings := config.Load()

	// The terminal belongs to the game, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, settings.LogLevel)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := clock.System{}
	g := loop.New(loop.Options{
		Field:       object.Field{Width: float64(settings.FieldWidth), Height: float64(settings.FieldHeight)},
		Clock:       src,
		Rand:        rand.New(rand.NewSource(settings.SeedOrNow())),
		Leaderboard: leaderboard.Open(settings.SaveName, logger),
		Logger:      logger,
	})

	c := client.New(g, bufio.NewReader(os.Stdin), os.Stdout, client.Options{
		Logger:   logger,
		Clock:    src,
		MaxDelta: settings.MaxDelta,
		MaxFPS:   settings.MaxFPS,
	})
	return c.Run(ctx)
}

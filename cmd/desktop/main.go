package main

import (
	"math/rand"
	"os"

	"github.com/tomz197/meteors/internal/clock"
	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/leaderboard"
	"github.com/tomz197/meteors/internal/loop"
	"github.com/tomz197/meteors/internal/loop/desktop"
	"github.com/tomz197/meteors/internal/object"
)

func main() {
	settings := config.Load()
	logger := config.NewLogger(os.Stderr, settings.LogLevel)

	src := clock.System{}
	g := loop.New(loop.Options{
		Field:       object.Field{Width: float64(settings.FieldWidth), Height: float64(settings.FieldHeight)},
		Clock:       src,
		Rand:        rand.New(rand.NewSource(settings.SeedOrNow())),
		Leaderboard: leaderboard.Open(settings.SaveName, logger),
		Logger:      logger,
	})

	if err := desktop.Run(desktop.New(g, src, settings.MaxDelta), "Space Shooter"); err != nil {
		logger.Fatal("desktop host stopped", "err", err)
	}
}

package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lmarchant/wordle-duel/internal/httpserver"
	"github.com/lmarchant/wordle-duel/internal/room"
	"github.com/lmarchant/wordle-duel/internal/store"
	"github.com/lmarchant/wordle-duel/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cfg := words.NewStore()
	if err := cfg.LoadEnv(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list config")
	}

	games := store.NewMemoryStore()
	rooms := room.NewManager(room.NewMemoryStore(), cfg)

	go runCleanup(rooms)

	srv := httpserver.New(games, rooms, cfg)
	port := getEnv("PORT", "3001")
	log.Info().
		Str("port", port).
		Int("maxRounds", cfg.MaxRounds()).
		Int("wordListSize", cfg.Size()).
		Msg("starting wordle-duel server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// runCleanup sweeps expired rooms on a fixed interval. Sweep failures are
// logged and never break the schedule.
func runCleanup(rooms *room.Manager) {
	interval := envMinutes("CLEANUP_INTERVAL_MINUTES", 10)
	maxAge := envMinutes("ROOM_MAX_AGE_MINUTES", 30)

	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		cleaned, err := rooms.CleanupOld(context.Background(), maxAge)
		if err != nil {
			log.Warn().Err(err).Msg("room cleanup sweep failed")
			continue
		}
		if cleaned > 0 {
			log.Info().Int("cleaned", cleaned).Msg("cleaned up old rooms")
		}
	}
}

func envMinutes(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return time.Duration(def) * time.Minute
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

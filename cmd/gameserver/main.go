// Command gameserver runs the hexfront match server.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/talgya/hexfront/internal/api"
	"github.com/talgya/hexfront/internal/archive"
	"github.com/talgya/hexfront/internal/catalog"
	"github.com/talgya/hexfront/internal/engine"
	"github.com/talgya/hexfront/internal/entropy"
	"github.com/talgya/hexfront/internal/game"
)

func main() {
	godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("hexfront — hex territory match server")

	// ── Configuration ─────────────────────────────────────────────────
	cfg := catalog.DefaultTuning()
	if path := os.Getenv("GAME_CONFIG"); path != "" {
		loaded, err := catalog.LoadTuning(path)
		if err != nil {
			slog.Error("failed to load tuning", "error", err)
			os.Exit(1)
		}
		cfg = loaded
		slog.Info("tuning loaded", "path", path)
	}

	apiPort := 8080
	if p := os.Getenv("PORT"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			slog.Error("invalid PORT", "value", p)
			os.Exit(1)
		}
		apiPort = n
	}

	// ── Randomness ────────────────────────────────────────────────────
	var rng entropy.Source
	seedLabel := "crypto"
	if s := os.Getenv("GAME_SEED"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			slog.Error("invalid GAME_SEED", "value", s)
			os.Exit(1)
		}
		rng = entropy.Seeded(seed)
		seedLabel = s
	} else {
		rng = entropy.Crypto()
	}
	slog.Info("entropy source ready", "seed", seedLabel)

	// ── Match Archive ─────────────────────────────────────────────────
	dbPath := os.Getenv("ARCHIVE_PATH")
	if dbPath == "" {
		dbPath = "data/match.db"
	}
	os.MkdirAll(filepath.Dir(dbPath), 0755)
	db, err := archive.Open(dbPath)
	if err != nil {
		slog.Error("failed to open archive", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("archive opened", "path", dbPath)

	db.SaveMeta("seed", seedLabel)
	db.SaveMeta("started_at", time.Now().UTC().Format(time.RFC3339))

	// ── Game ──────────────────────────────────────────────────────────
	g := game.New(cfg, rng)
	g.SetEventSink(db.Record)
	slog.Info("lobby open",
		"board_radius", cfg.BoardRadius,
		"player_cap", cfg.PlayerCap,
		"teams", cfg.TeamCount,
	)

	eng := engine.New(g)

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("GAME_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("GAME_ADMIN_KEY not set — admin POST endpoints will be disabled")
	}

	apiServer := &api.Server{
		Game:     g,
		Eng:      eng,
		DB:       db,
		Port:     apiPort,
		AdminKey: adminKey,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nAPI: http://localhost:%d/api/v1/status\n", apiPort)
	fmt.Println("Waiting for players... (Ctrl+C to stop)")

	eng.Run()

	fmt.Println("Match server stopped.")
}

package main

import (
	"context"
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gomoku/engine"
)

func main() {
	apiURL := flag.String("api", getenv("BACKEND_URL", "http://localhost:8080"), "backend base URL")
	blackFlag := flag.String("black", "medium", "tier playing Black locally")
	whiteFlag := flag.String("white", "medium", "tier the backend plays White with")
	games := flag.Int("games", 10, "number of games")
	seed := flag.Int64("seed", 0, "random seed for local easy tier (0 picks one)")
	poll := flag.Duration("poll", 100*time.Millisecond, "status poll interval")
	gameTimeout := flag.Duration("game-timeout", 5*time.Minute, "abandon a game after this long")
	logPath := flag.String("log", "", "also append the log to this file")
	flag.Parse()

	logger, closeLog, err := buildLogger(*logPath)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer closeLog()

	blackTier, err := engine.ParseDifficulty(*blackFlag)
	if err != nil {
		logger.Fatalf("[trainer] %v", err)
	}
	whiteTier, err := engine.ParseDifficulty(*whiteFlag)
	if err != nil {
		logger.Fatalf("[trainer] %v", err)
	}
	if *games < 1 {
		*games = 1
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newBackendClient(*apiURL)
	if err := client.waitReady(ctx, 60*time.Second); err != nil {
		logger.Printf("[trainer] backend %s: %v", *apiURL, err)
		return
	}
	a := newArena(client, logger, rand.New(rand.NewSource(*seed)), blackTier, whiteTier)
	a.poll = *poll
	a.gameTimeout = *gameTimeout

	logger.Printf("[trainer] %d games, black=%s (local) white=%s (backend), seed=%d", *games, blackTier, whiteTier, *seed)
	if err := a.run(ctx, *games); err != nil {
		logger.Printf("[trainer] stopped: %v", err)
	}
	if err := client.stopGame(); err != nil {
		logger.Printf("[trainer] stop game: %v", err)
	}
}

func buildLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(os.Stdout, "", log.LstdFlags), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(io.MultiWriter(os.Stdout, f), "", log.LstdFlags)
	return logger, func() { _ = f.Close() }, nil
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"gomoku/engine"
)

const (
	eloK       = 24.0
	eloInitial = 1500.0
)

type gameResult int

const (
	resultDraw gameResult = iota
	resultBlackWin
	resultWhiteWin
)

func (r gameResult) String() string {
	switch r {
	case resultBlackWin:
		return "black"
	case resultWhiteWin:
		return "white"
	}
	return "draw"
}

// scoreForBlack is the Elo result from Black's side.
func (r gameResult) scoreForBlack() float64 {
	switch r {
	case resultBlackWin:
		return 1
	case resultWhiteWin:
		return 0
	}
	return 0.5
}

type contender struct {
	Name   string
	Elo    float64
	Wins   int
	Losses int
	Draws  int
}

type arena struct {
	client      *backendClient
	logger      *log.Logger
	rng         engine.RandomSource
	poll        time.Duration
	gameTimeout time.Duration
	blackTier   engine.Difficulty
	whiteTier   engine.Difficulty
	black       *contender
	white       *contender
}

func newArena(client *backendClient, logger *log.Logger, rng engine.RandomSource, blackTier, whiteTier engine.Difficulty) *arena {
	return &arena{
		client:      client,
		logger:      logger,
		rng:         rng,
		poll:        100 * time.Millisecond,
		gameTimeout: 5 * time.Minute,
		blackTier:   blackTier,
		whiteTier:   whiteTier,
		black:       &contender{Name: blackTier.String() + "/black", Elo: eloInitial},
		white:       &contender{Name: whiteTier.String() + "/white", Elo: eloInitial},
	}
}

// run plays games one after another and rates both sides after each one.
func (a *arena) run(ctx context.Context, games int) error {
	for i := 1; i <= games; i++ {
		start := time.Now()
		result, plies, err := a.playGame(ctx)
		if err != nil {
			return fmt.Errorf("game %d: %w", i, err)
		}
		a.record(result)
		a.logger.Printf("[trainer] game %d/%d winner=%s plies=%d elapsed=%s elo %s=%.1f %s=%.1f",
			i, games, result, plies, time.Since(start).Round(time.Millisecond),
			a.black.Name, a.black.Elo, a.white.Name, a.white.Elo)
	}
	for _, c := range a.standings() {
		a.logger.Printf("[trainer] %-14s elo=%7.1f w=%d l=%d d=%d", c.Name, c.Elo, c.Wins, c.Losses, c.Draws)
	}
	return nil
}

func (a *arena) record(result gameResult) {
	switch result {
	case resultBlackWin:
		a.black.Wins++
		a.white.Losses++
	case resultWhiteWin:
		a.white.Wins++
		a.black.Losses++
	default:
		a.black.Draws++
		a.white.Draws++
	}
	updateElo(a.black, a.white, result.scoreForBlack(), eloK)
}

func (a *arena) standings() []contender {
	list := []contender{*a.black, *a.white}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Elo > list[j].Elo
	})
	return list
}

// playGame starts a pve game on the backend, whose AI plays White, and plays
// Black locally until the backend reports the game as finished.
func (a *arena) playGame(ctx context.Context) (gameResult, int, error) {
	ctx, cancel := context.WithTimeout(ctx, a.gameTimeout)
	defer cancel()
	if err := a.client.startGame(a.whiteTier.String()); err != nil {
		return resultDraw, 0, err
	}
	player := engine.NewAIPlayer(a.blackTier, engine.DefaultConfig(), a.rng)
	for {
		status, err := a.client.status()
		if err != nil {
			return resultDraw, 0, err
		}
		if status.Status != "running" {
			return resultFromStatus(status), len(status.History), nil
		}
		if status.AiThinking || status.NextPlayer != 1 {
			if !sleepWithContext(ctx, a.poll) {
				return resultDraw, len(status.History), ctx.Err()
			}
			continue
		}
		state, err := stateFromHistory(status.History)
		if err != nil {
			return resultDraw, len(status.History), err
		}
		move, ok := player.ChooseMove(&state)
		if !ok {
			return resultDraw, len(status.History), nil
		}
		if err := a.client.move(move.X, move.Y); err != nil {
			return resultDraw, len(status.History), err
		}
	}
}

func resultFromStatus(status statusResponse) gameResult {
	switch status.Winner {
	case 1:
		return resultBlackWin
	case 2:
		return resultWhiteWin
	}
	return resultDraw
}

// stateFromHistory rebuilds the board from the backend's move list with
// Black to move.
func stateFromHistory(history []historyEntryDTO) (engine.GameState, error) {
	state := engine.NewGameState()
	for _, entry := range history {
		player := engine.PlayerBlack
		if entry.Player == 2 {
			player = engine.PlayerWhite
		}
		if err := state.Place(entry.X, entry.Y, player); err != nil {
			return engine.GameState{}, err
		}
	}
	state.ToMove = engine.PlayerBlack
	return state, nil
}

func updateElo(a *contender, b *contender, resultForA float64, k float64) {
	expA := 1.0 / (1.0 + math.Pow(10, (b.Elo-a.Elo)/400.0))
	expB := 1.0 / (1.0 + math.Pow(10, (a.Elo-b.Elo)/400.0))
	a.Elo += k * (resultForA - expA)
	b.Elo += k * ((1.0 - resultForA) - expB)
}

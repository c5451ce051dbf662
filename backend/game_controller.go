package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"gomoku/engine"
)

// GameController serialises every call into the current session. AI turns
// queued by the session run later on the base scheduler and take the same
// lock, so the session only ever sees one caller at a time.
type GameController struct {
	mu             sync.Mutex
	game           *engine.Game
	settings       engine.GameSettings
	started        bool
	configs        *ConfigStore
	base           engine.Scheduler
	publish        func(StatusResponse)
	logSearchStats bool
}

type ControllerOptions struct {
	// Scheduler runs deferred AI turns. Defaults to a time.AfterFunc
	// scheduler with Delay.
	Scheduler      engine.Scheduler
	Delay          time.Duration
	Publish        func(StatusResponse)
	LogSearchStats bool
}

type delayScheduler struct {
	delay time.Duration
}

func (s delayScheduler) Schedule(task func()) {
	time.AfterFunc(s.delay, task)
}

func NewGameController(configs *ConfigStore, opts ControllerOptions) *GameController {
	gc := &GameController{
		settings:       engine.DefaultGameSettings(),
		configs:        configs,
		base:           opts.Scheduler,
		publish:        opts.Publish,
		logSearchStats: opts.LogSearchStats,
	}
	if gc.base == nil {
		gc.base = delayScheduler{delay: opts.Delay}
	}
	gc.game = gc.newGame(gc.settings)
	return gc
}

func (gc *GameController) newGame(settings engine.GameSettings) *engine.Game {
	var game *engine.Game
	scheduler := engine.SchedulerFunc(func(task func()) {
		gc.base.Schedule(func() {
			gc.mu.Lock()
			defer gc.mu.Unlock()
			if game != gc.game {
				return
			}
			task()
			gc.logLastSearch(game)
		})
	})
	game = engine.NewGame(settings, scheduler, engine.WithConfig(gc.configs.Get()))
	game.Subscribe(func(event engine.Event) {
		gc.onEvent(game, event)
	})
	return game
}

// onEvent runs with gc.mu held, from inside the session.
func (gc *GameController) onEvent(game *engine.Game, event engine.Event) {
	if game != gc.game {
		return
	}
	switch event.Kind {
	case engine.EventMovePlaced:
		log.Printf("[backend] %s played (%d,%d) ai=%v", event.Entry.Player, event.Entry.Move.X, event.Entry.Move.Y, event.Entry.IsAi)
	case engine.EventGameOver:
		log.Printf("[backend] game over: %s", event.Snapshot.Status)
	}
	if gc.publish == nil {
		return
	}
	status := statusFromSnapshot(event.Snapshot, gc.started)
	status.Event = event.Kind.String()
	gc.publish(status)
}

func (gc *GameController) logLastSearch(game *engine.Game) {
	if !gc.logSearchStats {
		return
	}
	stats, ok := game.LastSearchStats()
	if !ok || stats.Nodes == 0 {
		return
	}
	hitRate := 0.0
	if stats.EvalCacheProbes > 0 {
		hitRate = float64(stats.EvalCacheHits) / float64(stats.EvalCacheProbes)
	}
	log.Printf("[ai] depth=%d nodes=%d cutoffs=%d eval_cache_hit=%.2f score=%.1f elapsed=%s",
		stats.Depth, stats.Nodes, stats.Cutoffs, hitRate, stats.Score, stats.Elapsed)
}

// StartGame replaces the session with a fresh one for settings, using the
// engine config currently in the store.
func (gc *GameController) StartGame(settings engine.GameSettings) StatusResponse {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.settings = settings
	gc.started = true
	gc.game.Close()
	gc.game = gc.newGame(settings)
	log.Printf("[backend] new game mode=%s difficulty=%s", settings.Mode, settings.Difficulty)
	return gc.statusLocked("start")
}

// Stop returns to the menu. The session is discarded, so a queued AI turn
// for it never reaches the new one.
func (gc *GameController) Stop() StatusResponse {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.started = false
	gc.game.Close()
	gc.game = gc.newGame(gc.settings)
	return gc.statusLocked("stop")
}

func (gc *GameController) ApplyHumanMove(move engine.Move) (engine.MoveOutcome, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.started {
		return engine.MoveOutcome{}, fmt.Errorf("%w: game not started", engine.ErrInvalidMove)
	}
	if !move.IsValid() {
		return engine.MoveOutcome{}, fmt.Errorf("%w: out of bounds (%d,%d)", engine.ErrInvalidMove, move.X, move.Y)
	}
	return gc.game.ApplyHumanMove(move.X, move.Y)
}

func (gc *GameController) Undo() error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.started {
		return fmt.Errorf("%w: game not started", engine.ErrUndoRefused)
	}
	return gc.game.Undo()
}

func (gc *GameController) Restart() StatusResponse {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Restart()
	return gc.statusLocked("")
}

func (gc *GameController) Status() StatusResponse {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.statusLocked("")
}

func (gc *GameController) statusLocked(event string) StatusResponse {
	status := statusFromSnapshot(gc.game.Snapshot(), gc.started)
	status.Event = event
	return status
}

package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"gomoku/engine"
)

func main() {
	modeFlag := flag.String("mode", "pve", "pvp or pve")
	difficultyFlag := flag.String("difficulty", "medium", "easy, medium or hard")
	seed := flag.Int64("seed", 0, "random seed for the easy tier (0 picks one)")
	delay := flag.Duration("delay", 300*time.Millisecond, "pause before the AI replies")
	flag.Parse()

	mode, err := engine.ParseGameMode(*modeFlag)
	if err != nil {
		log.Fatalf("[terminal] %v", err)
	}
	difficulty, err := engine.ParseDifficulty(*difficultyFlag)
	if err != nil {
		log.Fatalf("[terminal] %v", err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("[terminal] create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("[terminal] init screen: %v", err)
	}
	defer screen.Fini()

	settings := engine.GameSettings{Mode: mode, Difficulty: difficulty}
	view := newBoardView(screen, settings, interruptScheduler(screen, *delay), rand.New(rand.NewSource(*seed)))
	view.Run()
}

// interruptScheduler hands AI turns back to the event loop as interrupt
// events, so they run on the same goroutine as key handling.
func interruptScheduler(screen tcell.Screen, delay time.Duration) engine.Scheduler {
	return engine.SchedulerFunc(func(task func()) {
		time.AfterFunc(delay, func() {
			_ = screen.PostEvent(tcell.NewEventInterrupt(task))
		})
	})
}

package main

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"gomoku/engine"
)

func newTestView(t *testing.T, mode engine.GameMode, scheduler engine.Scheduler) (*boardView, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 30)
	settings := engine.GameSettings{Mode: mode, Difficulty: engine.DifficultyEasy}
	return newBoardView(screen, settings, scheduler, rand.New(rand.NewSource(3))), screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestCursorPlacesStoneAndRenders(t *testing.T) {
	view, screen := newTestView(t, engine.ModePvP, nil)
	view.handleKey(key(tcell.KeyRight))
	view.handleKey(key(tcell.KeyEnter))

	snap := view.game.Snapshot()
	if snap.Board.At(8, 7) != engine.CellBlack {
		t.Fatalf("expected a black stone at (8,7)")
	}
	view.draw()
	r, _, _, _ := screen.GetContent(boardOriginX+8*cellWidth, boardOriginY+7)
	if r != runeBlack {
		t.Fatalf("expected %q on screen, got %q", runeBlack, r)
	}

	view.handleKey(runeKey(' '))
	if !view.isError || !strings.Contains(view.message, "occupied") {
		t.Fatalf("expected occupied error, got %q", view.message)
	}
}

func TestCursorIsClamped(t *testing.T) {
	view, _ := newTestView(t, engine.ModePvP, nil)
	for i := 0; i < 20; i++ {
		view.handleKey(key(tcell.KeyLeft))
		view.handleKey(key(tcell.KeyDown))
	}
	if view.cursorX != 0 || view.cursorY != engine.BoardSize-1 {
		t.Fatalf("expected cursor at the bottom-left corner, got (%d,%d)", view.cursorX, view.cursorY)
	}
}

func TestUndoRestartAndQuitKeys(t *testing.T) {
	view, _ := newTestView(t, engine.ModePvP, nil)
	view.handleKey(key(tcell.KeyEnter))
	view.handleKey(runeKey('u'))
	if len(view.game.Snapshot().History) != 0 {
		t.Fatalf("expected undo to clear the move")
	}
	view.handleKey(key(tcell.KeyEnter))
	view.handleKey(runeKey('r'))
	if len(view.game.Snapshot().History) != 0 || view.game.UndosLeft() != 3 {
		t.Fatalf("expected a fresh game after restart")
	}
	if view.handleKey(runeKey('x')) {
		t.Fatalf("unbound key must not quit")
	}
	if !view.handleKey(runeKey('q')) || !view.handleKey(key(tcell.KeyEscape)) {
		t.Fatalf("expected q and Esc to quit")
	}
}

func TestThinkingStatusInPvE(t *testing.T) {
	scheduler := &engine.QueueScheduler{}
	view, _ := newTestView(t, engine.ModePvE, scheduler)
	view.handleKey(key(tcell.KeyEnter))
	if text := turnText(view.game.Snapshot()); !strings.Contains(text, "thinking") {
		t.Fatalf("expected thinking status, got %q", text)
	}
	view.handleKey(key(tcell.KeyUp))
	view.handleKey(key(tcell.KeyEnter))
	if !view.isError || view.message != "ai thinking" {
		t.Fatalf("expected ai thinking error, got %q", view.message)
	}
	scheduler.RunPending()
	if len(view.game.Snapshot().History) != 2 {
		t.Fatalf("expected the AI reply")
	}
}

func TestInterruptSchedulerPostsTask(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()

	ran := make(chan struct{})
	interruptScheduler(screen, 0).Schedule(func() { close(ran) })

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			if ev, ok := screen.PollEvent().(*tcell.EventInterrupt); ok {
				ev.Data().(func())()
				return
			}
		}
	}()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatalf("scheduled task never reached the event loop")
	}
	<-done
}

func TestReasonStripsSentinel(t *testing.T) {
	_, err := engine.NewGame(engine.GameSettings{Mode: engine.ModePvP}, nil).ApplyHumanMove(-1, 0)
	if got := reason(err, engine.ErrInvalidMove); got != "out of bounds (-1,0)" {
		t.Fatalf("unexpected reason %q", got)
	}
	if got := reason(err, engine.ErrUndoRefused); got != err.Error() {
		t.Fatalf("other sentinels must keep the full text, got %q", got)
	}
	if got := reason(engine.ErrUndoRefused, engine.ErrUndoRefused); got != "undo refused" {
		t.Fatalf("a bare sentinel must keep its text, got %q", got)
	}
}

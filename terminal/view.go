package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"gomoku/engine"
)

const (
	boardOriginX = 4
	boardOriginY = 3
	cellWidth    = 2

	runeEmpty = '·'
	runeBlack = '●'
	runeWhite = '○'
)

var (
	styleBoard   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBlack   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleWhite   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleWinning = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleText    = tcell.StyleDefault
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

type boardView struct {
	screen  tcell.Screen
	game    *engine.Game
	cursorX int
	cursorY int
	message string
	isError bool
}

func newBoardView(screen tcell.Screen, settings engine.GameSettings, scheduler engine.Scheduler, rng engine.RandomSource) *boardView {
	view := &boardView{
		screen:  screen,
		cursorX: engine.BoardSize / 2,
		cursorY: engine.BoardSize / 2,
	}
	view.game = engine.NewGame(settings, scheduler, engine.WithRandom(rng))
	view.game.Subscribe(view.onEvent)
	return view
}

// Run draws and handles events until the player quits.
func (v *boardView) Run() {
	v.draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case *tcell.EventInterrupt:
			if task, ok := ev.Data().(func()); ok {
				task()
			}
		}
		v.draw()
	}
}

func (v *boardView) onEvent(event engine.Event) {
	switch event.Kind {
	case engine.EventGameOver:
		v.setMessage(gameOverText(event.Snapshot), false)
	case engine.EventUndo:
		v.setMessage(fmt.Sprintf("undone, %d left", event.Snapshot.UndosLeft), false)
	case engine.EventRestart:
		v.setMessage("new game", false)
	}
}

// handleKey applies one key press and reports whether the player quit.
func (v *boardView) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.moveCursor(0, -1)
	case tcell.KeyDown:
		v.moveCursor(0, 1)
	case tcell.KeyLeft:
		v.moveCursor(-1, 0)
	case tcell.KeyRight:
		v.moveCursor(1, 0)
	case tcell.KeyEnter:
		v.place()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case ' ':
			v.place()
		case 'u', 'U':
			v.undo()
		case 'r', 'R':
			v.game.Restart()
		}
	}
	return false
}

func (v *boardView) moveCursor(dx, dy int) {
	v.cursorX = clamp(v.cursorX+dx, 0, engine.BoardSize-1)
	v.cursorY = clamp(v.cursorY+dy, 0, engine.BoardSize-1)
}

func (v *boardView) place() {
	v.message = ""
	if _, err := v.game.ApplyHumanMove(v.cursorX, v.cursorY); err != nil {
		v.setMessage(reason(err, engine.ErrInvalidMove), true)
	}
}

func (v *boardView) undo() {
	if err := v.game.Undo(); err != nil {
		v.setMessage(reason(err, engine.ErrUndoRefused), true)
	}
}

func (v *boardView) setMessage(text string, isError bool) {
	v.message = text
	v.isError = isError
}

func (v *boardView) draw() {
	snap := v.game.Snapshot()
	v.screen.Clear()

	settings := snap.Settings
	header := fmt.Sprintf("Gomoku  %s", settings.Mode)
	if settings.Mode == engine.ModePvE {
		header += fmt.Sprintf(" (%s)", settings.Difficulty)
	}
	drawText(v.screen, boardOriginX, 0, styleText, header)

	for x := 0; x < engine.BoardSize; x++ {
		drawText(v.screen, boardOriginX+x*cellWidth, boardOriginY-1, styleBoard, string(rune('A'+x)))
	}
	winning := make(map[engine.Move]bool, len(snap.WinningLine))
	for _, move := range snap.WinningLine {
		winning[move] = true
	}
	for y := 0; y < engine.BoardSize; y++ {
		drawText(v.screen, 0, boardOriginY+y, styleBoard, fmt.Sprintf("%2d", y+1))
		for x := 0; x < engine.BoardSize; x++ {
			r, style := cellAppearance(snap.Board.At(x, y))
			if winning[engine.Move{X: x, Y: y}] {
				style = styleWinning
			}
			if x == v.cursorX && y == v.cursorY {
				style = style.Reverse(true)
			}
			v.screen.SetContent(boardOriginX+x*cellWidth, boardOriginY+y, r, nil, style)
		}
	}

	line := boardOriginY + engine.BoardSize + 1
	drawText(v.screen, boardOriginX, line, styleText, turnText(snap))
	drawText(v.screen, boardOriginX, line+1, styleText, fmt.Sprintf("undos left: %d", snap.UndosLeft))
	if v.message != "" {
		style := styleText
		if v.isError {
			style = styleError
		}
		drawText(v.screen, boardOriginX, line+2, style, v.message)
	}
	drawText(v.screen, boardOriginX, line+4, styleBoard, "arrows move  enter/space place  u undo  r restart  q quit")
	v.screen.Show()
}

func cellAppearance(cell engine.Cell) (rune, tcell.Style) {
	switch cell {
	case engine.CellBlack:
		return runeBlack, styleBlack
	case engine.CellWhite:
		return runeWhite, styleWhite
	default:
		return runeEmpty, styleBoard
	}
}

func turnText(snap engine.Snapshot) string {
	if snap.Status != engine.StatusRunning {
		return gameOverText(snap)
	}
	if snap.Thinking {
		return fmt.Sprintf("%s is thinking...", snap.ToMove)
	}
	return fmt.Sprintf("%s to move", snap.ToMove)
}

func gameOverText(snap engine.Snapshot) string {
	if snap.HasWinner {
		return fmt.Sprintf("%s wins, press r to play again", snap.Winner)
	}
	return "draw, press r to play again"
}

// reason strips the sentinel prefix from err for display.
func reason(err, sentinel error) string {
	text := err.Error()
	if !errors.Is(err, sentinel) {
		return text
	}
	if rest, ok := strings.CutPrefix(text, sentinel.Error()+": "); ok && rest != "" {
		return rest
	}
	return text
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

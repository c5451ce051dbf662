package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrUndoRefused = errors.New("undo refused")
)

type EventKind int

const (
	EventMovePlaced EventKind = iota
	EventAIThinking
	EventUndo
	EventRestart
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventMovePlaced:
		return "move_placed"
	case EventAIThinking:
		return "ai_thinking"
	case EventUndo:
		return "undo"
	case EventRestart:
		return "restart"
	case EventGameOver:
		return "game_over"
	}
	return "unknown"
}

// Event is delivered to observers after every state change. Entry is set for
// EventMovePlaced only.
type Event struct {
	Kind     EventKind
	Entry    HistoryEntry
	Snapshot Snapshot
}

// Snapshot is a copy of the session state that shares nothing with the Game.
type Snapshot struct {
	Settings    GameSettings
	Board       Board
	History     []HistoryEntry
	ToMove      PlayerColor
	Status      GameStatus
	Winner      PlayerColor
	HasWinner   bool
	WinningLine []Move
	UndosLeft   int
	Thinking    bool
	Hash        uint64
}

type MoveOutcome struct {
	Accepted      bool
	Winner        PlayerColor
	HasWinner     bool
	Draw          bool
	NextPlayer    PlayerColor
	AITurnPending bool
}

type observer struct {
	id int
	fn func(Event)
}

// Game is one session: a GameState plus the players, the undo budget and the
// deferred AI turn. It is not safe for concurrent use; callers serialise
// access, and the Scheduler must run AI turns under the same discipline.
type Game struct {
	settings  GameSettings
	config    Config
	state     GameState
	players   [2]Player
	undosLeft int
	thinking  bool
	epoch     uint64
	scheduler Scheduler
	rng       RandomSource

	observers    []observer
	nextObserver int
}

type Option func(*Game)

func WithRandom(rng RandomSource) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

func WithConfig(config Config) Option {
	return func(g *Game) {
		g.config = config
	}
}

// NewGame starts a session. With a nil scheduler the AI reply is played
// before ApplyHumanMove returns.
func NewGame(settings GameSettings, scheduler Scheduler, opts ...Option) *Game {
	g := &Game{
		settings:  settings,
		config:    DefaultConfig(),
		scheduler: scheduler,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.config = g.config.Normalized()
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.createPlayers()
	g.reset()
	return g
}

func NewSession(mode GameMode, difficulty Difficulty, scheduler Scheduler, opts ...Option) *Game {
	return NewGame(GameSettings{Mode: mode, Difficulty: difficulty}, scheduler, opts...)
}

func (g *Game) createPlayers() {
	g.players[PlayerBlack] = NewHumanPlayer()
	if g.settings.Mode == ModePvE {
		g.players[PlayerWhite] = NewAIPlayer(g.settings.Difficulty, g.config, g.rng)
		return
	}
	g.players[PlayerWhite] = NewHumanPlayer()
}

func (g *Game) reset() {
	g.epoch++
	g.thinking = false
	g.state.Reset()
	g.undosLeft = g.config.UndoBudget
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) Config() Config {
	return g.config
}

func (g *Game) IsThinking() bool {
	return g.thinking
}

func (g *Game) UndosLeft() int {
	return g.undosLeft
}

// LastSearchStats returns the statistics of the AI's latest hard-tier search.
func (g *Game) LastSearchStats() (SearchStats, bool) {
	ai, ok := g.players[PlayerWhite].(*AIPlayer)
	if !ok {
		return SearchStats{}, false
	}
	return ai.LastStats(), true
}

// ApplyHumanMove plays (x, y) for the side to move. In pve a successful move
// that does not end the game hands the AI turn to the scheduler.
func (g *Game) ApplyHumanMove(x, y int) (MoveOutcome, error) {
	if g.thinking {
		return MoveOutcome{}, fmt.Errorf("%w: ai thinking", ErrInvalidMove)
	}
	if g.state.Status != StatusRunning {
		return MoveOutcome{}, fmt.Errorf("%w: game over", ErrInvalidMove)
	}
	if !g.players[g.state.ToMove].IsHuman() {
		return MoveOutcome{}, fmt.Errorf("%w: not human turn", ErrInvalidMove)
	}
	entry, err := g.state.Play(x, y)
	if err != nil {
		return MoveOutcome{}, err
	}
	g.afterMove(entry)
	if g.state.Status == StatusRunning && !g.players[g.state.ToMove].IsHuman() {
		g.beginAITurn()
	}
	return g.outcome(), nil
}

func (g *Game) beginAITurn() {
	g.thinking = true
	epoch := g.epoch
	g.emit(Event{Kind: EventAIThinking})
	if g.scheduler == nil {
		g.playAITurn(epoch)
		return
	}
	g.scheduler.Schedule(func() {
		g.playAITurn(epoch)
	})
}

// playAITurn is a no-op when the session was restarted after the turn was
// scheduled.
func (g *Game) playAITurn(epoch uint64) {
	if epoch != g.epoch || !g.thinking {
		return
	}
	player := g.players[g.state.ToMove]
	move, ok := player.ChooseMove(&g.state)
	g.thinking = false
	if !ok {
		g.state.Status = StatusDraw
		g.emit(Event{Kind: EventGameOver})
		return
	}
	entry, err := g.state.play(move.X, move.Y, true)
	if err != nil {
		g.state.Status = StatusDraw
		g.emit(Event{Kind: EventGameOver})
		return
	}
	g.afterMove(entry)
}

func (g *Game) afterMove(entry HistoryEntry) {
	g.emit(Event{Kind: EventMovePlaced, Entry: entry})
	if g.state.Status != StatusRunning {
		g.emit(Event{Kind: EventGameOver})
	}
}

func (g *Game) outcome() MoveOutcome {
	winner, hasWinner := g.state.Winner()
	return MoveOutcome{
		Accepted:      true,
		Winner:        winner,
		HasWinner:     hasWinner,
		Draw:          g.state.Status == StatusDraw,
		NextPlayer:    g.state.ToMove,
		AITurnPending: g.thinking,
	}
}

// Undo takes back the last move in pvp, or the last human move together with
// the AI reply in pve, and costs one unit of the undo budget either way.
func (g *Game) Undo() error {
	if g.thinking {
		return fmt.Errorf("%w: ai thinking", ErrUndoRefused)
	}
	if g.undosLeft <= 0 {
		return fmt.Errorf("%w: no undos left", ErrUndoRefused)
	}
	if g.state.History.Size() == 0 {
		return fmt.Errorf("%w: no moves to undo", ErrUndoRefused)
	}
	if g.settings.Mode == ModePvE {
		for i := 0; i < 2; i++ {
			if _, ok := g.state.TakeBack(); !ok {
				break
			}
		}
		g.state.ToMove = PlayerBlack
	} else {
		entry, _ := g.state.TakeBack()
		g.state.ToMove = entry.Player
	}
	g.undosLeft--
	g.state.Status = StatusRunning
	g.state.WinningLine = nil
	g.emit(Event{Kind: EventUndo})
	return nil
}

// Restart clears the board and the undo budget and drops any queued AI turn.
// Mode and difficulty are kept.
func (g *Game) Restart() {
	g.reset()
	g.emit(Event{Kind: EventRestart})
}

// Close discards the session: a queued AI turn becomes a no-op and observers
// are dropped without being notified. The board is left as it was.
func (g *Game) Close() {
	g.epoch++
	g.thinking = false
	g.observers = nil
}

func (g *Game) Snapshot() Snapshot {
	winner, hasWinner := g.state.Winner()
	return Snapshot{
		Settings:    g.settings,
		Board:       g.state.Board,
		History:     g.state.History.All(),
		ToMove:      g.state.ToMove,
		Status:      g.state.Status,
		Winner:      winner,
		HasWinner:   hasWinner,
		WinningLine: append([]Move(nil), g.state.WinningLine...),
		UndosLeft:   g.undosLeft,
		Thinking:    g.thinking,
		Hash:        g.state.Hash,
	}
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes it. Observers run synchronously, in subscription order.
func (g *Game) Subscribe(fn func(Event)) func() {
	g.nextObserver++
	id := g.nextObserver
	g.observers = append(g.observers, observer{id: id, fn: fn})
	return func() {
		for i, obs := range g.observers {
			if obs.id == id {
				g.observers = append(g.observers[:i:i], g.observers[i+1:]...)
				return
			}
		}
	}
}

func (g *Game) emit(event Event) {
	if len(g.observers) == 0 {
		return
	}
	event.Snapshot = g.Snapshot()
	for _, obs := range append([]observer(nil), g.observers...) {
		obs.fn(event)
	}
}

package engine

import "fmt"

type PlayerColor int

type GameStatus int

const (
	PlayerBlack PlayerColor = iota
	PlayerWhite
)

const (
	StatusRunning GameStatus = iota
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

// GameState is the board, its move history and whose turn it is. Hash is the
// Zobrist hash of the stones and is kept in step with every Place and Remove.
type GameState struct {
	Board       Board
	History     MoveHistory
	ToMove      PlayerColor
	Status      GameStatus
	Hash        uint64
	WinningLine []Move
}

func NewGameState() GameState {
	state := GameState{}
	state.Reset()
	return state
}

func (s *GameState) Reset() {
	s.Board.Reset()
	s.History.Clear()
	s.ToMove = PlayerBlack
	s.Status = StatusRunning
	s.Hash = 0
	s.WinningLine = nil
}

func (s *GameState) Clone() GameState {
	clone := *s
	clone.History = MoveHistory{entries: s.History.All()}
	clone.WinningLine = append([]Move(nil), s.WinningLine...)
	return clone
}

// Place records a stone for player at (x, y). It does not change whose turn
// it is or the game status.
func (s *GameState) Place(x, y int, player PlayerColor) error {
	if !InBounds(x, y) {
		return fmt.Errorf("%w: out of bounds (%d,%d)", ErrInvalidMove, x, y)
	}
	if s.Board.At(x, y) != CellEmpty {
		return fmt.Errorf("%w: occupied (%d,%d)", ErrInvalidMove, x, y)
	}
	cell := CellFromPlayer(player)
	s.Board.Set(x, y, cell)
	s.Hash ^= zobristStone(x, y, cell)
	s.History.Push(HistoryEntry{Move: Move{X: x, Y: y}, Player: player})
	return nil
}

// Remove clears (x, y) and drops the latest history entry for that cell.
func (s *GameState) Remove(x, y int) bool {
	if !InBounds(x, y) {
		return false
	}
	cell := s.Board.At(x, y)
	if cell == CellEmpty {
		return false
	}
	s.Board.Remove(x, y)
	s.Hash ^= zobristStone(x, y, cell)
	s.History.removeLatestAt(Move{X: x, Y: y})
	return true
}

// Play places a stone for the side to move, resolves win and draw, and hands
// the turn over when the game goes on.
func (s *GameState) Play(x, y int) (HistoryEntry, error) {
	return s.play(x, y, false)
}

func (s *GameState) play(x, y int, isAI bool) (HistoryEntry, error) {
	if s.Status != StatusRunning {
		return HistoryEntry{}, fmt.Errorf("%w: game over", ErrInvalidMove)
	}
	player := s.ToMove
	if err := s.Place(x, y, player); err != nil {
		return HistoryEntry{}, err
	}
	if isAI {
		s.History.entries[len(s.History.entries)-1].IsAi = true
	}
	entry, _ := s.History.Last()
	if CheckWinAt(&s.Board, x, y, player) {
		s.Status = winStatus(player)
		s.WinningLine = WinningLine(&s.Board, x, y, player)
		return entry, nil
	}
	if s.Board.CountEmpty() == 0 {
		s.Status = StatusDraw
		return entry, nil
	}
	s.ToMove = otherPlayer(player)
	return entry, nil
}

// TakeBack removes the most recent stone and reopens the game.
func (s *GameState) TakeBack() (HistoryEntry, bool) {
	last, ok := s.History.Last()
	if !ok {
		return HistoryEntry{}, false
	}
	s.Remove(last.Move.X, last.Move.Y)
	s.Status = StatusRunning
	s.WinningLine = nil
	return last, true
}

// Winner reports the winning side, if any.
func (s *GameState) Winner() (PlayerColor, bool) {
	return winnerFromStatus(s.Status)
}

// withStone places player's stone at (x, y) for the duration of fn. The stone
// is taken back on every exit path, including panics and early returns in fn.
func (s *GameState) withStone(x, y int, player PlayerColor, fn func()) {
	if err := s.Place(x, y, player); err != nil {
		return
	}
	defer s.Remove(x, y)
	fn()
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

// Opponent returns the other side.
func (p PlayerColor) Opponent() PlayerColor {
	return otherPlayer(p)
}

func (p PlayerColor) String() string {
	if p == PlayerWhite {
		return "white"
	}
	return "black"
}

func winStatus(player PlayerColor) GameStatus {
	if player == PlayerBlack {
		return StatusBlackWon
	}
	return StatusWhiteWon
}

func winnerFromStatus(status GameStatus) (PlayerColor, bool) {
	switch status {
	case StatusBlackWon:
		return PlayerBlack, true
	case StatusWhiteWon:
		return PlayerWhite, true
	default:
		return PlayerBlack, false
	}
}

func (s GameStatus) String() string {
	switch s {
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

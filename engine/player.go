package engine

// Player is one side of a game. Human players never choose a move on their
// own; their moves arrive through Game.ApplyHumanMove.
type Player interface {
	IsHuman() bool
	ChooseMove(state *GameState) (Move, bool)
}

type HumanPlayer struct{}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

func (h *HumanPlayer) ChooseMove(*GameState) (Move, bool) {
	return Move{}, false
}

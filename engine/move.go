package engine

// Move addresses a single board cell.
type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IsValid reports whether m lies on the board.
func (m Move) IsValid() bool {
	return InBounds(m.X, m.Y)
}

func (m Move) Equals(other Move) bool {
	return m.X == other.X && m.Y == other.Y
}

package engine

// BoardSize is the fixed edge length of the Gomoku board.
const BoardSize = 15

type Cell int8

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

// Board is a BoardSize×BoardSize grid stored row-major. It is a plain value:
// copying a Board copies every cell.
type Board struct {
	cells [BoardSize * BoardSize]Cell
}

func (b *Board) Reset() {
	b.cells = [BoardSize * BoardSize]Cell{}
}

func (b *Board) At(x, y int) Cell {
	return b.cells[index(x, y)]
}

func (b *Board) Set(x, y int, value Cell) {
	b.cells[index(x, y)] = value
}

func (b *Board) Remove(x, y int) {
	b.cells[index(x, y)] = CellEmpty
}

func (b *Board) InBounds(x, y int) bool {
	return InBounds(x, y)
}

func (b *Board) IsEmpty(x, y int) bool {
	return InBounds(x, y) && b.At(x, y) == CellEmpty
}

func (b *Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b *Board) CountStones() int {
	return len(b.cells) - b.CountEmpty()
}

func (b *Board) Size() int {
	return BoardSize
}

// InBounds reports whether (x, y) addresses a cell of the board.
func InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < BoardSize && y < BoardSize
}

func index(x, y int) int {
	return y*BoardSize + x
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}

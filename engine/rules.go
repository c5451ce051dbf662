package engine

// WinLength is the number of aligned stones that wins the game.
const WinLength = 5

var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// CheckWinAt reports whether a player stone at (x, y) completes WinLength in a
// row. The cell itself is assumed to hold player's stone, so it can be asked
// about hypothetical placements.
func CheckWinAt(board *Board, x, y int, player PlayerColor) bool {
	if !InBounds(x, y) {
		return false
	}
	cell := CellFromPlayer(player)
	for _, dir := range directions {
		count := 1
		count += countDirection(board, x, y, dir[0], dir[1], cell)
		count += countDirection(board, x, y, -dir[0], -dir[1], cell)
		if count >= WinLength {
			return true
		}
	}
	return false
}

// WinningLine returns the cells of the first axis through (x, y) that holds
// WinLength or more player stones, ordered from one end to the other.
func WinningLine(board *Board, x, y int, player PlayerColor) []Move {
	if !InBounds(x, y) {
		return nil
	}
	cell := CellFromPlayer(player)
	for _, dir := range directions {
		dx, dy := dir[0], dir[1]
		back := countDirection(board, x, y, -dx, -dy, cell)
		forward := countDirection(board, x, y, dx, dy, cell)
		if back+forward+1 < WinLength {
			continue
		}
		line := make([]Move, 0, back+forward+1)
		for i := -back; i <= forward; i++ {
			line = append(line, Move{X: x + i*dx, Y: y + i*dy})
		}
		return line
	}
	return nil
}

func countDirection(board *Board, x, y, dx, dy int, target Cell) int {
	count := 0
	nx := x + dx
	ny := y + dy
	for InBounds(nx, ny) && board.At(nx, ny) == target {
		count++
		nx += dx
		ny += dy
	}
	return count
}

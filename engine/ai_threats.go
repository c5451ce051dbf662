package engine

// FindWinningMove scans the empty cells in row-major order and returns the
// first one where a player stone would complete five in a row.
func FindWinningMove(state *GameState, player PlayerColor) (Move, bool) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if state.Board.At(x, y) != CellEmpty {
				continue
			}
			if isImmediateWin(state, x, y, player) {
				return Move{X: x, Y: y}, true
			}
		}
	}
	return Move{}, false
}

// FindDoubleAttackMove returns the first empty cell (row-major) after which
// player would have at least two distinct cells that each complete five.
// This walks every pair of empty cells, so it is meant for a single call per
// turn rather than for use inside a search.
func FindDoubleAttackMove(state *GameState, player PlayerColor) (Move, bool) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if state.Board.At(x, y) != CellEmpty {
				continue
			}
			threats := 0
			state.withStone(x, y, player, func() {
				threats = countWinningCells(state, player, 2)
			})
			if threats >= 2 {
				return Move{X: x, Y: y}, true
			}
		}
	}
	return Move{}, false
}

// countWinningCells counts empty cells that would win for player, stopping
// once enough have been found.
func countWinningCells(state *GameState, player PlayerColor, enough int) int {
	count := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if state.Board.At(x, y) != CellEmpty {
				continue
			}
			if isImmediateWin(state, x, y, player) {
				count++
				if count >= enough {
					return count
				}
			}
		}
	}
	return count
}

func isImmediateWin(state *GameState, x, y int, player PlayerColor) bool {
	won := false
	state.withStone(x, y, player, func() {
		won = CheckWinAt(&state.Board, x, y, player)
	})
	return won
}

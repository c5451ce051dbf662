package engine

const (
	scoreFive        = 50000
	scoreOpenFour    = 5000
	scoreClosedFour  = 1000
	scoreOpenThree   = 500
	scoreClosedThree = 100
	scoreOpenTwo     = 50
	scoreClosedTwo   = 10

	// runReach is how far a directional walk looks on each side.
	runReach = 5

	defenseWeight = 1.1
	centerBonus   = 10
)

// EvaluateDirectionalRun scores the line potential of player through (x, y)
// along (dx, dy). Each side is walked outward from the neighbour of (x, y),
// counting player stones across at most one empty gap. A board edge or an
// opposing stone ends that side and counts as a blocked end.
func EvaluateDirectionalRun(board *Board, x, y, dx, dy int, player PlayerColor) int {
	cell := CellFromPlayer(player)
	count := 0
	blocked := 0
	for _, sign := range [2]int{1, -1} {
		gaps := 0
		for i := 1; i <= runReach; i++ {
			nx := x + sign*dx*i
			ny := y + sign*dy*i
			if !InBounds(nx, ny) {
				blocked++
				break
			}
			current := board.At(nx, ny)
			if current == cell {
				count++
				continue
			}
			if current != CellEmpty {
				blocked++
				break
			}
			gaps++
			if gaps > 1 {
				break
			}
		}
	}
	return runScore(count, blocked)
}

func runScore(count, blocked int) int {
	switch {
	case count >= 4:
		return scoreFive
	case count == 3 && blocked == 0:
		return scoreOpenFour
	case count == 3 && blocked == 1:
		return scoreClosedFour
	case count == 2 && blocked == 0:
		return scoreOpenThree
	case count == 2 && blocked == 1:
		return scoreClosedThree
	case count == 1 && blocked == 0:
		return scoreOpenTwo
	case count == 1 && blocked == 1:
		return scoreClosedTwo
	}
	if count < 1 {
		return 1
	}
	return count
}

// EvaluatePositionFor sums player's directional potential at (x, y) over the
// four axes and adds the centrality bonus.
func EvaluatePositionFor(board *Board, x, y int, player PlayerColor) float64 {
	score := 0
	for _, dir := range directions {
		score += EvaluateDirectionalRun(board, x, y, dir[0], dir[1], player)
	}
	return float64(score) + centrality(x, y)
}

// EvaluatePosition is the general desirability of (x, y) for own: its own
// potential plus the opponent's potential there, the latter weighted higher
// so that blocking wins ties against building.
func EvaluatePosition(board *Board, x, y int, own PlayerColor) float64 {
	opp := otherPlayer(own)
	attack := 0
	defense := 0
	for _, dir := range directions {
		attack += EvaluateDirectionalRun(board, x, y, dir[0], dir[1], own)
		defense += EvaluateDirectionalRun(board, x, y, dir[0], dir[1], opp)
	}
	return float64(attack) + float64(defense)*defenseWeight + centrality(x, y)
}

// EvaluateBoard is the static evaluation used at search leaves: the sum of
// White's positional scores minus Black's over all occupied cells. Positive
// values favour White.
func EvaluateBoard(board *Board) float64 {
	score := 0.0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			switch board.At(x, y) {
			case CellWhite:
				score += EvaluatePositionFor(board, x, y, PlayerWhite)
			case CellBlack:
				score -= EvaluatePositionFor(board, x, y, PlayerBlack)
			}
		}
	}
	return score
}

func centrality(x, y int) float64 {
	center := BoardSize / 2
	distance := absInt(x-center) + absInt(y-center)
	if distance >= centerBonus {
		return 0
	}
	return float64(centerBonus - distance)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

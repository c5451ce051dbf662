package engine

import "sort"

const (
	// DefaultCandidateLimit is the candidate count used outside deep search.
	DefaultCandidateLimit = 20

	proximityRadius = 2
)

// Candidate is an empty cell worth considering, with its heuristic score.
type Candidate struct {
	Move  Move    `json:"move"`
	Score float64 `json:"score"`
}

// CandidateMoves collects the empty cells within Chebyshev distance
// proximityRadius of any recorded move, scores them with EvaluatePosition from
// own's point of view, and returns the best limit of them in descending score
// order. Equal scores keep discovery order. With nothing to be near, the 5×5
// block around the centre is used instead. A limit <= 0 returns all of them.
func CandidateMoves(state *GameState, own PlayerColor, limit int) []Candidate {
	board := &state.Board
	var seen [BoardSize * BoardSize]bool
	candidates := make([]Candidate, 0, 64)
	addAround := func(cx, cy int) {
		for dy := -proximityRadius; dy <= proximityRadius; dy++ {
			for dx := -proximityRadius; dx <= proximityRadius; dx++ {
				x := cx + dx
				y := cy + dy
				if !InBounds(x, y) || board.At(x, y) != CellEmpty {
					continue
				}
				idx := index(x, y)
				if seen[idx] {
					continue
				}
				seen[idx] = true
				candidates = append(candidates, Candidate{
					Move:  Move{X: x, Y: y},
					Score: EvaluatePosition(board, x, y, own),
				})
			}
		}
	}

	for i := 0; i < state.History.Size(); i++ {
		move := state.History.At(i).Move
		addAround(move.X, move.Y)
	}
	if len(candidates) == 0 {
		center := BoardSize / 2
		addAround(center, center)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

package engine

// RandomSource is the randomness the easy tier draws from. *rand.Rand
// satisfies it.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// AIPlayer picks moves for the side to move according to its difficulty.
type AIPlayer struct {
	difficulty Difficulty
	config     Config
	rng        RandomSource
	cache      *EvalCache
	lastStats  SearchStats
}

func NewAIPlayer(difficulty Difficulty, config Config, rng RandomSource) *AIPlayer {
	config = config.Normalized()
	return &AIPlayer{
		difficulty: difficulty,
		config:     config,
		rng:        rng,
		cache:      NewEvalCache(uint64(config.EvalCacheSize), config.EvalCacheBucket),
	}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) Difficulty() Difficulty {
	return a.difficulty
}

// LastStats returns the statistics of the latest hard-tier search.
func (a *AIPlayer) LastStats() SearchStats {
	return a.lastStats
}

// ChooseMove returns a move for state.ToMove. The state is used as scratch
// space during the search and is restored before returning. It reports false
// only when no empty cell is left.
func (a *AIPlayer) ChooseMove(state *GameState) (Move, bool) {
	var (
		move Move
		ok   bool
	)
	switch a.difficulty {
	case DifficultyEasy:
		move, ok = a.chooseEasy(state)
	case DifficultyHard:
		move, ok = a.chooseHard(state)
	default:
		move, ok = a.chooseMedium(state)
	}
	if ok {
		return move, true
	}
	return firstEmpty(&state.Board)
}

func (a *AIPlayer) chooseEasy(state *GameState) (Move, bool) {
	own := state.ToMove
	if move, ok := FindWinningMove(state, own); ok && a.rng.Float64() < a.config.EasyWinChance {
		return move, true
	}
	if move, ok := FindWinningMove(state, own.Opponent()); ok && a.rng.Float64() < a.config.EasyBlockChance {
		return move, true
	}
	candidates := CandidateMoves(state, own, a.config.CandidateLimit)
	if len(candidates) == 0 {
		return Move{}, false
	}
	pool := a.config.EasyPool
	if pool > len(candidates) {
		pool = len(candidates)
	}
	return candidates[a.rng.Intn(pool)].Move, true
}

func (a *AIPlayer) chooseMedium(state *GameState) (Move, bool) {
	own := state.ToMove
	opp := own.Opponent()
	if move, ok := FindWinningMove(state, own); ok {
		return move, true
	}
	if move, ok := FindWinningMove(state, opp); ok {
		return move, true
	}
	if move, ok := FindDoubleAttackMove(state, own); ok {
		return move, true
	}
	if move, ok := FindDoubleAttackMove(state, opp); ok {
		return move, true
	}
	candidates := CandidateMoves(state, own, a.config.CandidateLimit)
	if len(candidates) == 0 {
		return Move{}, false
	}
	return candidates[0].Move, true
}

func (a *AIPlayer) chooseHard(state *GameState) (Move, bool) {
	own := state.ToMove
	a.cache.NextGeneration()
	result := AlphaBeta(state, a.config.HardDepth, a.config.HardWidth, own == PlayerWhite, own, a.cache)
	a.lastStats = result.Stats
	return result.Move, result.Found
}

func firstEmpty(board *Board) (Move, bool) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if board.At(x, y) == CellEmpty {
				return Move{X: x, Y: y}, true
			}
		}
	}
	return Move{}, false
}

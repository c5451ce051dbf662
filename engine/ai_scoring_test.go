package engine

import (
	"math"
	"testing"
)

// plainMinimax mirrors AlphaBeta without pruning.
func plainMinimax(state *GameState, depth, width int, maximizing bool, own PlayerColor, nodes *int64) (float64, Move, bool) {
	*nodes++
	if depth <= 0 {
		return EvaluateBoard(&state.Board), Move{}, false
	}
	candidates := CandidateMoves(state, own, width)
	if len(candidates) == 0 {
		return EvaluateBoard(&state.Board), Move{}, false
	}
	mover := PlayerBlack
	win := -WinScore
	if maximizing {
		mover = PlayerWhite
		win = WinScore
	}
	if move, ok := immediateWinAmong(state, candidates, mover); ok {
		return win, move, true
	}
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	bestMove := candidates[0].Move
	for _, candidate := range candidates {
		var score float64
		state.withStone(candidate.Move.X, candidate.Move.Y, mover, func() {
			score, _, _ = plainMinimax(state, depth-1, width, !maximizing, own, nodes)
		})
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
			bestMove = candidate.Move
		}
	}
	return best, bestMove, true
}

func midgamePosition(t *testing.T) GameState {
	t.Helper()
	state := NewGameState()
	placeAll(t, &state, PlayerBlack, Move{X: 7, Y: 7}, Move{X: 8, Y: 8}, Move{X: 6, Y: 8})
	placeAll(t, &state, PlayerWhite, Move{X: 7, Y: 8}, Move{X: 8, Y: 6})
	state.ToMove = PlayerWhite
	return state
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for depth := 1; depth <= 3; depth++ {
		for _, maximizing := range []bool{true, false} {
			state := midgamePosition(t)
			own := PlayerBlack
			if maximizing {
				own = PlayerWhite
			}
			var plainNodes int64
			wantScore, wantMove, wantFound := plainMinimax(&state, depth, 4, maximizing, own, &plainNodes)
			result := AlphaBeta(&state, depth, 4, maximizing, own, nil)

			if result.Found != wantFound || !result.Move.Equals(wantMove) || result.Score != wantScore {
				t.Fatalf("depth %d max=%v: alpha-beta %v/%f, minimax %v/%f",
					depth, maximizing, result.Move, result.Score, wantMove, wantScore)
			}
			if result.Stats.Nodes > plainNodes {
				t.Fatalf("depth %d max=%v: pruning visited more nodes (%d > %d)",
					depth, maximizing, result.Stats.Nodes, plainNodes)
			}
		}
	}
}

func TestAlphaBetaRestoresState(t *testing.T) {
	state := midgamePosition(t)
	board := state.Board
	hash := state.Hash
	size := state.History.Size()

	AlphaBeta(&state, 3, 6, true, PlayerWhite, NewEvalCache(1<<10, 2))

	if state.Board != board || state.Hash != hash || state.History.Size() != size {
		t.Fatalf("search did not restore the game state")
	}
}

func TestAlphaBetaTakesImmediateWin(t *testing.T) {
	state := NewGameState()
	placeAll(t, &state, PlayerWhite, Move{X: 3, Y: 3}, Move{X: 4, Y: 3}, Move{X: 5, Y: 3}, Move{X: 6, Y: 3})
	placeAll(t, &state, PlayerBlack, Move{X: 2, Y: 3}, Move{X: 3, Y: 4}, Move{X: 4, Y: 4})
	state.ToMove = PlayerWhite

	result := AlphaBeta(&state, 3, DefaultSearchWidth, true, PlayerWhite, nil)
	if !result.Found || !result.Move.Equals(Move{X: 7, Y: 3}) {
		t.Fatalf("expected the win at (7,3), got %v", result.Move)
	}
	if result.Score != WinScore {
		t.Fatalf("expected score %f, got %f", WinScore, result.Score)
	}
	if result.Stats.Nodes != 1 {
		t.Fatalf("an immediate win should not recurse, visited %d nodes", result.Stats.Nodes)
	}
}

func TestAlphaBetaBlocksOpponentFour(t *testing.T) {
	state := NewGameState()
	placeAll(t, &state, PlayerBlack, Move{X: 5, Y: 5}, Move{X: 5, Y: 6}, Move{X: 5, Y: 7}, Move{X: 5, Y: 8})
	placeAll(t, &state, PlayerWhite, Move{X: 5, Y: 4}, Move{X: 9, Y: 9}, Move{X: 10, Y: 10})
	state.ToMove = PlayerWhite

	result := AlphaBeta(&state, 3, DefaultSearchWidth, true, PlayerWhite, NewEvalCache(1<<12, 2))
	if !result.Move.Equals(Move{X: 5, Y: 9}) {
		t.Fatalf("expected the block at (5,9), got %v (score %f)", result.Move, result.Score)
	}
}

func TestAlphaBetaMinimizingRootForBlack(t *testing.T) {
	state := NewGameState()
	placeAll(t, &state, PlayerBlack, Move{X: 7, Y: 7}, Move{X: 7, Y: 8}, Move{X: 7, Y: 9}, Move{X: 7, Y: 10})
	placeAll(t, &state, PlayerWhite, Move{X: 7, Y: 6}, Move{X: 8, Y: 8}, Move{X: 9, Y: 9})

	result := AlphaBeta(&state, 2, DefaultSearchWidth, false, PlayerBlack, nil)
	if !result.Move.Equals(Move{X: 7, Y: 11}) || result.Score != -WinScore {
		t.Fatalf("expected black win at (7,11), got %v score %f", result.Move, result.Score)
	}
}

func TestEvalCacheGetPut(t *testing.T) {
	cache := NewEvalCache(3, 2)
	if len(cache.entries) != 8 {
		t.Fatalf("expected size rounded to 4 with 2 buckets, got %d entries", len(cache.entries))
	}
	cache.Put(1, 10)
	cache.Put(5, 50)
	if v, ok := cache.Get(1); !ok || v != 10 {
		t.Fatalf("expected 10, got %f ok=%v", v, ok)
	}
	cache.NextGeneration()
	// Keys 1, 5 and 9 share a bucket.
	cache.Put(9, 90)
	cache.Put(9, 91)
	if v, ok := cache.Get(9); !ok || v != 91 {
		t.Fatalf("expected overwrite to 91, got %f ok=%v", v, ok)
	}
	if cache.Count() != 2 {
		t.Fatalf("expected 2 live entries, got %d", cache.Count())
	}
	cache.Clear()
	if _, ok := cache.Get(5); ok {
		t.Fatalf("expected empty cache after clear")
	}
}

func TestEvalCacheServesSearch(t *testing.T) {
	state := midgamePosition(t)
	cache := NewEvalCache(1<<12, 2)
	first := AlphaBeta(&state, 2, 6, true, PlayerWhite, cache)
	second := AlphaBeta(&state, 2, 6, true, PlayerWhite, cache)
	if second.Stats.EvalCacheHits == 0 {
		t.Fatalf("expected cache hits on the repeated search")
	}
	if !first.Move.Equals(second.Move) || first.Score != second.Score {
		t.Fatalf("cache changed the result: %v/%f vs %v/%f", first.Move, first.Score, second.Move, second.Score)
	}
}

package engine

import (
	"math"
	"time"
)

const (
	// WinScore is the saturating score of a forced five.
	WinScore = 100000.0

	DefaultSearchDepth = 5
	DefaultSearchWidth = 10
)

// SearchStats describes the most recent search.
type SearchStats struct {
	Nodes           int64
	Cutoffs         int64
	EvalCacheProbes int64
	EvalCacheHits   int64
	Depth           int
	Score           float64
	Start           time.Time
	Elapsed         time.Duration
}

// SearchResult is the outcome of a root search. Found is false when the root
// had no candidate to play.
type SearchResult struct {
	Move  Move
	Score float64
	Found bool
	Stats SearchStats
}

type minimaxContext struct {
	state *GameState
	own   PlayerColor
	width int
	cache *EvalCache
	stats *SearchStats
}

// AlphaBeta runs a depth-limited minimax search with alpha-beta pruning on
// state. White is the maximizing side; maximizing selects which side moves at
// the root. Every node considers CandidateMoves(width) ranked from own's point
// of view. Stones are placed on state and taken back before the next sibling,
// so state is unchanged when AlphaBeta returns.
func AlphaBeta(state *GameState, depth, width int, maximizing bool, own PlayerColor, cache *EvalCache) SearchResult {
	stats := SearchStats{Depth: depth, Start: time.Now()}
	ctx := minimaxContext{state: state, own: own, width: width, cache: cache, stats: &stats}
	score, move, found := ctx.alphaBeta(depth, math.Inf(-1), math.Inf(1), maximizing)
	stats.Score = score
	stats.Elapsed = time.Since(stats.Start)
	return SearchResult{Move: move, Score: score, Found: found, Stats: stats}
}

func (ctx minimaxContext) alphaBeta(depth int, alpha, beta float64, maximizing bool) (float64, Move, bool) {
	ctx.stats.Nodes++
	if depth <= 0 {
		return ctx.evaluate(), Move{}, false
	}
	candidates := CandidateMoves(ctx.state, ctx.own, ctx.width)
	if len(candidates) == 0 {
		// Nothing to search: treat the node as a leaf.
		return ctx.evaluate(), Move{}, false
	}

	mover := PlayerBlack
	win := -WinScore
	if maximizing {
		mover = PlayerWhite
		win = WinScore
	}
	if move, ok := immediateWinAmong(ctx.state, candidates, mover); ok {
		return win, move, true
	}

	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	bestMove := candidates[0].Move
	for _, candidate := range candidates {
		var score float64
		ctx.state.withStone(candidate.Move.X, candidate.Move.Y, mover, func() {
			score, _, _ = ctx.alphaBeta(depth-1, alpha, beta, !maximizing)
		})
		if maximizing {
			if score > best {
				best = score
				bestMove = candidate.Move
			}
			alpha = math.Max(alpha, score)
		} else {
			if score < best {
				best = score
				bestMove = candidate.Move
			}
			beta = math.Min(beta, score)
		}
		if beta <= alpha {
			ctx.stats.Cutoffs++
			break
		}
	}
	return best, bestMove, true
}

func (ctx minimaxContext) evaluate() float64 {
	if ctx.cache == nil {
		return EvaluateBoard(&ctx.state.Board)
	}
	ctx.stats.EvalCacheProbes++
	if value, ok := ctx.cache.Get(ctx.state.Hash); ok {
		ctx.stats.EvalCacheHits++
		return value
	}
	value := EvaluateBoard(&ctx.state.Board)
	ctx.cache.Put(ctx.state.Hash, value)
	return value
}

// immediateWinAmong returns the first candidate that completes five for
// player. It runs before any recursion so a win at the node always beats
// whatever the deeper search would have found.
func immediateWinAmong(state *GameState, candidates []Candidate, player PlayerColor) (Move, bool) {
	for _, candidate := range candidates {
		if isImmediateWin(state, candidate.Move.X, candidate.Move.Y, player) {
			return candidate.Move, true
		}
	}
	return Move{}, false
}

// EvalCacheEntry is one cached static evaluation keyed by board hash.
type EvalCacheEntry struct {
	Key   uint64
	Value float64
	Gen   uint32
	Valid bool
}

// EvalCache is a set-associative cache of EvaluateBoard results. The static
// evaluation depends only on the stones, so the Zobrist hash is a full key.
type EvalCache struct {
	mask    uint64
	buckets int
	entries []EvalCacheEntry
	gen     uint32
}

func NewEvalCache(size uint64, buckets int) *EvalCache {
	if buckets <= 0 {
		buckets = 2
	}
	if size < 1 {
		size = 1
	}
	if (size & (size - 1)) != 0 {
		size = nextPowerOfTwo(size)
	}
	return &EvalCache{
		mask:    size - 1,
		buckets: buckets,
		entries: make([]EvalCacheEntry, int(size)*buckets),
		gen:     1,
	}
}

// NextGeneration ages every entry by one so that new writes evict old ones
// first.
func (ec *EvalCache) NextGeneration() {
	if ec == nil {
		return
	}
	ec.gen++
	if ec.gen == 0 {
		ec.gen = 1
	}
}

func (ec *EvalCache) Clear() {
	for i := range ec.entries {
		ec.entries[i] = EvalCacheEntry{}
	}
	ec.gen = 1
}

func (ec *EvalCache) Count() int {
	count := 0
	for _, entry := range ec.entries {
		if entry.Valid {
			count++
		}
	}
	return count
}

func (ec *EvalCache) bucketIndex(key uint64) int {
	return int(key&ec.mask) * ec.buckets
}

func (ec *EvalCache) Get(key uint64) (float64, bool) {
	start := ec.bucketIndex(key)
	for i := 0; i < ec.buckets; i++ {
		entry := ec.entries[start+i]
		if entry.Valid && entry.Key == key {
			return entry.Value, true
		}
	}
	return 0.0, false
}

func (ec *EvalCache) Put(key uint64, value float64) {
	start := ec.bucketIndex(key)
	victim := -1
	oldest := uint32(0)
	for i := 0; i < ec.buckets; i++ {
		idx := start + i
		entry := ec.entries[idx]
		if entry.Valid && entry.Key == key {
			ec.entries[idx] = EvalCacheEntry{Key: key, Value: value, Gen: ec.gen, Valid: true}
			return
		}
		if !entry.Valid {
			victim = idx
			break
		}
		age := ec.gen - entry.Gen
		if victim == -1 || age > oldest {
			victim = idx
			oldest = age
		}
	}
	if victim >= 0 {
		ec.entries[victim] = EvalCacheEntry{Key: key, Value: value, Gen: ec.gen, Valid: true}
	}
}

func nextPowerOfTwo(v uint64) uint64 {
	if v == 0 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}

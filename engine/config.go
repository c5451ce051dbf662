package engine

// Config holds the engine tuning knobs. Zero counts and sizes fall back to the
// defaults when the config is normalized; a zero probability is kept.
type Config struct {
	HardDepth       int     `json:"hard_depth" yaml:"hard_depth"`
	HardWidth       int     `json:"hard_width" yaml:"hard_width"`
	CandidateLimit  int     `json:"candidate_limit" yaml:"candidate_limit"`
	EasyPool        int     `json:"easy_pool" yaml:"easy_pool"`
	EasyWinChance   float64 `json:"easy_win_chance" yaml:"easy_win_chance"`
	EasyBlockChance float64 `json:"easy_block_chance" yaml:"easy_block_chance"`
	UndoBudget      int     `json:"undo_budget" yaml:"undo_budget"`
	EvalCacheSize   int     `json:"eval_cache_size" yaml:"eval_cache_size"`
	EvalCacheBucket int     `json:"eval_cache_buckets" yaml:"eval_cache_buckets"`
}

func DefaultConfig() Config {
	return Config{
		HardDepth:       DefaultSearchDepth,
		HardWidth:       DefaultSearchWidth,
		CandidateLimit:  DefaultCandidateLimit,
		EasyPool:        8,
		EasyWinChance:   0.7,
		EasyBlockChance: 0.5,
		UndoBudget:      3,
		EvalCacheSize:   1 << 16,
		EvalCacheBucket: 2,
	}
}

// Normalized returns c with every unset or out-of-range field replaced by its
// default. A negative probability means unset; others are clamped to [0, 1].
// An undo budget of zero is kept only when it was asked for with a negative
// value.
func (c Config) Normalized() Config {
	def := DefaultConfig()
	if c.HardDepth <= 0 {
		c.HardDepth = def.HardDepth
	}
	if c.HardWidth <= 0 {
		c.HardWidth = def.HardWidth
	}
	if c.CandidateLimit <= 0 {
		c.CandidateLimit = def.CandidateLimit
	}
	if c.EasyPool <= 0 {
		c.EasyPool = def.EasyPool
	}
	if c.EasyWinChance < 0 {
		c.EasyWinChance = def.EasyWinChance
	}
	if c.EasyWinChance > 1 {
		c.EasyWinChance = 1
	}
	if c.EasyBlockChance < 0 {
		c.EasyBlockChance = def.EasyBlockChance
	}
	if c.EasyBlockChance > 1 {
		c.EasyBlockChance = 1
	}
	switch {
	case c.UndoBudget == 0:
		c.UndoBudget = def.UndoBudget
	case c.UndoBudget < 0:
		c.UndoBudget = 0
	}
	if c.EvalCacheSize <= 0 {
		c.EvalCacheSize = def.EvalCacheSize
	}
	if c.EvalCacheBucket <= 0 {
		c.EvalCacheBucket = def.EvalCacheBucket
	}
	return c
}

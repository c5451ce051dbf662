package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"gomoku/engine"
)

type ServerConfig struct {
	Addr           string        `yaml:"addr" env:"GOMOKU_ADDR" env-default:":8080"`
	AIDelayMs      int           `yaml:"ai_delay_ms" env:"GOMOKU_AI_DELAY_MS" env-default:"300"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"GOMOKU_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	LogSearchStats bool          `yaml:"log_search_stats" env:"GOMOKU_LOG_SEARCH_STATS" env-default:"false"`
	Engine         engine.Config `yaml:"engine"`
}

// LoadServerConfig reads path when it is set, then applies environment
// overrides. Without a file only the environment and the defaults are used.
// Engine fields missing from the file keep their defaults.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := ServerConfig{Engine: engine.DefaultConfig()}
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read config: %w", err)
	}
	if cfg.AIDelayMs < 0 {
		cfg.AIDelayMs = 0
	}
	cfg.Engine = cfg.Engine.Normalized()
	return cfg, nil
}

func (c ServerConfig) AIDelay() time.Duration {
	return time.Duration(c.AIDelayMs) * time.Millisecond
}

// ConfigStore holds the engine tuning applied to the next started game.
type ConfigStore struct {
	mu     sync.RWMutex
	config engine.Config
}

func NewConfigStore(config engine.Config) *ConfigStore {
	return &ConfigStore{config: config.Normalized()}
}

func (c *ConfigStore) Get() engine.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig engine.Config) engine.Config {
	newConfig = newConfig.Normalized()
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
	return newConfig
}

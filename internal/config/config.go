package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
)

var (
	cfgFile = "chessrules/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

// ThinkDelays is how long the bot pretends to think at each difficulty.
type ThinkDelays struct {
	Easy   Duration `json:"easy"`
	Medium Duration `json:"medium"`
	Hard   Duration `json:"hard"`
}

func (d ThinkDelays) For(difficulty engine.Difficulty) time.Duration {
	switch difficulty {
	case engine.Easy:
		return time.Duration(d.Easy)
	case engine.Hard:
		return time.Duration(d.Hard)
	default:
		return time.Duration(d.Medium)
	}
}

type BotConfig struct {
	Side              engine.Color      `json:"side"`
	DefaultDifficulty engine.Difficulty `json:"default_difficulty"`
	Delays            ThinkDelays       `json:"delays"`
	// Seed of 0 seeds from the clock.
	Seed uint64 `json:"seed"`
}

type Config struct {
	Addr         string    `json:"addr"`
	AllowOrigins string    `json:"allow_origins"`
	LogLevel     string    `json:"log_level"`
	Bot          BotConfig `json:"bot"`
}

// Load builds the configuration from defaults, then the XDG config file,
// then the environment.
func Load() (*Config, error) {
	config := Default()
	if absPath, err := xdg.SearchConfigFile(cfgFile); err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
		log.Infof("loaded config from %s", absPath)
	}
	if err := config.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("CHESSRULES_ADDR"); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup("CHESSRULES_ORIGINS"); ok && v != "" {
		c.AllowOrigins = v
	}
	if v, ok := lookup("CHESSRULES_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("CHESSRULES_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("CHESSRULES_SEED: %v", err)}
		}
		c.Bot.Seed = seed
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return &InvalidConfig{"listen address is empty"}
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	if !c.Bot.Side.Valid() {
		return &InvalidConfig{fmt.Sprintf("bot side must be white or black, got %q", c.Bot.Side)}
	}
	if _, err := engine.ParseDifficulty(string(c.Bot.DefaultDifficulty)); err != nil {
		return &InvalidConfig{err.Error()}
	}
	for _, d := range []Duration{c.Bot.Delays.Easy, c.Bot.Delays.Medium, c.Bot.Delays.Hard} {
		if d < 0 {
			return &InvalidConfig{"think delays must not be negative"}
		}
	}
	return nil
}

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// Level returns the fiber log level named by LogLevel.
func (c *Config) Level() log.Level {
	if lvl, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return lvl
	}
	return log.LevelInfo
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	jsonData, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(absPath, jsonData, 0664)
}

func readCfgFile(filePath string, c *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, c); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}

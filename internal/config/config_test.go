package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.Bot.Side != engine.Black {
		t.Errorf("expected the bot to play black, got %s", c.Bot.Side)
	}
	if got := c.Bot.Delays.For(engine.Easy); got != 500*time.Millisecond {
		t.Errorf("expected 500ms easy delay, got %s", got)
	}
	if got := c.Bot.Delays.For(engine.Hard); got != 1500*time.Millisecond {
		t.Errorf("expected 1.5s hard delay, got %s", got)
	}
	if c.Level() != log.LevelInfo {
		t.Errorf("expected info level")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad side", func(c *Config) { c.Bot.Side = "red" }},
		{"bad difficulty", func(c *Config) { c.Bot.DefaultDifficulty = "grandmaster" }},
		{"negative delay", func(c *Config) { c.Bot.Delays.Medium = Duration(-time.Second) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			var invalid *InvalidConfig
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidConfig, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CHESSRULES_ADDR":      ":9000",
		"CHESSRULES_LOG_LEVEL": "debug",
		"CHESSRULES_SEED":      "42",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	c := Default()
	if err := c.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if c.Addr != ":9000" || c.LogLevel != "debug" || c.Bot.Seed != 42 {
		t.Fatalf("env not applied: %+v", c)
	}
	if c.AllowOrigins != "http://localhost:5173" {
		t.Errorf("unset variables must keep defaults, got %q", c.AllowOrigins)
	}

	env["CHESSRULES_SEED"] = "abc"
	if err := c.applyEnv(lookup); err == nil {
		t.Fatal("expected an error for a non-numeric seed")
	}
}

func TestReadCfgFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	raw := `{"addr": ":4000", "bot": {"side": "white", "delays": {"easy": "50ms"}}}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := Default()
	if err := readCfgFile(path, &c); err != nil {
		t.Fatalf("readCfgFile: %v", err)
	}
	if c.Addr != ":4000" || c.Bot.Side != engine.White {
		t.Fatalf("file values not applied: %+v", c)
	}
	if got := c.Bot.Delays.For(engine.Easy); got != 50*time.Millisecond {
		t.Errorf("expected 50ms, got %s", got)
	}
	if got := c.Bot.Delays.For(engine.Medium); got != time.Second {
		t.Errorf("missing keys must keep defaults, got %s", got)
	}

	if err := os.WriteFile(path, []byte(`{"addr": `), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var invalid *InvalidConfig
	if err := readCfgFile(path, &c); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidConfig for broken JSON, got %v", err)
	}
}

func TestDurationJSON(t *testing.T) {
	data, err := json.Marshal(Duration(1500 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"1.5s"` {
		t.Fatalf("expected \"1.5s\", got %s", data)
	}
	var d Duration
	if err := json.Unmarshal([]byte(`250`), &d); err == nil {
		t.Fatal("expected numbers to be rejected")
	}
}

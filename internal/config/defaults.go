package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
)

// Duration reads and writes as a Go duration string such as "1.5s".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		LogLevel:     "info",
		Bot: BotConfig{
			Side:              engine.Black,
			DefaultDifficulty: engine.Medium,
			Delays: ThinkDelays{
				Easy:   Duration(500 * time.Millisecond),
				Medium: Duration(1000 * time.Millisecond),
				Hard:   Duration(1500 * time.Millisecond),
			},
		},
	}
}

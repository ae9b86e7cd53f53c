// Package config centralizes everything the pipeline used to pick up from
// ambient globals: database credentials, portal login, OpenAI settings,
// pricing and the working-directory layout. Callers receive an explicit
// Config instead of reading the environment themselves.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// DSN renders the go-sql-driver/mysql connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_unicode_ci&parseTime=true",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type Portal struct {
	BaseURL  string
	Username string
	Password string
}

type OpenAI struct {
	APIKey          string
	BaseURL         string
	TranscribeModel string
	ChatModel       string
}

type Pricing struct {
	TranscribePerMinUSD float64
	EvalPerCallUSD      float64
}

// CallFilter narrows which completed calls are pulled for monitoring.
type CallFilter struct {
	QueuePrefix  string // queue_id LIKE '<prefix>%'
	QueueExclude string // queue_id NOT LIKE '<exclude>%'
	MinCallSecs  int
	From         time.Time
	To           time.Time
}

type Config struct {
	DB      DB
	Portal  Portal
	OpenAI  OpenAI
	Pricing Pricing
	Filter  CallFilter

	// WorkDir is the root folder holding pending audio and all run folders.
	WorkDir string
	// Carteira names the portfolio being monitored (e.g. "aguas").
	Carteira string
	// Labeler selects the speaker labeler: "rules" or "model".
	Labeler string
}

// Load reads .env (if present) and the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DB: DB{
			Host:     envOr("DB_HOST", "127.0.0.1"),
			Port:     envInt("DB_PORT", 3306),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     envOr("DB_NAME", "vonix"),
		},
		Portal: Portal{
			BaseURL:  os.Getenv("PORTAL_URL"),
			Username: os.Getenv("PORTAL_USER"),
			Password: os.Getenv("PORTAL_PASSWORD"),
		},
		OpenAI: OpenAI{
			APIKey:          os.Getenv("OPENAI_API_KEY"),
			BaseURL:         envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			TranscribeModel: envOr("TRANSCRIBE_MODEL", "gpt-4o-transcribe"),
			ChatModel:       envOr("CHAT_MODEL", "gpt-4.1-mini"),
		},
		Pricing: Pricing{
			TranscribePerMinUSD: envFloat("PRICE_TRANSCRIBE_MIN", 0.006),
			EvalPerCallUSD:      envFloat("PRICE_EVAL_CALL", 0.002),
		},
		Filter: CallFilter{
			QueuePrefix:  envOr("QUEUE_PREFIX", "aguas"),
			QueueExclude: os.Getenv("QUEUE_EXCLUDE"),
			MinCallSecs:  envInt("MIN_CALL_SECS", 60),
		},
		WorkDir:  envOr("WORK_DIR", "Audios_monitoria"),
		Carteira: envOr("CARTEIRA", "aguas"),
		Labeler:  envOr("SPEAKER_LABELER", "rules"),
	}

	if from := os.Getenv("CALLS_FROM"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return Config{}, fmt.Errorf("CALLS_FROM: %w", err)
		}
		cfg.Filter.From = t
	}
	if to := os.Getenv("CALLS_TO"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return Config{}, fmt.Errorf("CALLS_TO: %w", err)
		}
		cfg.Filter.To = t
	}

	return cfg, nil
}

// Validate reports the missing keys a full pipeline run needs. Individual
// subcommands check only the sections they touch.
func (c Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY not set")
	}
	if c.Labeler != "rules" && c.Labeler != "model" {
		return fmt.Errorf("SPEAKER_LABELER must be \"rules\" or \"model\", got %q", c.Labeler)
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

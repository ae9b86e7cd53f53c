package main

import (
	"fmt"
	"time"

	"github.com/WanderTerra/Automacao-monitoria/internal/config"
	"github.com/WanderTerra/Automacao-monitoria/internal/diarize"
	"github.com/WanderTerra/Automacao-monitoria/internal/llm"
	"github.com/WanderTerra/Automacao-monitoria/internal/store"
)

// windowFlags are shared by every command that filters calls by date.
var windowFlags struct {
	from string
	to   string
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if err := applyWindow(&cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// applyWindow overrides the env-configured date window with the CLI flags.
func applyWindow(cfg *config.Config) error {
	if windowFlags.from != "" {
		t, err := time.ParseInLocation("2006-01-02", windowFlags.from, time.Local)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		cfg.Filter.From = t
	}
	if windowFlags.to != "" {
		t, err := time.ParseInLocation("2006-01-02", windowFlags.to, time.Local)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		cfg.Filter.To = t
	}
	return nil
}

func openStore(cfg config.Config) (*store.Store, error) {
	if cfg.DB.Host == "" || cfg.DB.Name == "" {
		return nil, fmt.Errorf("database not configured, set DB_HOST and DB_NAME")
	}
	return store.Open(cfg.DB)
}

func buildLabeler(cfg config.Config) (diarize.Labeler, error) {
	var client *llm.Client
	if cfg.Labeler == "model" {
		client = llm.New(cfg.OpenAI)
	}
	return diarize.NewLabeler(cfg.Labeler, client)
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the YAML configuration structure. Every field has a usable
// default; a missing config file is not an error.
type Settings struct {
	Communities []string `yaml:"communities"`
	Competitors struct {
		Names       []string `yaml:"names"`
		Communities []string `yaml:"communities"`
	} `yaml:"competitors"`
	DataDir           string `yaml:"data_dir"`
	Limit             int    `yaml:"limit"`
	ScoreThreshold    int    `yaml:"score_threshold"`
	SeenCap           int    `yaml:"seen_cap"`
	RequestIntervalMS int    `yaml:"request_interval_ms"`
	UserAgent         string `yaml:"user_agent"`
	NATS              struct {
		URL     string `yaml:"url"`
		Subject string `yaml:"subject"`
	} `yaml:"nats"`
}

func defaultSettings() *Settings {
	s := &Settings{
		Communities:       []string{"SaaS", "startups", "Entrepreneur", "smallbusiness"},
		DataDir:           ".reddit-scout",
		Limit:             25,
		ScoreThreshold:    50,
		SeenCap:           1000,
		RequestIntervalMS: 500,
	}
	s.NATS.Subject = "scout.notify"
	return s
}

// loadSettings reads the YAML config at path, falling back to defaults when
// the file is absent, then applies REDDIT_SCOUT_* environment overrides
// (godotenv has already populated the environment from .env by this point).
func loadSettings(path string) (*Settings, error) {
	s := defaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("REDDIT_SCOUT_DATA_DIR"); v != "" {
		s.DataDir = v
	}
	if v := os.Getenv("REDDIT_SCOUT_NATS_URL"); v != "" {
		s.NATS.URL = v
	}
	if v := os.Getenv("REDDIT_SCOUT_USER_AGENT"); v != "" {
		s.UserAgent = v
	}
	if v := os.Getenv("REDDIT_SCOUT_SEEN_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.SeenCap = n
		}
	}
	return s, nil
}

// requestInterval converts the configured pacing to a duration.
func (s *Settings) requestInterval() time.Duration {
	return time.Duration(s.RequestIntervalMS) * time.Millisecond
}

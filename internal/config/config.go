package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "https://ga.healthinspections.us/stateofgeorgia/API/index.cfm"

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	API struct {
		BaseURL string `yaml:"base_url"`
		// SearchPages is the number of result pages requested per run. The
		// upstream service returns empty arrays past the real result count,
		// so this is an upper bound, not a prediction.
		SearchPages int `yaml:"search_pages"`
		// TimeoutSeconds applies per request; 0 disables timeouts entirely.
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"api"`

	Archive struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"archive"`
}

func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.API.BaseURL = defaultBaseURL
	cfg.API.SearchPages = 500
	cfg.Archive.Enabled = false
	return cfg
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

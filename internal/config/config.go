package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meteolog/almanac/internal"
	"github.com/meteolog/almanac/internal/fetch"
	"github.com/meteolog/almanac/internal/runner"
)

type Logger struct {
	Level string `yaml:"level"`
}

type Global struct {
	Logger Logger `yaml:"logger"`
}

type Endpoint struct {
	ID          string `yaml:"id"`
	URL         string `yaml:"url"`
	File        string `yaml:"file"`
	Description string `yaml:"description"`
}

type Fetcher struct {
	UserAgent      string     `yaml:"user_agent"`
	TimeoutSeconds int        `yaml:"timeout_seconds"`
	PauseSeconds   int        `yaml:"pause_seconds"`
	Endpoints      []Endpoint `yaml:"endpoints"`
}

type LocalRepository struct {
	Path string `yaml:"path"`
}

type S3Repository struct {
	Bucket         string `yaml:"bucket"`
	Region         string `yaml:"region"`
	Prefix         string `yaml:"prefix"`
	Endpoint       string `yaml:"endpoint"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

type Repository struct {
	Type  string          `yaml:"type"`
	Local LocalRepository `yaml:"local"`
	S3    S3Repository    `yaml:"s3"`
}

type Server struct {
	Addr            string `yaml:"addr"`
	IntervalSeconds int    `yaml:"interval_seconds"`
}

type Almanac struct {
	Global     Global     `yaml:"global"`
	Fetcher    Fetcher    `yaml:"fetcher"`
	Repository Repository `yaml:"repository"`
	Server     Server     `yaml:"server"`
}

// Default returns the built-in configuration: the fixed endpoint table,
// the fixed timeout and pause, and files written to the current working
// directory. Running with no config file uses exactly this.
func Default() *Almanac {
	endpoints := make([]Endpoint, 0, 2)
	for _, e := range internal.DefaultEndpoints() {
		endpoints = append(endpoints, Endpoint{
			ID:          e.ID,
			URL:         e.URL,
			File:        e.File,
			Description: e.Description,
		})
	}

	return &Almanac{
		Global: Global{
			Logger: Logger{Level: "info"},
		},
		Fetcher: Fetcher{
			UserAgent:      fetch.DefaultUserAgent,
			TimeoutSeconds: int(fetch.DefaultTimeout.Seconds()),
			PauseSeconds:   int(runner.DefaultPause.Seconds()),
			Endpoints:      endpoints,
		},
		Repository: Repository{
			Type:  "local",
			Local: LocalRepository{Path: "."},
		},
		Server: Server{
			Addr:            ":8080",
			IntervalSeconds: 3600,
		},
	}
}

// NewAlmanacFromFile loads a YAML config file over the defaults, so a
// partial file only overrides what it names.
func NewAlmanacFromFile(fpath string) (*Almanac, error) {
	bs, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}

	almanac := Default()
	if err := yaml.Unmarshal(bs, almanac); err != nil {
		return nil, err
	}

	return almanac, nil
}

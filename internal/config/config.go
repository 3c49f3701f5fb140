package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel    = "hodgkin_huxley"
	DefaultSolver   = "euler"
	DefaultStart    = 0.0
	DefaultEnd      = 100.0
	DefaultStepSize = 0.001
	DefaultDataDir  = ".cellsolve"
)

type Config struct {
	Model    string  `yaml:"model"`
	Solver   string  `yaml:"solver"`
	Start    float64 `yaml:"start"`
	End      float64 `yaml:"end"`
	StepSize float64 `yaml:"step_size"`
	Repeat   int     `yaml:"repeat"`
	DataDir  string  `yaml:"data_dir"`
}

func Default() *Config {
	return &Config{
		Model:    DefaultModel,
		Solver:   DefaultSolver,
		Start:    DefaultStart,
		End:      DefaultEnd,
		StepSize: DefaultStepSize,
		DataDir:  DefaultDataDir,
	}
}

// Load reads a YAML config file over the defaults; fields absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

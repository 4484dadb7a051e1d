// Package config loads agent and match settings from YAML.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"splendor/game"
	"splendor/meta"
)

const (
	StrategyBFS    = "bfs"
	StrategyDLS    = "dls"
	StrategyMCTS   = "mcts"
	StrategyGreedy = "greedy"
	StrategyTrain  = "train"
	StrategyRandom = "random"
)

var strategies = map[string]bool{
	StrategyBFS:    true,
	StrategyDLS:    true,
	StrategyMCTS:   true,
	StrategyGreedy: true,
	StrategyTrain:  true,
	StrategyRandom: true,
}

const (
	BackendJSON   = "json"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

type WeightsConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	// Name keys the vector inside a badger store.
	Name string `yaml:"name"`
}

// Config describes one agent.
type Config struct {
	Strategy     string        `yaml:"strategy"`
	ThinkTime    time.Duration `yaml:"think_time"`
	Seed         uint64        `yaml:"seed"` // 0 seeds from the clock
	WinningScore int           `yaml:"winning_score"`
	Gamma        float64       `yaml:"gamma"`
	MCTSGamma    float64       `yaml:"mcts_gamma"`
	Alpha        float64       `yaml:"alpha"`
	Epsilon      float64       `yaml:"epsilon"`
	EpsilonFloor float64       `yaml:"epsilon_floor"`
	Cutoff       int           `yaml:"cutoff"`
	MaxDepth     int           `yaml:"max_depth"`
	Features     []int         `yaml:"features"`
	Weights      WeightsConfig `yaml:"weights"`
	TrendPath    string        `yaml:"trend_path"`
	LogLevel     string        `yaml:"log_level"`
	MetricsAddr  string        `yaml:"metrics_addr"`
}

func Default() Config {
	return Config{
		Strategy:     StrategyMCTS,
		ThinkTime:    meta.ThinkTime,
		WinningScore: game.WinningScore,
		Gamma:        meta.TDGamma,
		MCTSGamma:    meta.MCTSGamma,
		Alpha:        meta.Alpha,
		Epsilon:      meta.Epsilon,
		EpsilonFloor: meta.EpsilonFloor,
		Cutoff:       meta.Cutoff,
		Weights: WeightsConfig{
			Backend: BackendJSON,
			Path:    "weights.json",
		},
		LogLevel: "info",
	}
}

// UnmarshalYAML fills fields missing from the document with defaults.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	p := plain(Default())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Config(p)
	return nil
}

func (c Config) Validate() error {
	if !strategies[c.Strategy] {
		return errors.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.ThinkTime <= 0 {
		return errors.Errorf("think_time must be positive, got %s", c.ThinkTime)
	}
	if c.WinningScore <= 0 {
		return errors.Errorf("winning_score must be positive, got %d", c.WinningScore)
	}
	for name, v := range map[string]float64{"gamma": c.Gamma, "mcts_gamma": c.MCTSGamma, "alpha": c.Alpha} {
		if v <= 0 || v > 1 {
			return errors.Errorf("%s must be in (0, 1], got %v", name, v)
		}
	}
	for name, v := range map[string]float64{"epsilon": c.Epsilon, "epsilon_floor": c.EpsilonFloor} {
		if v < 0 || v > 1 {
			return errors.Errorf("%s must be in [0, 1], got %v", name, v)
		}
	}
	if c.Cutoff < 0 || c.MaxDepth < 0 {
		return errors.New("cutoff and max_depth must not be negative")
	}
	switch c.Weights.Backend {
	case BackendJSON, BackendBadger:
		if c.Weights.Path == "" {
			return errors.Errorf("weights.path is required for the %s backend", c.Weights.Backend)
		}
	case BackendMemory:
	default:
		return errors.Errorf("unknown weights backend %q", c.Weights.Backend)
	}
	return nil
}

// Load reads a Config from path. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := c.Validate(); err != nil {
		return c, errors.Wrapf(err, "invalid config %s", path)
	}
	return c, nil
}

// MatchConfig pits two agents against each other over a number of games.
type MatchConfig struct {
	Name      string   `yaml:"name"`
	Games     int      `yaml:"games"`
	MaxTurns  int      `yaml:"max_turns"`
	Seed      uint64   `yaml:"seed"`
	OutputDir string   `yaml:"output_dir"`
	Agents    []Config `yaml:"agents"`
}

func DefaultMatch() MatchConfig {
	return MatchConfig{
		Name:      "match",
		Games:     10,
		MaxTurns:  meta.MaxTurns,
		OutputDir: ".",
		Agents:    []Config{Default(), Default()},
	}
}

func (m MatchConfig) Validate() error {
	if m.Games <= 0 {
		return errors.Errorf("games must be positive, got %d", m.Games)
	}
	if m.MaxTurns <= 0 {
		return errors.Errorf("max_turns must be positive, got %d", m.MaxTurns)
	}
	if len(m.Agents) != game.NumAgents {
		return errors.Errorf("a match needs %d agents, got %d", game.NumAgents, len(m.Agents))
	}
	for i, a := range m.Agents {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "agent %d", i)
		}
	}
	return nil
}

func LoadMatch(path string) (MatchConfig, error) {
	m := DefaultMatch()
	if path == "" {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return m, errors.Wrapf(err, "failed to read match config %s", path)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, errors.Wrapf(err, "failed to parse match config %s", path)
	}
	if err := m.Validate(); err != nil {
		return m, errors.Wrapf(err, "invalid match config %s", path)
	}
	return m, nil
}

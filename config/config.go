package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete simulation configuration
type Config struct {
	Simulation  SimulationConfig  `json:"simulation" yaml:"simulation"`
	Corporation CorporationSeed   `json:"corporation" yaml:"corporation"`
	Person      PersonSeed        `json:"person" yaml:"person"`
	Finance     FinanceConfig     `json:"finance" yaml:"finance"`
	Journal     JournalConfig     `json:"journal" yaml:"journal"`
}

// SimulationConfig contains run-level parameters
type SimulationConfig struct {
	Ticks        int     `json:"ticks" yaml:"ticks"`
	Corporations int     `json:"corporations" yaml:"corporations"`
	People       int     `json:"people" yaml:"people"`
	Banks        int     `json:"banks" yaml:"banks"`
	Benefit      float64 `json:"benefit" yaml:"benefit"`
	Seed         int64   `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// CorporationSeed contains initial corporation parameters
type CorporationSeed struct {
	Price   float64 `json:"price" yaml:"price"`
	Demand  int     `json:"demand" yaml:"demand"`
	Salary  float64 `json:"salary" yaml:"salary"`
	PPE     int     `json:"ppe" yaml:"ppe"`
	Balance float64 `json:"balance" yaml:"balance"`
}

// PersonSeed contains initial person parameters
type PersonSeed struct {
	MPC float64 `json:"mpc" yaml:"mpc"`
}

// FinanceConfig contains finance-review parameters
type FinanceConfig struct {
	TargetRunway float64 `json:"target_runway" yaml:"target_runway"`
	AllowBorrow  bool    `json:"allow_borrow" yaml:"allow_borrow"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	EntriesFile string `json:"entries_file,omitempty" yaml:"entries_file,omitempty"`
	TicksFile   string `json:"ticks_file,omitempty" yaml:"ticks_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Default returns a runnable configuration for a small economy.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Ticks:        50,
			Corporations: 5,
			People:       100,
			Banks:        2,
			Benefit:      30,
		},
		Corporation: CorporationSeed{
			Price:   10,
			Demand:  30,
			Salary:  50,
			PPE:     5,
			Balance: 10000,
		},
		Person: PersonSeed{MPC: 0.5},
		Finance: FinanceConfig{
			TargetRunway: 6,
			AllowBorrow:  true,
		},
		Journal: JournalConfig{Type: "none"},
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.Ticks <= 0 {
		return fmt.Errorf("simulation.ticks must be positive, got %d", c.Simulation.Ticks)
	}
	if c.Simulation.Corporations <= 0 {
		return fmt.Errorf("simulation.corporations must be positive, got %d", c.Simulation.Corporations)
	}
	if c.Simulation.People <= 0 {
		return fmt.Errorf("simulation.people must be positive, got %d", c.Simulation.People)
	}
	if c.Simulation.Banks <= 0 {
		return fmt.Errorf("simulation.banks must be positive, got %d", c.Simulation.Banks)
	}
	if c.Corporation.Price <= 0 {
		return fmt.Errorf("corporation.price must be positive, got %v", c.Corporation.Price)
	}
	if c.Corporation.PPE <= 0 {
		return fmt.Errorf("corporation.ppe must be positive, got %d", c.Corporation.PPE)
	}
	if c.Corporation.Salary < 0 || c.Corporation.Balance < 0 {
		return fmt.Errorf("corporation salary/balance must not be negative")
	}
	if c.Person.MPC < 0 || c.Person.MPC > 1 {
		return fmt.Errorf("person.mpc must be in [0,1], got %v", c.Person.MPC)
	}
	if c.Finance.TargetRunway < 0 {
		return fmt.Errorf("finance.target_runway must not be negative, got %v", c.Finance.TargetRunway)
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.EntriesFile == "" || c.Journal.TicksFile == "" {
			return fmt.Errorf("journal type csv requires entries_file and ticks_file")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal type sqlite requires db_path")
		}
	default:
		return fmt.Errorf("unknown journal type %q", c.Journal.Type)
	}
	return nil
}

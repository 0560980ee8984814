// Package config loads the HCL configuration file shared by the crowns commands.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/lox/fivecrowns/crowns"
)

// DefaultFilename is looked up in the working directory when --config is not given.
const DefaultFilename = "crowns.hcl"

// Config represents the complete configuration. Every block is optional.
type Config struct {
	Advisor    *AdvisorSettings    `hcl:"advisor,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Output     *OutputSettings     `hcl:"output,block"`
}

// AdvisorSettings controls the advisor's random tie-breaks
type AdvisorSettings struct {
	// Seed fixes the random source. Zero picks a time based seed.
	Seed int64 `hcl:"seed,optional"`
}

// SimulationSettings controls the simulate command
type SimulationSettings struct {
	Games    int    `hcl:"games,optional"`
	MaxTurns int    `hcl:"max_turns,optional"`
	Rounds   []int  `hcl:"rounds,optional"`
	Budget   string `hcl:"budget,optional"`
}

// OutputSettings controls logging and rendering
type OutputSettings struct {
	LogLevel string `hcl:"log_level,optional"`
	Color    string `hcl:"color,optional"`
	Format   string `hcl:"format,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Advisor: &AdvisorSettings{
			Seed: 0,
		},
		Simulation: &SimulationSettings{
			Games:    100,
			MaxTurns: 30,
			Rounds:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
			Budget:   "0s",
		},
		Output: &OutputSettings{
			LogLevel: "warn",
			Color:    "auto",
			Format:   "text",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults(Default())
	return &cfg, nil
}

func (c *Config) applyDefaults(defaults *Config) {
	if c.Advisor == nil {
		c.Advisor = defaults.Advisor
	}

	if c.Simulation == nil {
		c.Simulation = defaults.Simulation
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = defaults.Simulation.Games
	}
	if c.Simulation.MaxTurns == 0 {
		c.Simulation.MaxTurns = defaults.Simulation.MaxTurns
	}
	if len(c.Simulation.Rounds) == 0 {
		c.Simulation.Rounds = defaults.Simulation.Rounds
	}
	if c.Simulation.Budget == "" {
		c.Simulation.Budget = defaults.Simulation.Budget
	}

	if c.Output == nil {
		c.Output = defaults.Output
	}
	if c.Output.LogLevel == "" {
		c.Output.LogLevel = defaults.Output.LogLevel
	}
	if c.Output.Color == "" {
		c.Output.Color = defaults.Output.Color
	}
	if c.Output.Format == "" {
		c.Output.Format = defaults.Output.Format
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Games <= 0 {
		return fmt.Errorf("simulation games must be positive")
	}
	if c.Simulation.MaxTurns <= 0 {
		return fmt.Errorf("simulation max_turns must be positive")
	}
	for _, r := range c.Simulation.Rounds {
		if r < crowns.MinRound || r > crowns.MaxRound {
			return fmt.Errorf("simulation round %d out of range %d-%d", r, crowns.MinRound, crowns.MaxRound)
		}
	}
	if _, err := c.BudgetDuration(); err != nil {
		return err
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.Output.LogLevel) {
		return fmt.Errorf("invalid log level: %s", c.Output.LogLevel)
	}

	validColors := []string{"auto", "always", "never"}
	if !slices.Contains(validColors, c.Output.Color) {
		return fmt.Errorf("invalid color mode: %s", c.Output.Color)
	}

	validFormats := []string{"text", "json"}
	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}

	return nil
}

// BudgetDuration parses the simulation time budget
func (c *Config) BudgetDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Simulation.Budget)
	if err != nil {
		return 0, fmt.Errorf("invalid simulation budget %q: %w", c.Simulation.Budget, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("simulation budget cannot be negative")
	}
	return d, nil
}

// Encode renders the configuration as HCL
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}

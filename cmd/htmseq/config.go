package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	htm "github.com/htm-community/htmseq"
	"github.com/htm-community/htmseq/encoders"
	"gopkg.in/yaml.v3"
)

// Config is the htmseq configuration file.
type Config struct {
	Region  RegionConfig  `yaml:"region"`
	Encoder EncoderConfig `yaml:"encoder"`
	Run     RunConfig     `yaml:"run"`
}

// RegionConfig mirrors htm.RegionParams minus the logger.
type RegionConfig struct {
	Width                  int     `yaml:"width"`
	Height                 int     `yaml:"height"`
	PotentialPct           float64 `yaml:"potential_pct"`
	LocalAreaDensity       float64 `yaml:"local_area_density"`
	NumActiveColumns       int     `yaml:"num_active_columns"`
	StimulusThreshold      int     `yaml:"stimulus_threshold"`
	DutyCyclePeriod        int     `yaml:"duty_cycle_period"`
	MinPctActiveDutyCycles float64 `yaml:"min_pct_active_duty_cycles"`
	UpdatePeriod           int     `yaml:"update_period"`
	MaxBoost               float64 `yaml:"max_boost"`
	BoostStep              float64 `yaml:"boost_step"`
	OveractiveFactor       float64 `yaml:"overactive_factor"`
	MaxNewSynapseCount     int     `yaml:"max_new_synapse_count"`
	LearnOnPredicted       bool    `yaml:"learn_on_predicted"`
	BurnIn                 int     `yaml:"burn_in"`
	Seed                   int64   `yaml:"seed"`
	Verbosity              int     `yaml:"verbosity"`
}

// EncoderConfig mirrors encoders.SymbolEncoderParams.
type EncoderConfig struct {
	Width         int     `yaml:"width"`
	Density       float64 `yaml:"density"`
	MaxOverlapPct float64 `yaml:"max_overlap_pct"`
	Seed          int64   `yaml:"seed"`
}

// RunConfig holds driver settings.
type RunConfig struct {
	Text          string   `yaml:"text"`
	Passes        int      `yaml:"passes"`
	ResetEachPass bool     `yaml:"reset_each_pass"`
	Baselines     []string `yaml:"baselines"`
	HistoryFile   string   `yaml:"history_file"`
	Serve         string   `yaml:"serve"`
}

// Default returns the default configuration.
func Default() *Config {
	rp := htm.NewRegionParams()
	ep := encoders.NewSymbolEncoderParams()

	return &Config{
		Region: RegionConfig{
			Width:                  32,
			Height:                 32,
			PotentialPct:           rp.PotentialPct,
			LocalAreaDensity:       rp.LocalAreaDensity,
			NumActiveColumns:       rp.NumActiveColumns,
			StimulusThreshold:      rp.StimulusThreshold,
			DutyCyclePeriod:        rp.DutyCyclePeriod,
			MinPctActiveDutyCycles: rp.MinPctActiveDutyCycles,
			UpdatePeriod:           rp.UpdatePeriod,
			MaxBoost:               rp.MaxBoost,
			BoostStep:              rp.BoostStep,
			OveractiveFactor:       rp.OveractiveFactor,
			MaxNewSynapseCount:     rp.MaxNewSynapseCount,
			LearnOnPredicted:       rp.LearnOnPredicted,
			BurnIn:                 1,
			Seed:                   rp.Seed,
		},
		Encoder: EncoderConfig{
			Width:         ep.Width,
			Density:       ep.Density,
			MaxOverlapPct: ep.MaxOverlapPct,
			Seed:          ep.Seed,
		},
		Run: RunConfig{
			Passes:        20,
			ResetEachPass: true,
			Baselines:     []string{htm.Last.String(), htm.Zeroth.String()},
		},
	}
}

// Params builds region params writing diagnostics to logger.
func (c RegionConfig) Params(logger *log.Logger) *htm.RegionParams {
	p := htm.NewRegionParams()
	p.Width = c.Width
	p.Height = c.Height
	p.PotentialPct = c.PotentialPct
	p.LocalAreaDensity = c.LocalAreaDensity
	p.NumActiveColumns = c.NumActiveColumns
	p.StimulusThreshold = c.StimulusThreshold
	p.DutyCyclePeriod = c.DutyCyclePeriod
	p.MinPctActiveDutyCycles = c.MinPctActiveDutyCycles
	p.UpdatePeriod = c.UpdatePeriod
	p.MaxBoost = c.MaxBoost
	p.BoostStep = c.BoostStep
	p.OveractiveFactor = c.OveractiveFactor
	p.MaxNewSynapseCount = c.MaxNewSynapseCount
	p.LearnOnPredicted = c.LearnOnPredicted
	p.BurnIn = c.BurnIn
	p.Seed = c.Seed
	p.Verbosity = c.Verbosity
	p.Logger = logger
	return p
}

// Params builds symbol encoder params.
func (c EncoderConfig) Params() encoders.SymbolEncoderParams {
	p := encoders.NewSymbolEncoderParams()
	p.Width = c.Width
	p.Density = c.Density
	p.MaxOverlapPct = c.MaxOverlapPct
	p.Seed = c.Seed
	return *p
}

// BaselineMethods parses the configured baseline predictor names.
func (c RunConfig) BaselineMethods() ([]htm.PredictorMethod, error) {
	methods := make([]htm.PredictorMethod, 0, len(c.Baselines))
	for _, name := range c.Baselines {
		m, err := htm.ParsePredictorMethod(name)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, nil
}

// Load loads configuration from a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfigPath returns htmseq.yaml in the working directory.
func DefaultConfigPath() string {
	return "htmseq.yaml"
}

// InitConfig creates a default config file if it doesn't exist.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return Default().Save(path)
}

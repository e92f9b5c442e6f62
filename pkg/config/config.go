package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

type FigureConfig struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// WindowConfig is the size window of the partial area under the curve.
type WindowConfig struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

type MonteCarlo1Config struct {
	Input              string    `json:"input" yaml:"input"`
	ReferenceModel     string    `json:"referenceModel" yaml:"referenceModel"`
	AlternativeModel   string    `json:"alternativeModel" yaml:"alternativeModel"`
	SampleSizes        []int     `json:"sampleSizes" yaml:"sampleSizes"`
	SignificanceLevels []float64 `json:"significanceLevels" yaml:"significanceLevels"`
}

type MonteCarlo2Config struct {
	Input          string  `json:"input" yaml:"input"`
	RawInput       string  `json:"rawInput" yaml:"rawInput"`
	MinAlpha1      float64 `json:"minAlpha1" yaml:"minAlpha1"`
	SizeModelIndex int     `json:"sizeModelIndex" yaml:"sizeModelIndex"`
}

type IllustrationConfig struct {
	Input          string `json:"input" yaml:"input"`
	MaxObservation int    `json:"maxObservation" yaml:"maxObservation"`
}

type ApproximationsConfig struct {
	Dir         string      `json:"dir" yaml:"dir"`
	Phis        StringSlice `json:"phis" yaml:"phis"`
	CFactorRows int         `json:"cFactorRows" yaml:"cFactorRows"`

	// page size in inches
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

type Config struct {
	InputDir  string `json:"inputDir" yaml:"inputDir"`
	OutputDir string `json:"outputDir" yaml:"outputDir"`

	Placeholder string       `json:"placeholder" yaml:"placeholder"`
	Figure      FigureConfig `json:"figure" yaml:"figure"`

	PAUC               WindowConfig `json:"pauc" yaml:"pauc"`
	Anchors            []float64    `json:"anchors" yaml:"anchors"`
	StrictMonotonicity bool         `json:"strictMonotonicity" yaml:"strictMonotonicity"`

	MonteCarlo1    MonteCarlo1Config    `json:"monteCarlo1" yaml:"monteCarlo1"`
	MonteCarlo2    MonteCarlo2Config    `json:"monteCarlo2" yaml:"monteCarlo2"`
	Illustration   IllustrationConfig   `json:"illustration" yaml:"illustration"`
	Approximations ApproximationsConfig `json:"approximations" yaml:"approximations"`
}

// Default reproduces the published figures and tables.
func Default() *Config {
	return &Config{
		InputDir:    "in",
		OutputDir:   "out",
		Placeholder: "--",
		Figure:      FigureConfig{Width: 480, Height: 320},
		PAUC:        WindowConfig{Lower: 0.01, Upper: 0.1},
		Anchors:     []float64{0.2, 0.4, 0.6, 0.8},
		MonteCarlo1: MonteCarlo1Config{
			Input:              "monte_carlo_1/rejection_rates.csv",
			ReferenceModel:     "Oracle",
			AlternativeModel:   "Historical_Simulation",
			SampleSizes:        []int{250, 500, 1000, 2500, 5000},
			SignificanceLevels: []float64{0.01, 0.05, 0.1},
		},
		MonteCarlo2: MonteCarlo2Config{
			Input:          "monte_carlo_2/rejection_rates.csv",
			RawInput:       "monte_carlo_2/raw_rejection_rates.csv",
			MinAlpha1:      0.03,
			SizeModelIndex: 10,
		},
		Illustration: IllustrationConfig{
			Input:          "monte_carlo_2/illustration_series",
			MaxObservation: 250,
		},
		Approximations: ApproximationsConfig{
			Dir:         "monte_carlo_check_approximations",
			Phis:        StringSlice{"0", "0.1", "0.5"},
			CFactorRows: 200,
			Width:       6,
			Height:      5,
		},
	}
}

// Load overlays the YAML file on top of the defaults.
func Load(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "can not parse %s", configFile)
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", configFile)
	}

	return config, nil
}

// InputPath resolves a path relative to the input directory.
func (c *Config) InputPath(rel string) string {
	return filepath.Join(c.InputDir, filepath.FromSlash(rel))
}

func (c *Config) Validate() (err error) {
	if c.InputDir == "" {
		err = multierr.Append(err, errors.New("inputDir is empty"))
	}
	if c.OutputDir == "" {
		err = multierr.Append(err, errors.New("outputDir is empty"))
	}
	if c.Placeholder == "" {
		err = multierr.Append(err, errors.New("placeholder is empty"))
	}
	if c.Figure.Width < 0 || c.Figure.Height < 0 {
		err = multierr.Append(err, errors.Errorf("figure size %dx%d is negative", c.Figure.Width, c.Figure.Height))
	}

	if c.PAUC.Upper <= c.PAUC.Lower {
		err = multierr.Append(err, errors.Errorf("pauc window [%g, %g] is empty", c.PAUC.Lower, c.PAUC.Upper))
	}
	for _, a := range c.Anchors {
		if a <= 0 || a >= 1 {
			err = multierr.Append(err, errors.Errorf("anchor %g is outside of (0, 1)", a))
		}
	}

	if c.MonteCarlo1.ReferenceModel == "" || c.MonteCarlo1.AlternativeModel == "" {
		err = multierr.Append(err, errors.New("monteCarlo1 needs a reference and an alternative model"))
	}
	for _, n := range c.MonteCarlo1.SampleSizes {
		if n <= 0 {
			err = multierr.Append(err, errors.Errorf("sample size %d is not positive", n))
		}
	}
	for _, s := range c.MonteCarlo1.SignificanceLevels {
		if s <= 0 || s >= 1 {
			err = multierr.Append(err, errors.Errorf("significance level %g is outside of (0, 1)", s))
		}
	}

	if c.Illustration.MaxObservation <= 0 {
		err = multierr.Append(err, errors.Errorf("illustration maxObservation %d is not positive", c.Illustration.MaxObservation))
	}

	if len(c.Approximations.Phis) == 0 {
		err = multierr.Append(err, errors.New("approximations need at least one phi"))
	}
	if c.Approximations.CFactorRows <= 0 {
		err = multierr.Append(err, errors.Errorf("approximations cFactorRows %d is not positive", c.Approximations.CFactorRows))
	}

	return err
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Package config loads the YAML settings shared by the command line and the
// terminal UI.
//
// Every field has a default, so a file only needs the values it changes:
//
//	bitwise:
//	  width: 16
//	counter:
//	  speed: 500ms
//	log:
//	  level: debug
//	  file: bitlab.log
package config

import (
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/adder"
	"github.com/wippyai/bitlab/errors"
	"github.com/wippyai/bitlab/fixed"
	"github.com/wippyai/bitlab/segment"
)

// Config is the full settings tree.
type Config struct {
	Converter ConverterConfig `yaml:"converter"`
	Encoder   EncoderConfig   `yaml:"encoder"`
	Bitwise   BitwiseConfig   `yaml:"bitwise"`
	Adder     AdderConfig     `yaml:"adder"`
	Counter   CounterConfig   `yaml:"counter"`
	Log       LogConfig       `yaml:"log"`
}

type ConverterConfig struct {
	Value string       `yaml:"value"`
	From  bitlab.Radix `yaml:"from"`
}

type EncoderConfig struct {
	Value string `yaml:"value"`
	Type  string `yaml:"type"`
}

type BitwiseConfig struct {
	A      string         `yaml:"a"`
	B      string         `yaml:"b"`
	Width  bitlab.Width   `yaml:"width"`
	Widths []bitlab.Width `yaml:"widths"`
}

type AdderConfig struct {
	A            string         `yaml:"a"`
	B            string         `yaml:"b"`
	Width        bitlab.Width   `yaml:"width"`
	Widths       []bitlab.Width `yaml:"widths"`
	StepInterval time.Duration  `yaml:"step_interval"`
}

type CounterConfig struct {
	Max   int           `yaml:"max"`
	Radix bitlab.Radix  `yaml:"radix"`
	Speed time.Duration `yaml:"speed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Converter: ConverterConfig{Value: "42", From: bitlab.Decimal},
		Encoder:   EncoderConfig{Value: "42", Type: "int"},
		Bitwise: BitwiseConfig{
			A:      "12",
			B:      "10",
			Width:  bitlab.Width8,
			Widths: []bitlab.Width{bitlab.Width4, bitlab.Width8, bitlab.Width16},
		},
		Adder: AdderConfig{
			A:            "5",
			B:            "3",
			Width:        bitlab.Width4,
			Widths:       []bitlab.Width{bitlab.Width1, bitlab.Width2, bitlab.Width4, bitlab.Width8, bitlab.Width16},
			StepInterval: adder.DefaultStepInterval,
		},
		Counter: CounterConfig{
			Max:   segment.DefaultMax,
			Radix: segment.DefaultRadix,
			Speed: segment.DefaultSpeed,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindNotFound).
			Input(path).
			Cause(err).
			Detail("read config").
			Build()
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Cause(err).
			Detail("decode config").
			Build()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks every field against the supported values.
func (c *Config) Validate() error {
	if err := c.Converter.From.Check(errors.PhaseConfig); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "converter.from")
	}
	if _, err := fixed.LookupType(c.Encoder.Type); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "encoder.type")
	}
	if err := checkWidths("bitwise", c.Bitwise.Width, c.Bitwise.Widths); err != nil {
		return err
	}
	if err := checkWidths("adder", c.Adder.Width, c.Adder.Widths); err != nil {
		return err
	}
	if c.Adder.StepInterval <= 0 {
		return errors.New(errors.PhaseConfig, errors.KindOutOfRange).
			Path("adder", "step_interval").
			Value(c.Adder.StepInterval).
			Detail("must be positive").
			Build()
	}
	if !slices.Contains(segment.MaxPresets, c.Counter.Max) {
		return errors.New(errors.PhaseConfig, errors.KindOutOfRange).
			Path("counter", "max").
			Value(c.Counter.Max).
			Detail("must be one of %v", segment.MaxPresets).
			Build()
	}
	if err := c.Counter.Radix.Check(errors.PhaseConfig); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "counter.radix")
	}
	if !slices.Contains(segment.SpeedPresets, c.Counter.Speed) {
		return errors.New(errors.PhaseConfig, errors.KindOutOfRange).
			Path("counter", "speed").
			Value(c.Counter.Speed).
			Detail("must be one of %v", segment.SpeedPresets).
			Build()
	}
	if _, err := c.Log.ZapLevel(); err != nil {
		return err
	}
	return nil
}

// ZapLevel parses the configured log level.
func (l LogConfig) ZapLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(l.Level))
	if err != nil {
		return 0, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("log", "level").
			Input(l.Level).
			Cause(err).
			Build()
	}
	return level, nil
}

func checkWidths(section string, w bitlab.Width, offered []bitlab.Width) error {
	if len(offered) == 0 {
		return errors.Empty(errors.PhaseConfig, []string{section, "widths"})
	}
	for _, o := range offered {
		if err := o.Check(errors.PhaseConfig); err != nil {
			return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, section+".widths")
		}
	}
	if !slices.Contains(offered, w) {
		return errors.New(errors.PhaseConfig, errors.KindOutOfRange).
			Path(section, "width").
			Value(w).
			Detail("width %d is not in widths %v", w, offered).
			Build()
	}
	return nil
}

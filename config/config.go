// Package config gathers the command line options from flags, environment
// variables and an optional configuration file.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/esimov/v2x"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables overriding the defaults.
const EnvPrefix = "V2X"

// Config holds the resolved command line options.
type Config struct {
	Output     string   `mapstructure:"output"`
	Formats    []string `mapstructure:"format"`
	Background string   `mapstructure:"background"`
	Filename   string   `mapstructure:"filename"`
	Width      int      `mapstructure:"width"`
	Height     int      `mapstructure:"height"`
	Workers    int      `mapstructure:"conc"`
	Scale      float64  `mapstructure:"scale"`
	Strict     bool     `mapstructure:"strict"`
}

// NewFlagSet defines the command line flags.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringP("output", "o", "", "Output directory. If not specified it will use the current working directory")
	fs.String("filename", "", "Custom output filename without an extension. Required when the input is read from stdin")
	fs.StringSliceP("format", "f", nil, "Comma separated list of formats (avif, jpeg, png, tiff, webp, bmp, gif). By default avif, jpeg, png, tiff and webp are generated")
	fs.Int("width", 0, "Output width in pixels (overrides --scale)")
	fs.Int("height", 0, "Output height in pixels (overrides --scale)")
	fs.Float64("scale", 1.0, "Scale factor relative to the SVG's intrinsic size")
	fs.String("background", "", "Background color in hex ('#RRGGBB' or '#RRGGBBAA'). Defaults to transparent for formats supporting alpha, white otherwise")
	fs.Bool("strict", false, "Fail on unsupported SVG elements instead of skipping them")
	fs.Int("conc", runtime.NumCPU(), "Number of concurrently running workers")
	fs.String("config", "", "Path to a configuration file (default ./v2x.yaml or $HOME/.config/v2x/v2x.yaml)")
	fs.BoolP("version", "v", false, "Print the version and exit")

	return fs
}

// Load merges the parsed flags with the environment and the configuration
// file. Flags set on the command line win over environment variables, which
// win over the configuration file.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("unable to bind flags: %w", err)
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("v2x")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/v2x")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return &c, nil
}

// Processor validates the options and builds the processor they describe.
func (c *Config) Processor(logger logrus.FieldLogger) (*v2x.Processor, error) {
	if c.Scale <= 0 {
		return nil, fmt.Errorf("%w: scale must be a positive number, got %v", v2x.ErrInvalidSize, c.Scale)
	}
	if c.Width < 0 || c.Height < 0 {
		return nil, fmt.Errorf("%w: width and height must be positive", v2x.ErrInvalidSize)
	}

	formats, err := v2x.ParseFormats(c.Formats)
	if err != nil {
		return nil, err
	}

	p := &v2x.Processor{
		Formats: formats,
		Width:   c.Width,
		Height:  c.Height,
		Scale:   c.Scale,
		Strict:  c.Strict,
		Workers: c.Workers,
		Logger:  logger,
	}
	if c.Background != "" {
		bg, err := v2x.ParseColor(c.Background)
		if err != nil {
			return nil, err
		}
		p.Background = &bg
	}
	return p, nil
}

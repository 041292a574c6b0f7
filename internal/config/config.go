package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/eshaanmandal/tempgrid/internal/utils"
)

// DirName is the per-user config directory under $HOME.
const DirName = ".tempgrid"

// Global configuration structure.
type Global struct {
	InputPath  string `mapstructure:"input_path" yaml:"input_path" validate:"required"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path" validate:"required"`
	StartYear  int    `mapstructure:"start_year" yaml:"start_year" validate:"min=1,max=9999"`
	EndYear    int    `mapstructure:"end_year" yaml:"end_year" validate:"min=1,max=9999,gtefield=StartYear"`

	// Input columns
	DateColumn  string   `mapstructure:"date_column" yaml:"date_column" validate:"required"`
	MaxColumn   string   `mapstructure:"max_column" yaml:"max_column" validate:"required"`
	MinColumn   string   `mapstructure:"min_column" yaml:"min_column" validate:"required"`
	DateLayouts []string `mapstructure:"date_layouts" yaml:"date_layouts"`
	Delimiter   string   `mapstructure:"delimiter" yaml:"delimiter"`
	SheetName   string   `mapstructure:"sheet_name" yaml:"sheet_name"`

	// Chart
	Title        string `mapstructure:"title" yaml:"title"`
	Width        int    `mapstructure:"width" yaml:"width" validate:"gt=0"`
	Height       int    `mapstructure:"height" yaml:"height" validate:"gt=0"`
	Colorscale   string `mapstructure:"colorscale" yaml:"colorscale"`
	PlotlyJSFile string `mapstructure:"plotly_js_file" yaml:"plotly_js_file"`
	PlotlyJSURL  string `mapstructure:"plotly_js_url" yaml:"plotly_js_url" validate:"omitempty,url"`

	// Run reports
	SummaryPath string `mapstructure:"summary_path" yaml:"summary_path"`
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" validate:"omitempty,oneof=text json"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Global {
	return &Global{
		InputPath:   "temperature_daily.csv",
		OutputPath:  "hong_kong_temps_grid.html",
		StartYear:   2008,
		EndYear:     2017,
		DateColumn:  "date",
		MaxColumn:   "max_temperature",
		MinColumn:   "min_temperature",
		DateLayouts: []string{},
		Title:       "Hong Kong Temperatures",
		Width:       1000,
		Height:      600,
		Colorscale:  "Turbo",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// DefaultPath returns ~/.tempgrid/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tempgrid/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from the config file and defaults.
// A missing file is not an error; a malformed one is.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()

	def := Defaults()
	v.SetDefault("input_path", def.InputPath)
	v.SetDefault("output_path", def.OutputPath)
	v.SetDefault("start_year", def.StartYear)
	v.SetDefault("end_year", def.EndYear)
	v.SetDefault("date_column", def.DateColumn)
	v.SetDefault("max_column", def.MaxColumn)
	v.SetDefault("min_column", def.MinColumn)
	v.SetDefault("date_layouts", def.DateLayouts)
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("title", def.Title)
	v.SetDefault("width", def.Width)
	v.SetDefault("height", def.Height)
	v.SetDefault("colorscale", def.Colorscale)
	v.SetDefault("plotly_js_file", "")
	v.SetDefault("plotly_js_url", "")
	v.SetDefault("summary_path", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, DirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case cfgFile != "" && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks value ranges and cross-field constraints.
func (c *Global) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.DelimiterRune(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	name := yamlName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "gtefield":
		return "end_year must be >= start_year"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, fe.Param())
	case "min", "max", "gt":
		return fmt.Sprintf("%s=%v violates %s=%s", name, fe.Value(), fe.Tag(), fe.Param())
	case "url":
		return name + " must be a URL"
	default:
		return fmt.Sprintf("%s failed %s", name, fe.Tag())
	}
}

func yamlName(field string) string {
	f, ok := keyFields[field]
	if !ok {
		return field
	}
	return f
}

var keyFields = map[string]string{
	"InputPath":   "input_path",
	"OutputPath":  "output_path",
	"StartYear":   "start_year",
	"EndYear":     "end_year",
	"DateColumn":  "date_column",
	"MaxColumn":   "max_column",
	"MinColumn":   "min_column",
	"Width":       "width",
	"Height":      "height",
	"PlotlyJSURL": "plotly_js_url",
	"LogLevel":    "log_level",
	"LogFormat":   "log_format",
}

// DelimiterRune decodes the delimiter setting. Empty means sniff from the
// file extension; "\t" and "tab" select a tab.
func (c *Global) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "":
		return 0, nil
	case `\t`, "tab", "\t":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size != len(c.Delimiter) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("delimiter %q must be a single character", c.Delimiter)
	}
	return r, nil
}

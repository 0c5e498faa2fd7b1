package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrInvalidServerURL      = errors.New("server url must be set")
	ErrInvalidEndpoint       = errors.New("generate endpoint must start with '/'")
	ErrInvalidFieldNames     = errors.New("template and data field names must be set and distinct")
	ErrInvalidTemplateExt    = errors.New("template extension must start with '.'")
	ErrInvalidDataExt        = errors.New("at least one data extension starting with '.' must be set")
	ErrInvalidArtifactName   = errors.New("artifact name must be set")
	ErrInvalidDelay          = errors.New("reset and message delays must not be negative")
	ErrInvalidTimeout        = errors.New("server timeout must not be negative")
	ErrInvalidLogLevel       = errors.New("log level must be one of debug, info, warn, error")
	ErrInvalidSampleEndpoint = errors.New("sample endpoints must start with '/'")
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Form   FormConfig   `mapstructure:"form" yaml:"form"`
	UI     UIConfig     `mapstructure:"ui" yaml:"ui"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// ServerConfig describes the generation backend
type ServerConfig struct {
	URL                    string        `mapstructure:"url" yaml:"url"`
	GenerateEndpoint       string        `mapstructure:"generate_endpoint" yaml:"generate_endpoint"`
	SampleTemplateEndpoint string        `mapstructure:"sample_template_endpoint" yaml:"sample_template_endpoint"`
	SampleDataEndpoint     string        `mapstructure:"sample_data_endpoint" yaml:"sample_data_endpoint"`
	Timeout                time.Duration `mapstructure:"timeout" yaml:"timeout"` // 0 means no timeout
}

// FormConfig holds the upload form contract shared with the backend
type FormConfig struct {
	TemplateField      string   `mapstructure:"template_field" yaml:"template_field"`
	DataField          string   `mapstructure:"data_field" yaml:"data_field"`
	TemplateExtension  string   `mapstructure:"template_extension" yaml:"template_extension"`
	DataExtensions     []string `mapstructure:"data_extensions" yaml:"data_extensions"`
	ArtifactName       string   `mapstructure:"artifact_name" yaml:"artifact_name"`
	SampleTemplateName string   `mapstructure:"sample_template_name" yaml:"sample_template_name"`
	SampleDataName     string   `mapstructure:"sample_data_name" yaml:"sample_data_name"`
}

// UIConfig holds presentation constants
type UIConfig struct {
	ResetDelay        time.Duration `mapstructure:"reset_delay" yaml:"reset_delay"`
	MessageClearDelay time.Duration `mapstructure:"message_clear_delay" yaml:"message_clear_delay"`
	Placeholder       string        `mapstructure:"placeholder" yaml:"placeholder"`
	SubmitLabel       string        `mapstructure:"submit_label" yaml:"submit_label"`
	BusyLabel         string        `mapstructure:"busy_label" yaml:"busy_label"`
}

// OutputConfig controls where downloaded files land
type OutputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig controls the logger
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:                    "http://localhost:5000",
			GenerateEndpoint:       "/generate",
			SampleTemplateEndpoint: "/download-word",
			SampleDataEndpoint:     "/download-excel",
		},
		Form: FormConfig{
			TemplateField:      "template",
			DataField:          "excel",
			TemplateExtension:  ".docx",
			DataExtensions:     []string{".xlsx", ".xls"},
			ArtifactName:       "diplomas_generados.zip",
			SampleTemplateName: "Diploma_nuevo_2025.docx",
			SampleDataName:     "INFORMACION_DIPLOMAS.xlsx",
		},
		UI: UIConfig{
			ResetDelay:        3 * time.Second,
			MessageClearDelay: 5 * time.Second,
			Placeholder:       "Select file...",
			SubmitLabel:       "Generate Diplomas",
			BusyLabel:         "Generating...",
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers every default value with v so env variables and
// config files can override individual keys
func SetDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.generate_endpoint", d.Server.GenerateEndpoint)
	v.SetDefault("server.sample_template_endpoint", d.Server.SampleTemplateEndpoint)
	v.SetDefault("server.sample_data_endpoint", d.Server.SampleDataEndpoint)
	v.SetDefault("server.timeout", d.Server.Timeout)

	v.SetDefault("form.template_field", d.Form.TemplateField)
	v.SetDefault("form.data_field", d.Form.DataField)
	v.SetDefault("form.template_extension", d.Form.TemplateExtension)
	v.SetDefault("form.data_extensions", d.Form.DataExtensions)
	v.SetDefault("form.artifact_name", d.Form.ArtifactName)
	v.SetDefault("form.sample_template_name", d.Form.SampleTemplateName)
	v.SetDefault("form.sample_data_name", d.Form.SampleDataName)

	v.SetDefault("ui.reset_delay", d.UI.ResetDelay)
	v.SetDefault("ui.message_clear_delay", d.UI.MessageClearDelay)
	v.SetDefault("ui.placeholder", d.UI.Placeholder)
	v.SetDefault("ui.submit_label", d.UI.SubmitLabel)
	v.SetDefault("ui.busy_label", d.UI.BusyLabel)

	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("log.level", d.Log.Level)
}

// Load builds the effective configuration from v and validates it
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Server.URL = strings.TrimRight(cfg.Server.URL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the configuration is valid
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return ErrInvalidServerURL
	}
	if !strings.HasPrefix(c.Server.GenerateEndpoint, "/") {
		return ErrInvalidEndpoint
	}
	if !strings.HasPrefix(c.Server.SampleTemplateEndpoint, "/") || !strings.HasPrefix(c.Server.SampleDataEndpoint, "/") {
		return ErrInvalidSampleEndpoint
	}
	if c.Server.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Form.TemplateField == "" || c.Form.DataField == "" || c.Form.TemplateField == c.Form.DataField {
		return ErrInvalidFieldNames
	}
	if !strings.HasPrefix(c.Form.TemplateExtension, ".") {
		return ErrInvalidTemplateExt
	}
	if len(c.Form.DataExtensions) == 0 {
		return ErrInvalidDataExt
	}
	for _, ext := range c.Form.DataExtensions {
		if !strings.HasPrefix(ext, ".") {
			return ErrInvalidDataExt
		}
	}
	if c.Form.ArtifactName == "" {
		return ErrInvalidArtifactName
	}
	if c.UI.ResetDelay < 0 || c.UI.MessageClearDelay < 0 {
		return ErrInvalidDelay
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// GenerateURL returns the absolute URL of the generation endpoint
func (c *Config) GenerateURL() string {
	return c.Server.URL + c.Server.GenerateEndpoint
}

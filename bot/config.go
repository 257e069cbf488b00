package bot

import (
	"fmt"
	"os"
	"regexp"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "jeepfest-bot/core/config"
	"jeepfest-bot/core/database"
	"jeepfest-bot/registration"
)

// EventConfig carries the deployment-specific festival values substituted
// into user-facing texts.
type EventConfig struct {
	Title        string `yaml:"title" envconfig:"EVENT_TITLE"`
	Dates        string `yaml:"dates" envconfig:"EVENT_DATES"`
	LocationName string `yaml:"location_name"`
	LocationURL  string `yaml:"location_url"`
	FeeAmount    string `yaml:"fee_amount" envconfig:"FEE_AMOUNT"`
	CardNumber   string `yaml:"card_number" envconfig:"CARD_NUMBER"`
	Organizer    string `yaml:"organizer"`
	Timezone     string `yaml:"timezone" envconfig:"TIMEZONE"`
}

// FlowConfig selects the conversation variant: which fields are collected,
// which locales are offered and how strict phone validation is.
type FlowConfig struct {
	Fields  []string `yaml:"fields"`
	Locales []string `yaml:"locales"`
	// StrictPhonePattern, when set, must match the normalized phone number.
	StrictPhonePattern string `yaml:"strict_phone_pattern"`
}

// ParsedFields validates and converts the configured field names.
func (f FlowConfig) ParsedFields() ([]registration.Field, error) {
	return registration.ParseFields(f.Fields)
}

// StrictPhone compiles the optional strict phone pattern.
func (f FlowConfig) StrictPhone() (*regexp.Regexp, error) {
	if f.StrictPhonePattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(f.StrictPhonePattern)
	if err != nil {
		return nil, fmt.Errorf("flow.strict_phone_pattern: %w", err)
	}
	return re, nil
}

// Config aggregates core settings with the festival-specific sections.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database database.Config `yaml:"database"`
	Event    EventConfig     `yaml:"event"`
	Flow     FlowConfig      `yaml:"flow"`
}

// CoreConfig exposes the embedded core configuration for the generic runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// LoadConfig reads the YAML config, applies environment overrides and
// validates both core and festival sections.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if len(cfg.Telegram.AdminIDs) == 0 {
		return nil, fmt.Errorf("telegram.admin_ids is required")
	}
	if _, err := cfg.Flow.ParsedFields(); err != nil {
		return nil, fmt.Errorf("flow.fields: %w", err)
	}
	if _, err := cfg.Flow.StrictPhone(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

package lint

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the linter configuration, conventionally loaded from
// .reqlint.yaml next to the manifest.
type Config struct {
	// Disable lists check codes and rule ids to skip.
	Disable []string `yaml:"disable"`
	// Severity overrides the severity of a check code.
	Severity map[string]Severity `yaml:"severity"`
	// Rules holds user-defined checks evaluated per requirement.
	Rules []RuleConfig `yaml:"rules"`
}

type RuleConfig struct {
	ID       string   `yaml:"id"`
	Severity Severity `yaml:"severity"`
	// When is a boolean expression over the requirement; the rule
	// fires when it evaluates true.
	When    string `yaml:"when"`
	Message string `yaml:"message"`
}

// ConfigFile is the conventional config file name.
const ConfigFile = ".reqlint.yaml"

func ParseConfig(d []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(d, cfg); err != nil {
		return nil, fmt.Errorf("bad lint config: %w", err)
	}
	for i := range cfg.Rules {
		r := &cfg.Rules[i]
		if r.ID == "" {
			return nil, fmt.Errorf("bad lint config: rule %d has no id", i)
		}
		if r.When == "" {
			return nil, fmt.Errorf("bad lint config: rule %q has no when expression", r.ID)
		}
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(d)
}

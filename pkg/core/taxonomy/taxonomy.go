// Package taxonomy rewrites legacy account labels to the regulator's
// current chart of accounts. Statements filed before the cutoff year use an
// older naming scheme; the mapping dictionary and its fallback heuristics
// ship as an embedded YAML document so future taxonomy changes are a data
// edit, not a code change.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"smv_analyzer/pkg/core/normalize"
)

//go:embed taxonomy.yaml
var defaultYAML []byte

// FallbackRule rewrites a canonical label to Target when the label contains
// every keyword in AllOf. Rules are applied in declaration order after the
// exact dictionary lookup misses.
type FallbackRule struct {
	AllOf  []string `yaml:"all_of"`
	Target string   `yaml:"target"`
}

// Config is the full taxonomy document.
type Config struct {
	CutoffYear     int               `yaml:"cutoff_year"`
	LegacyAccounts map[string]string `yaml:"legacy_accounts"`
	FallbackRules  []FallbackRule    `yaml:"fallback_rules"`
	SectionHeaders []string          `yaml:"section_headers"`
}

// Parse decodes and validates a taxonomy document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("taxonomy: parse config: %w", err)
	}
	if cfg.CutoffYear == 0 {
		return nil, fmt.Errorf("taxonomy: config missing cutoff_year")
	}
	return &cfg, nil
}

// Load reads a taxonomy document from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read config: %w", err)
	}
	return Parse(data)
}

var defaultConfig = mustParse(defaultYAML)

func mustParse(data []byte) *Config {
	cfg, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Default returns the embedded taxonomy document.
func Default() *Config {
	return defaultConfig
}

// Mapper applies a taxonomy Config to raw account labels.
type Mapper struct {
	cfg     *Config
	headers map[string]bool
}

// NewMapper builds a Mapper; a nil cfg selects the embedded default.
func NewMapper(cfg *Config) *Mapper {
	if cfg == nil {
		cfg = Default()
	}
	headers := make(map[string]bool, len(cfg.SectionHeaders))
	for _, h := range cfg.SectionHeaders {
		headers[normalize.CanonicalizeName(h)] = true
	}
	return &Mapper{cfg: cfg, headers: headers}
}

// Map canonicalizes rawName and, for pre-cutoff years, rewrites it to the
// current taxonomy: exact dictionary hit first, then the ordered substring
// fallbacks. Unmatched names pass through canonicalized. Map never fails.
func (m *Mapper) Map(rawName string, year int) string {
	name := normalize.CanonicalizeName(rawName)
	if year >= m.cfg.CutoffYear {
		return name
	}
	if mapped, ok := m.cfg.LegacyAccounts[name]; ok {
		return mapped
	}
	for _, rule := range m.cfg.FallbackRules {
		if containsAll(name, rule.AllOf) {
			return rule.Target
		}
	}
	return name
}

// IsSectionHeader reports whether a canonical label is a section header
// carrying no figures of its own.
func (m *Mapper) IsSectionHeader(canonical string) bool {
	return m.headers[canonical]
}

func containsAll(name string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(name, kw) {
			return false
		}
	}
	return true
}

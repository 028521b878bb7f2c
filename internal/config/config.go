// internal/config/config.go
//
// This package owns todoist_export.yaml, the optional file next to the
// binary that whitelists or blacklists sections and projects. No file
// and no key both mean "no restriction": the tool must stay usable for
// people who never touch the config, so a file we cannot parse is
// downgraded to the defaults with a warning instead of failing the run.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"todoist-export/internal/filter"
)

// FileName is the config file looked up in the working directory.
const FileName = "todoist_export.yaml"

const templateYAML = `# todoist-export configuration
#
# List sections and projects to include or exclude. By default every
# section and project is exported.
#
# -- If include_sections is non-empty it becomes a whitelist: only the
#    listed sections are exported. Same rule for include_projects.
# -- Exclude trumps include. If a name is in both lists it is excluded.
# -- Tasks without a section live under "no section" (all lowercase);
#    exclude that name to drop them as a group.
# -- Names do not need quotes; spaces are fine. Matching ignores case
#    unless case_sensitive is set.
#
# Entries may be YAML lists or a single comma-separated string:
#   include_sections: [Active, Postponed]
#   exclude_sections: no section, Personal
version: 1

filter:
  include_sections: []
  include_projects: []
  exclude_sections: []
  exclude_projects: []
  case_sensitive: false
  drop_empty_projects: false

output:
  directory: .
`

// ErrTemplateExists reports that template generation would overwrite a
// config file the user already has.
var ErrTemplateExists = errors.New("config: file already exists")

// NameList accepts either a YAML sequence or a comma-separated scalar,
// so both spellings in the template comment work.
type NameList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *NameList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*l = splitNames(raw)
		return nil
	case yaml.SequenceNode:
		var raw []string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*l = trimNames(raw)
		return nil
	default:
		return fmt.Errorf("expected list or string, got yaml kind %d", value.Kind)
	}
}

// FilterConfig models the filter section of todoist_export.yaml.
type FilterConfig struct {
	IncludeSections   NameList `yaml:"include_sections"`
	IncludeProjects   NameList `yaml:"include_projects"`
	ExcludeSections   NameList `yaml:"exclude_sections"`
	ExcludeProjects   NameList `yaml:"exclude_projects"`
	CaseSensitive     bool     `yaml:"case_sensitive"`
	DropEmptyProjects bool     `yaml:"drop_empty_projects"`
}

// OutputConfig models the output section of todoist_export.yaml.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// Config models the whole file.
type Config struct {
	Version int          `yaml:"version"`
	Filter  FilterConfig `yaml:"filter"`
	Output  OutputConfig `yaml:"output"`
}

// Default returns the no-restriction configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Output:  OutputConfig{Directory: "."},
	}
}

// Load reads the config file at path. A missing file returns the
// defaults with no error. A file that fails to parse also returns the
// defaults, plus the parse error so the caller can log a warning; the
// run itself must not fail over a typo in an optional file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	parsed.normalize()
	return &parsed, nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if strings.TrimSpace(c.Output.Directory) == "" {
		c.Output.Directory = "."
	}
}

func (c *Config) normalize() {
	c.Filter.IncludeSections = trimNames(c.Filter.IncludeSections)
	c.Filter.IncludeProjects = trimNames(c.Filter.IncludeProjects)
	c.Filter.ExcludeSections = trimNames(c.Filter.ExcludeSections)
	c.Filter.ExcludeProjects = trimNames(c.Filter.ExcludeProjects)
	c.Output.Directory = filepath.Clean(strings.TrimSpace(c.Output.Directory))
}

// Ruleset converts the loaded filter keys into the engine's ruleset.
func (c *Config) Ruleset() filter.Ruleset {
	return filter.Ruleset{
		SectionAllow:      c.Filter.IncludeSections,
		SectionDeny:       c.Filter.ExcludeSections,
		ProjectAllow:      c.Filter.IncludeProjects,
		ProjectDeny:       c.Filter.ExcludeProjects,
		CaseSensitive:     c.Filter.CaseSensitive,
		DropEmptyProjects: c.Filter.DropEmptyProjects,
	}
}

// WriteTemplate writes the commented template to path. Without force
// an existing file is left alone and ErrTemplateExists is returned, so
// the caller can ask the user before clobbering their edits.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return ErrTemplateExists
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: stat %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(templateYAML), 0o644); err != nil {
		return fmt.Errorf("config: write template %s: %w", path, err)
	}
	return nil
}

func splitNames(raw string) []string {
	return trimNames(strings.Split(raw, ","))
}

func trimNames(names []string) []string {
	var out []string
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

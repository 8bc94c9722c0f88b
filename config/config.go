// Package config holds the user-supplied generation policy: what to
// block, what must be generated, which types live on the managed side,
// and which native types the user overrides by hand. The classifier
// treats a Config as a read-only oracle.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// SubclassSpec pairs a managed-side subclass with its native superclass.
type SubclassSpec struct {
	Subclass   string `yaml:"subclass"`
	Superclass string `yaml:"superclass"`
}

// HostFunction is a managed-side exported function declared in config.
type HostFunction struct {
	Name      string `yaml:"name"`
	Signature string `yaml:"signature"`
}

// ConcreteSpec pairs a native template instantiation with the name the
// managed side will use for it.
type ConcreteSpec struct {
	CppDefinition string `yaml:"cpp_definition"`
	HostName      string `yaml:"host_name"`
}

// OverrideSpec declares a native type the user implements by hand,
// superseding whatever the declaration tree produced for that name.
type OverrideSpec struct {
	CppDefinition string `yaml:"cpp_definition"`
	HostPath      string `yaml:"host_path"`
}

// Config is the complete generation policy.
type Config struct {
	// Blocklist names entities that must never enter the model. Plain
	// C++ spellings; entries containing glob metacharacters are matched
	// as patterns.
	Blocklist []string `yaml:"blocklist"`
	// Generate names entities that must appear in the final model.
	Generate []string `yaml:"generate"`
	// PODRequests names types the user asserts are plain-old-data.
	PODRequests []string `yaml:"pod"`
	// HostTypes are dotted managed-side type paths.
	HostTypes []string `yaml:"host_types"`
	// Subclasses, HostFunctions, Concretes and Overrides are merged
	// into the model ahead of (or after, for Overrides) the walk.
	Subclasses    []SubclassSpec `yaml:"subclasses"`
	HostFunctions []HostFunction `yaml:"host_functions"`
	Concretes     []ConcreteSpec `yaml:"concretes"`
	Overrides     []OverrideSpec `yaml:"overrides"`
	// ExcludeUtilities suppresses the fixed utility entries.
	ExcludeUtilities bool `yaml:"exclude_utilities"`
}

// New returns an empty Config.
func New() *Config {
	return &Config{}
}

// LoadFile loads a YAML policy file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects policies that cannot be acted on.
func (c *Config) Validate() error {
	for _, sc := range c.Subclasses {
		if sc.Subclass == "" || sc.Superclass == "" {
			return fmt.Errorf("subclass entries need both subclass and superclass names")
		}
	}
	for _, fn := range c.HostFunctions {
		if fn.Name == "" {
			return fmt.Errorf("host function entries need a name")
		}
	}
	for _, ov := range c.Overrides {
		if ov.CppDefinition == "" {
			return fmt.Errorf("override entries need a cpp_definition")
		}
	}
	seen := make(map[string]bool, len(c.Concretes))
	for _, cs := range c.Concretes {
		if cs.HostName == "" {
			return fmt.Errorf("concrete entry for %q needs a host_name", cs.CppDefinition)
		}
		if seen[cs.HostName] {
			return fmt.Errorf("duplicate concrete host_name %q", cs.HostName)
		}
		seen[cs.HostName] = true
	}
	return nil
}

// IsOnBlocklist reports whether the plain C++ spelling is blocked.
func (c *Config) IsOnBlocklist(cppName string) bool {
	for _, b := range c.Blocklist {
		if b == cppName {
			return true
		}
		if strings.ContainsAny(b, "*?[{") {
			if ok, err := doublestar.Match(b, cppName); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// MustGenerateList returns the names the user demanded be generated.
func (c *Config) MustGenerateList() []string {
	return c.Generate
}

// IsPODRequest reports whether the plain C++ spelling was requested as
// plain-old-data.
func (c *Config) IsPODRequest(cppName string) bool {
	for _, p := range c.PODRequests {
		if p == cppName {
			return true
		}
	}
	return false
}

// IsHostType reports whether ident names a managed-side type. Host type
// paths are dotted; only the final segment is compared, and only for
// declarations in the root namespace.
func (c *Config) IsHostType(ident string) bool {
	for _, p := range c.HostTypes {
		if finalSegment(p) == ident {
			return true
		}
	}
	return false
}

// UniqueHostTypes returns the host type paths de-duplicated by
// identity, first occurrence order preserved.
func (c *Config) UniqueHostTypes() []string {
	seen := make(map[string]bool, len(c.HostTypes))
	out := make([]string, 0, len(c.HostTypes))
	for _, p := range c.HostTypes {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func finalSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOnBlocklist(t *testing.T) {
	cfg := &Config{Blocklist: []string{"Widget", "detail::*", "impl_*"}}
	assert.True(t, cfg.IsOnBlocklist("Widget"))
	assert.False(t, cfg.IsOnBlocklist("widget"))
	assert.True(t, cfg.IsOnBlocklist("detail::Helper"), "glob entries match patterns")
	assert.True(t, cfg.IsOnBlocklist("impl_secret"))
	assert.False(t, cfg.IsOnBlocklist("Gadget"))
}

func TestIsHostType(t *testing.T) {
	cfg := &Config{HostTypes: []string{"myapp.bridge.Token", "Plain"}}
	assert.True(t, cfg.IsHostType("Token"))
	assert.True(t, cfg.IsHostType("Plain"))
	assert.False(t, cfg.IsHostType("bridge"))
	assert.False(t, cfg.IsHostType("Other"))
}

func TestUniqueHostTypes(t *testing.T) {
	cfg := &Config{HostTypes: []string{"a.B", "c.D", "a.B"}}
	assert.Equal(t, []string{"a.B", "c.D"}, cfg.UniqueHostTypes())
}

func TestIsPODRequest(t *testing.T) {
	cfg := &Config{PODRequests: []string{"geo::Point"}}
	assert.True(t, cfg.IsPODRequest("geo::Point"))
	assert.False(t, cfg.IsPODRequest("Point"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
blocklist: [Secret]
generate: [Widget]
pod: [Point]
host_types: [myapp.Token]
subclasses:
  - subclass: FancyWidget
    superclass: Widget
host_functions:
  - name: on_event
    signature: "on_event(w: Widget)"
concretes:
  - cpp_definition: "std::vector<Widget>"
    host_name: WidgetList
overrides:
  - cpp_definition: "geo::Point"
    host_path: myapp.geo.Point
exclude_utilities: true
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsOnBlocklist("Secret"))
	assert.Equal(t, []string{"Widget"}, cfg.MustGenerateList())
	assert.True(t, cfg.ExcludeUtilities)
	require.Len(t, cfg.Subclasses, 1)
	assert.Equal(t, "Widget", cfg.Subclasses[0].Superclass)
	require.Len(t, cfg.Overrides, 1)
	assert.Equal(t, "myapp.geo.Point", cfg.Overrides[0].HostPath)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"empty", Config{}, true},
		{"subclass missing superclass", Config{Subclasses: []SubclassSpec{{Subclass: "A"}}}, false},
		{"host function unnamed", Config{HostFunctions: []HostFunction{{Signature: "f()"}}}, false},
		{"override without definition", Config{Overrides: []OverrideSpec{{HostPath: "x.Y"}}}, false},
		{"concrete without host name", Config{Concretes: []ConcreteSpec{{CppDefinition: "std::vector<int>"}}}, false},
		{"duplicate concrete name", Config{Concretes: []ConcreteSpec{
			{CppDefinition: "std::vector<int>", HostName: "IntList"},
			{CppDefinition: "std::vector<long>", HostName: "IntList"},
		}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

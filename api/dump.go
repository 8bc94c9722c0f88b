package api

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// dumpEntry is the flattened YAML form of one model entry. Only the
// fields relevant to the entry's kind are populated.
type dumpEntry struct {
	Kind       string   `yaml:"kind"`
	Name       string   `yaml:"name"`
	CppName    string   `yaml:"cpp_name,omitempty"`
	Fields     []string `yaml:"fields,omitempty"`
	Variants   []string `yaml:"variants,omitempty"`
	RValueRefs bool     `yaml:"rvalue_reference_fields,omitempty"`
	Target     string   `yaml:"target,omitempty"`
	OldName    string   `yaml:"old_name,omitempty"`
	Type       string   `yaml:"type,omitempty"`
	Value      string   `yaml:"value,omitempty"`
	Path       string   `yaml:"path,omitempty"`
	Definition string   `yaml:"definition,omitempty"`
	POD        bool     `yaml:"pod,omitempty"`
	Superclass string   `yaml:"superclass,omitempty"`
	Signature  string   `yaml:"signature,omitempty"`
	Receiver   string   `yaml:"receiver,omitempty"`
	Static     bool     `yaml:"static,omitempty"`
	Deps       []string `yaml:"deps,omitempty"`
	Error      string   `yaml:"error,omitempty"`
}

// Dump writes the model as YAML in insertion order.
func (m *Model) Dump(w io.Writer) error {
	out := make([]dumpEntry, 0, len(m.entries))
	for _, e := range m.entries {
		d := dumpEntry{Name: e.EntryName().QName.String(), CppName: e.EntryName().CppName}
		switch e := e.(type) {
		case *StructEntry:
			d.Kind = "struct"
			d.RValueRefs = e.HasRValueReferenceFields
			for _, f := range e.Fields {
				d.Fields = append(d.Fields, f.Name+": "+f.Type.Name)
			}
		case *EnumEntry:
			d.Kind = "enum"
			for _, v := range e.Variants {
				d.Variants = append(d.Variants, fmt.Sprintf("%s = %d", v.Name, v.Value))
			}
		case *ForwardDeclarationEntry:
			d.Kind = "forward_declaration"
			if e.Err != nil {
				d.Error = e.Err.Detail
			}
		case *TypedefEntry:
			d.Kind = "typedef"
			d.Target = e.Target
			if e.OldName != nil {
				d.OldName = e.OldName.String()
			}
		case *ConstEntry:
			d.Kind = "const"
			d.Type = e.TypeName
			d.Value = e.Value
		case *HostTypeEntry:
			d.Kind = "host_type"
			d.Path = e.Path
		case *ConcreteTypeEntry:
			d.Kind = "concrete_type"
			d.Definition = e.CppDefinition
		case *NativeOverrideEntry:
			d.Kind = "native_override"
			d.Path = e.HostPath
			d.POD = e.POD
		case *SubclassEntry:
			d.Kind = "subclass"
			d.Superclass = e.Superclass.String()
		case *FunctionEntry:
			d.Kind = "function"
			d.Signature = e.Signature
			d.Receiver = e.Receiver
			d.Static = e.Static
			d.Deps = e.Deps
		default:
			d.Kind = "unknown"
		}
		out = append(out, d)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	return enc.Close()
}

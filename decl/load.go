package decl

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a declaration tree from the upstream parser's YAML dump.
// The dump is a sequence of items, each tagged with a "kind" field.
func Load(r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading declaration tree: %w", err)
	}
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("parsing declaration tree: %w", err)
	}
	return decodeItems(nodes)
}

// LoadFile reads a declaration tree dump from a file.
func LoadFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	items, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

func decodeItems(nodes []yaml.Node) ([]Item, error) {
	items := make([]Item, 0, len(nodes))
	for i := range nodes {
		item, err := decodeItem(&nodes[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

type yamlTypeRef struct {
	Name      string `yaml:"name"`
	RValueRef bool   `yaml:"rvalue_ref"`
}

func (r yamlTypeRef) typeRef() TypeRef {
	return TypeRef{Name: r.Name, RValueReference: r.RValueRef}
}

type yamlField struct {
	Name string      `yaml:"name"`
	Type yamlTypeRef `yaml:"type"`
}

type yamlParam struct {
	Name string      `yaml:"name"`
	Type yamlTypeRef `yaml:"type"`
}

type yamlForeignItem struct {
	Name     string      `yaml:"name"`
	Receiver string      `yaml:"receiver"`
	Params   []yamlParam `yaml:"params"`
	Returns  yamlTypeRef `yaml:"returns"`
}

type yamlEnumerator struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

func decodeItem(node *yaml.Node) (Item, error) {
	var head struct {
		Kind string `yaml:"kind"`
	}
	if err := node.Decode(&head); err != nil {
		return nil, fmt.Errorf("line %d: reading item kind: %w", node.Line, err)
	}
	switch head.Kind {
	case "scope":
		var raw struct {
			Name  string      `yaml:"name"`
			Items []yaml.Node `yaml:"items"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: scope: %w", node.Line, err)
		}
		inner, err := decodeItems(raw.Items)
		if err != nil {
			return nil, err
		}
		return &Scope{Name: raw.Name, Items: inner}, nil
	case "struct":
		var raw struct {
			Name      string      `yaml:"name"`
			CppName   string      `yaml:"cpp_name"`
			Fields    []yamlField `yaml:"fields"`
			FatalAttr string      `yaml:"fatal_attr"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: struct: %w", node.Line, err)
		}
		s := &Struct{Name: raw.Name, CppName: raw.CppName, FatalAttrReason: raw.FatalAttr}
		for _, f := range raw.Fields {
			s.Fields = append(s.Fields, Field{Name: f.Name, Type: f.Type.typeRef()})
		}
		return s, nil
	case "enum":
		var raw struct {
			Name     string           `yaml:"name"`
			CppName  string           `yaml:"cpp_name"`
			Variants []yamlEnumerator `yaml:"variants"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: enum: %w", node.Line, err)
		}
		e := &Enum{Name: raw.Name, CppName: raw.CppName}
		for _, v := range raw.Variants {
			e.Variants = append(e.Variants, Enumerator{Name: v.Name, Value: v.Value})
		}
		return e, nil
	case "foreign":
		var raw struct {
			Items []yamlForeignItem `yaml:"items"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: foreign block: %w", node.Line, err)
		}
		fb := &ForeignBlock{}
		for _, fi := range raw.Items {
			item := ForeignItem{
				Name:       fi.Name,
				Receiver:   fi.Receiver,
				ReturnType: fi.Returns.typeRef(),
			}
			for _, p := range fi.Params {
				item.Params = append(item.Params, Param{Name: p.Name, Type: p.Type.typeRef()})
			}
			fb.Items = append(fb.Items, item)
		}
		return fb, nil
	case "impl":
		var raw struct {
			Type    string   `yaml:"type"`
			Methods []string `yaml:"methods"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: impl block: %w", node.Line, err)
		}
		return &ImplBlock{TypeName: raw.Type, Methods: raw.Methods}, nil
	case "import":
		var raw struct {
			Segments []string `yaml:"segments"`
			Rename   string   `yaml:"rename"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: import: %w", node.Line, err)
		}
		return &Import{Segments: raw.Segments, Rename: raw.Rename}, nil
	case "const":
		var raw struct {
			Name  string `yaml:"name"`
			Type  string `yaml:"type"`
			Value string `yaml:"value"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: const: %w", node.Line, err)
		}
		return &Const{Name: raw.Name, TypeName: raw.Type, Value: raw.Value}, nil
	case "alias":
		var raw struct {
			Name   string `yaml:"name"`
			Target string `yaml:"target"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: alias: %w", node.Line, err)
		}
		return &TypeAlias{Name: raw.Name, Target: raw.Target}, nil
	default:
		var raw struct {
			Name string `yaml:"name"`
		}
		_ = node.Decode(&raw)
		return &Unknown{Kind: head.Kind, Name: raw.Name}, nil
	}
}

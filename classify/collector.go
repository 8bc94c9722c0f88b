package classify

import (
	"strings"

	"github.com/hxforge/bridgen/api"
	"github.com/hxforge/bridgen/decl"
	"github.com/hxforge/bridgen/scan"
	"github.com/hxforge/bridgen/types"
)

// ModCollector accumulates the importable functions and methods of one
// scope. The walker owns exactly one collector per scope: it feeds the
// scope's foreign blocks and impl blocks in, then calls Finished once
// when the scope's declarations are exhausted.
type ModCollector interface {
	// ConvertForeignItems ingests a batch of importable native
	// function/method declarations.
	ConvertForeignItems(items []decl.ForeignItem)
	// ConvertImplItems ingests an implementation block, used only to
	// tell static methods apart from free functions.
	ConvertImplItems(block *decl.ImplBlock)
	// Finished appends the accumulated function entries to the model.
	Finished(model *api.Model)
}

// FnCollector is the built-in ModCollector.
type FnCollector struct {
	ns      types.Namespace
	items   []decl.ForeignItem
	methods map[string]string // method name -> impl type
}

// NewFnCollector creates a collector for one scope.
func NewFnCollector(ns types.Namespace) *FnCollector {
	return &FnCollector{ns: ns, methods: make(map[string]string)}
}

func (c *FnCollector) ConvertForeignItems(items []decl.ForeignItem) {
	c.items = append(c.items, items...)
}

func (c *FnCollector) ConvertImplItems(block *decl.ImplBlock) {
	for _, m := range block.Methods {
		c.methods[m] = block.TypeName
	}
}

// Finished emits one FunctionEntry per collected item. Items whose name
// is not legal for the interop surface are dropped. A receiver-less
// item that an impl block claims becomes a static method of that type.
func (c *FnCollector) Finished(model *api.Model) {
	for _, item := range c.items {
		if types.ValidateIdent(item.Name) != nil {
			continue
		}
		recv := item.Receiver
		static := false
		if recv == "" {
			if t, ok := c.methods[item.Name]; ok {
				recv = t
				static = true
			}
		}
		name := api.NewName(c.ns, item.Name)
		if recv != "" {
			// Methods are keyed under a flattened identifier so two
			// types' methods with the same name cannot collide.
			name = api.Name{
				QName:   types.NewQualifiedName(c.ns, recv+"_"+item.Name),
				CppName: recv + types.Separator + item.Name,
			}
		}
		model.Push(&api.FunctionEntry{
			Name:      name,
			Signature: formatSignature(item),
			Receiver:  recv,
			Static:    static,
			Deps:      itemDeps(item),
		})
	}
	c.items = nil
}

func formatSignature(item decl.ForeignItem) string {
	var b strings.Builder
	b.WriteString(item.Name)
	b.WriteByte('(')
	for i, p := range item.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type.Name)
		if p.Name != "" {
			b.WriteByte(' ')
			b.WriteString(p.Name)
		}
	}
	b.WriteByte(')')
	if item.ReturnType.Name != "" {
		b.WriteString(" -> ")
		b.WriteString(item.ReturnType.Name)
	}
	return b.String()
}

// itemDeps collects the type names a function mentions, in signature
// order, de-duplicated. Builtins, standard types, and illegal spellings
// are kept out so downstream ordering logic never chokes on them.
func itemDeps(item decl.ForeignItem) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		base := baseIdent(name)
		if scan.IsBuiltin(base) || knownTypeNames[base] || types.ValidateIdent(base) != nil {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	if item.Receiver != "" {
		add(item.Receiver)
	}
	for _, p := range item.Params {
		add(p.Type.Name)
	}
	add(item.ReturnType.Name)
	return out
}

func baseIdent(typeName string) string {
	if i := strings.LastIndex(typeName, types.Separator); i >= 0 {
		return typeName[i+len(types.Separator):]
	}
	return typeName
}

// Package api defines the normalized API model the classifier produces
// for downstream bridge generation: one tagged entry per exposable
// entity, keyed by qualified name, in insertion order.
package api

import (
	"github.com/hxforge/bridgen/decl"
	"github.com/hxforge/bridgen/types"
)

// Name identifies an entry. CppName is set only when the original C++
// spelling differs from the identifier upstream handed us (nested types
// are flattened into single identifiers by the upstream parser).
type Name struct {
	QName   types.QualifiedName
	CppName string
}

// NewName builds a Name with no separate C++ spelling.
func NewName(ns types.Namespace, id string) Name {
	return Name{QName: types.NewQualifiedName(ns, id)}
}

// NameInRoot builds a Name in the root namespace.
func NameInRoot(id string) Name {
	return Name{QName: types.QualifiedNameInRoot(id)}
}

// PlainName returns the C++ spelling used for blocklist and
// must-generate matching: the original spelling when known, otherwise
// the qualified name's spelling.
func (n Name) PlainName() string {
	if n.CppName != "" {
		if n.QName.Namespace().IsEmpty() {
			return n.CppName
		}
		return n.QName.Namespace().String() + types.Separator + n.CppName
	}
	return n.QName.String()
}

// IsNested reports whether the entry's original spelling names a nested
// type.
func (n Name) IsNested() bool {
	return types.IsNested(n.CppName)
}

// Entry is the closed variant set of API model entries. Every variant
// carries a Name; the payload is kind-specific.
type Entry interface {
	entry()
	EntryName() Name
}

// StructEntry is a record type with a known field layout.
type StructEntry struct {
	Name                     Name
	Fields                   []decl.Field
	HasRValueReferenceFields bool
}

func (e *StructEntry) entry()          {}
func (e *StructEntry) EntryName() Name { return e.Name }

// EnumEntry is an enumeration.
type EnumEntry struct {
	Name     Name
	Variants []decl.Enumerator
}

func (e *EnumEntry) entry()          {}
func (e *EnumEntry) EntryName() Name { return e.Name }

// DeferredError is an error captured during classification and attached
// to an entry so downstream stages can report a precise location.
type DeferredError struct {
	Ident  string
	Detail string
}

// ForwardDeclarationEntry is a type whose full layout is unknown or
// unrepresentable. It never carries fields; it is created exactly when
// a struct body cannot be classified as a real struct.
type ForwardDeclarationEntry struct {
	Name Name
	Err  *DeferredError
}

func (e *ForwardDeclarationEntry) entry()          {}
func (e *ForwardDeclarationEntry) EntryName() Name { return e.Name }

// TypedefKind distinguishes the two aliasing forms.
type TypedefKind int

const (
	// TypedefUse is a renamed import: the alias points at an existing
	// qualified name elsewhere in the tree.
	TypedefUse TypedefKind = iota
	// TypedefAlias is a direct type alias with no original-name linkage.
	TypedefAlias
)

// TypedefEntry is an alias declaration.
type TypedefEntry struct {
	Name    Name
	Kind    TypedefKind
	Target  string
	OldName *types.QualifiedName // set for TypedefUse only
}

func (e *TypedefEntry) entry()          {}
func (e *TypedefEntry) EntryName() Name { return e.Name }

// ConstEntry is a constant with a representable type.
type ConstEntry struct {
	Name     Name
	TypeName string
	Value    string
}

func (e *ConstEntry) entry()          {}
func (e *ConstEntry) EntryName() Name { return e.Name }

// HostTypeEntry is a user-declared type that lives purely on the
// managed side of the bridge.
type HostTypeEntry struct {
	Name Name
	Path string
}

func (e *HostTypeEntry) entry()          {}
func (e *HostTypeEntry) EntryName() Name { return e.Name }

// ConcreteTypeEntry pairs a native template instantiation with a
// managed-side name. The host-side definition is filled in by a later
// stage.
type ConcreteTypeEntry struct {
	Name          Name
	CppDefinition string
}

func (e *ConcreteTypeEntry) entry()          {}
func (e *ConcreteTypeEntry) EntryName() Name { return e.Name }

// NativeOverrideEntry is a user-declared native type that supersedes
// whatever the walk produced for the same qualified name.
type NativeOverrideEntry struct {
	Name     Name
	HostPath string
	POD      bool
}

func (e *NativeOverrideEntry) entry()          {}
func (e *NativeOverrideEntry) EntryName() Name { return e.Name }

// SubclassEntry records a configured subclass/superclass pair.
type SubclassEntry struct {
	Name       Name
	Superclass types.QualifiedName
}

func (e *SubclassEntry) entry()          {}
func (e *SubclassEntry) EntryName() Name { return e.Name }

// FunctionEntry is an importable native function or method, or a
// managed-side exported function declared in configuration.
type FunctionEntry struct {
	Name      Name
	Signature string
	Receiver  string // type name for methods, "" for free functions
	Static    bool
	Deps      []string
}

func (e *FunctionEntry) entry()          {}
func (e *FunctionEntry) EntryName() Name { return e.Name }

// Package decl defines the declaration tree handed to the classifier by
// the upstream native-header parser. The tree is read-only input: the
// classifier never mutates it.
package decl

// Item is the interface for all declaration tree nodes.
type Item interface {
	item()
	// Ident returns the declared identifier, or "" for nodes that do
	// not introduce a name (foreign blocks, impl blocks, imports).
	Ident() string
}

// Scope is a nested namespace containing further declarations.
// The upstream parser wraps the whole tree in a single scope named
// RootScopeName.
type Scope struct {
	Name  string
	Items []Item
}

func (s *Scope) item()         {}
func (s *Scope) Ident() string { return s.Name }

// RootScopeName is the sentinel scope the upstream parser wraps every
// translation unit in when namespace support is enabled.
const RootScopeName = "root"

// TypeRef is a reference to a type as spelled in a field or parameter.
type TypeRef struct {
	Name            string
	RValueReference bool
}

// Field is a single struct field.
type Field struct {
	Name string
	Type TypeRef
}

// Struct is a record type declaration. Fatal attributes found on the
// type upstream (unsupported ABI, packed layout and the like) arrive as
// a pending error carried alongside the declaration.
type Struct struct {
	Name            string
	CppName         string // original C++ spelling, if it differs
	Fields          []Field
	FatalAttrReason string // non-empty if upstream flagged a fatal attribute
}

func (s *Struct) item()         {}
func (s *Struct) Ident() string { return s.Name }

// Enumerator is one enum constant.
type Enumerator struct {
	Name  string
	Value int64
}

// Enum is an enumeration declaration.
type Enum struct {
	Name     string
	CppName  string // original C++ spelling, if it differs
	Variants []Enumerator
}

func (e *Enum) item()         {}
func (e *Enum) Ident() string { return e.Name }

// Param is one parameter of a foreign function.
type Param struct {
	Name string
	Type TypeRef
}

// ForeignItem is one importable native function or method.
type ForeignItem struct {
	Name       string
	Receiver   string // type name for methods, "" for free functions
	Params     []Param
	ReturnType TypeRef
}

// ForeignBlock carries the importable native functions and methods of
// the enclosing scope. It never materializes a model entry directly;
// the foreign-function collector turns its contents into entries when
// the scope finishes.
type ForeignBlock struct {
	Items []ForeignItem
}

func (f *ForeignBlock) item()         {}
func (f *ForeignBlock) Ident() string { return "" }

// ImplBlock records which method names upstream attached to a type.
// It exists only so the collector can tell static methods apart from
// free functions.
type ImplBlock struct {
	TypeName string
	Methods  []string
}

func (i *ImplBlock) item()         {}
func (i *ImplBlock) Ident() string { return "" }

// Import is an alias chain. A plain chain re-exports the root sentinel
// and is ignored; a chain with Rename set aliases the chain's final
// segment to a new name in the current scope. Rename chains are
// guaranteed by upstream to start with the two-segment self/super
// current-scope prefix.
type Import struct {
	Segments []string
	Rename   string
}

func (i *Import) item()         {}
func (i *Import) Ident() string { return i.Rename }

// Const is a constant declaration.
type Const struct {
	Name     string
	TypeName string
	Value    string
}

func (c *Const) item()         {}
func (c *Const) Ident() string { return c.Name }

// TypeAlias is a direct type alias. Upstream is known to emit duplicate
// aliases with identical names; consumers tolerate them.
type TypeAlias struct {
	Name   string
	Target string
}

func (t *TypeAlias) item()         {}
func (t *TypeAlias) Ident() string { return t.Name }

// Unknown is any declaration kind the upstream parser emitted but this
// classifier does not recognize.
type Unknown struct {
	Kind string
	Name string
}

func (u *Unknown) item()         {}
func (u *Unknown) Ident() string { return u.Name }

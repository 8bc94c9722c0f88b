package classify

import (
	"fmt"
	"strings"

	"github.com/hxforge/bridgen/api"
	"github.com/hxforge/bridgen/config"
	"github.com/hxforge/bridgen/decl"
	"github.com/hxforge/bridgen/scan"
	"github.com/hxforge/bridgen/types"
)

const (
	// vtableSuffix marks synthetic structs the upstream parser emits
	// for compiler vtables.
	vtableSuffix = "__vtable"
	// forwardDeclField is the marker field upstream gives a struct
	// whose real fields are unknown.
	forwardDeclField = "_unused"
	// placeholderField is the marker field upstream gives templated
	// placeholder structs instead of forwardDeclField.
	placeholderField = "_address"
	// char16Alias is a compat alias upstream synthesizes for char16_t;
	// renaming to it is meaningless for the generated surface.
	char16Alias = "native_char16_t"
)

// Walker classifies a declaration tree into an API model. Configure the
// exported fields before calling Run; the zero value plus a Config is
// usable.
type Walker struct {
	// Config is the generation policy. Required.
	Config *config.Config
	// Source is the original managed-side source text, scanned for the
	// dependency sets of config-declared exported functions.
	Source string
	// NewCollector builds the per-scope foreign-function collector.
	// Nil selects the built-in FnCollector.
	NewCollector func(types.Namespace) ModCollector
	// Reporter receives per-declaration failures. Nil selects a fresh
	// DiagnosticLog, retrievable via Diagnostics afterwards.
	Reporter Reporter

	model *api.Model
	log   *DiagnosticLog
}

// Run classifies the top-level declaration list into a model. The walk
// is depth-first and order-preserving; per-declaration failures go to
// the Reporter and do not stop the walk. Only a missing must-generate
// directive fails the whole pass.
func (w *Walker) Run(items []decl.Item) (*api.Model, error) {
	if w.Config == nil {
		return nil, fmt.Errorf("classify: no config")
	}
	if w.Reporter == nil {
		w.log = &DiagnosticLog{}
		w.Reporter = w.log
	}
	w.model = api.NewModel()

	rootItems := findRootItems(items)
	if !w.Config.ExcludeUtilities {
		generateUtilities(w.model)
	}
	w.addEntriesFromConfig()
	if err := w.walkScope(rootItems, types.NewNamespace()); err != nil {
		return nil, err
	}
	w.replaceOverrides()
	if err := w.confirmGenerateDirectives(); err != nil {
		return nil, err
	}
	model := w.model
	w.model = nil
	return model, nil
}

// Diagnostics returns the per-declaration failures recorded by the
// default reporter. Empty when a custom Reporter was supplied.
func (w *Walker) Diagnostics() []Diagnostic {
	if w.log == nil {
		return nil
	}
	return w.log.Diagnostics()
}

// findRootItems locates the single root-scope wrapper in the top-level
// list. Upstream always wraps the tree in a scope named "root" when
// namespace support is on; its absence means an empty tree.
func findRootItems(items []decl.Item) []decl.Item {
	for _, item := range items {
		if sc, ok := item.(*decl.Scope); ok && sc.Name == decl.RootScopeName {
			return sc.Items
		}
	}
	return nil
}

// addEntriesFromConfig merges the entities that come purely from
// configuration: subclasses, managed-side exported functions, host
// types, and concrete template instantiations.
func (w *Walker) addEntriesFromConfig() {
	for _, sc := range w.Config.Subclasses {
		w.model.Push(&api.SubclassEntry{
			Name:       api.NameInRoot(sc.Subclass),
			Superclass: types.ParseQualifiedName(sc.Superclass),
		})
	}
	for _, fn := range w.Config.HostFunctions {
		w.model.Push(&api.FunctionEntry{
			Name:      api.NameInRoot(fn.Name),
			Signature: fn.Signature,
			Deps:      scan.Deps(fn.Signature, w.Source),
		})
	}
	for _, path := range w.Config.UniqueHostTypes() {
		id := path
		if i := strings.LastIndex(path, "."); i >= 0 {
			id = path[i+1:]
		}
		w.model.Push(&api.HostTypeEntry{Name: api.NameInRoot(id), Path: path})
	}
	for _, cs := range w.Config.Concretes {
		w.model.Push(&api.ConcreteTypeEntry{
			Name:          api.NameInRoot(cs.HostName),
			CppDefinition: cs.CppDefinition,
		})
	}
}

// walkScope processes one scope's declarations in order. The scope owns
// a fresh collector for its foreign blocks, finalized exactly once when
// the declarations are exhausted.
func (w *Walker) walkScope(items []decl.Item, ns types.Namespace) error {
	var coll ModCollector
	if w.NewCollector != nil {
		coll = w.NewCollector(ns)
	} else {
		coll = NewFnCollector(ns)
	}
	for _, item := range items {
		err := reportAnyError(w.Reporter, w.model, func() error {
			return w.classifyItem(item, coll, ns)
		})
		if err != nil {
			return err
		}
	}
	coll.Finished(w.model)
	return nil
}

func (w *Walker) classifyItem(item decl.Item, coll ModCollector, ns types.Namespace) error {
	switch item := item.(type) {
	case *decl.Scope:
		return w.walkScope(item.Items, ns.Push(item.Name))
	case *decl.Struct:
		return w.classifyStruct(item, ns)
	case *decl.Enum:
		name, err := apiNameQualified(ns, item.Name, item.CppName)
		if err != nil {
			return err
		}
		entry := &api.EnumEntry{Name: name, Variants: item.Variants}
		if !w.Config.IsOnBlocklist(name.PlainName()) {
			w.model.Push(entry)
		}
		return nil
	case *decl.ForeignBlock:
		coll.ConvertForeignItems(item.Items)
		return nil
	case *decl.ImplBlock:
		// Impl blocks never materialize entries. The collector records
		// them so it can tell static methods apart from free functions
		// when the scope's foreign items are finalized.
		coll.ConvertImplItems(item)
		return nil
	case *decl.Import:
		return w.classifyImport(item, ns)
	case *decl.Const:
		// Upstream generates constants for anonymous nested enums whose
		// type names the model cannot express. Those are dropped
		// silently rather than reported.
		if types.ValidateIdent(baseIdent(item.TypeName)) != nil {
			return nil
		}
		w.model.Push(&api.ConstEntry{
			Name:     api.NewName(ns, item.Name),
			TypeName: item.TypeName,
			Value:    item.Value,
		})
		return nil
	case *decl.TypeAlias:
		// Upstream is known to emit duplicate aliases with identical
		// names; Push tolerates them, last write wins.
		w.model.Push(&api.TypedefEntry{
			Name:   api.NewName(ns, item.Name),
			Kind:   api.TypedefAlias,
			Target: item.Target,
		})
		return nil
	default:
		return convertErr(ErrUnexpectedItem, itemKind(item), ns, item.Ident())
	}
}

func (w *Walker) classifyStruct(s *decl.Struct, ns types.Namespace) error {
	if strings.HasSuffix(s.Name, vtableSuffix) {
		return nil
	}
	name, err := apiNameQualified(ns, s.Name, s.CppName)
	if err != nil {
		return err
	}
	if isSubstituteType(name.QName) {
		return nil
	}
	var pending *ConvertError
	if s.FatalAttrReason != "" {
		pending = convertErr(ErrFatalAttr, s.FatalAttrReason, ns, s.Name)
	}
	var entry api.Entry
	switch {
	case (ns.IsEmpty() && w.Config.IsHostType(s.Name)) || isKnownType(name.QName):
		return nil
	case spotField(s.Fields, forwardDeclField) ||
		(spotField(s.Fields, placeholderField) && pending != nil):
		// Forward declarations are recorded specially because the
		// bridge cannot store them by value. Templated placeholders
		// carry the _address marker instead of _unused, so they only
		// count as forward declarations when a fatal-attr error is
		// already pending for them.
		if pending == nil && name.IsNested() {
			pending = convertErr(ErrForwardDeclaredNestedType, "", ns, s.Name)
		}
		entry = &api.ForwardDeclarationEntry{Name: name, Err: deferred(pending)}
	default:
		entry = &api.StructEntry{
			Name:                     name,
			Fields:                   s.Fields,
			HasRValueReferenceFields: spotRValueReferenceFields(s.Fields),
		}
	}
	if !w.Config.IsOnBlocklist(name.PlainName()) {
		w.model.Push(entry)
	}
	return nil
}

// classifyImport handles alias chains. Plain chains re-export scopes
// and never produce entries; rename chains become renamed-import
// typedefs unless they would alias a name to itself.
func (w *Walker) classifyImport(imp *decl.Import, ns types.Namespace) error {
	segs := imp.Segments
	if imp.Rename == "" {
		// Plain chains terminate without effect; equivalent statements
		// are regenerated downstream. The chain ending at the root
		// sentinel is the common case.
		return nil
	}
	if imp.Rename == char16Alias {
		return nil
	}
	if len(segs) < 3 || segs[0] != "self" || segs[1] != "super" {
		return convertErr(ErrUnexpectedItem,
			"rename chain missing the self::super scope prefix", ns, imp.Rename)
	}
	// Drop the self::super prefix: the output prefers paths relative to
	// the enclosing scope.
	oldSegs := segs[2:]
	oldName := types.NewQualifiedName(
		types.NamespaceFrom(oldSegs[:len(oldSegs)-1]...),
		oldSegs[len(oldSegs)-1],
	)
	newName := types.NewQualifiedName(ns, imp.Rename)
	if newName.Equal(oldName) {
		return convertErr(ErrInfinitelyRecursiveTypedef, newName.String(), ns, imp.Rename)
	}
	w.model.Push(&api.TypedefEntry{
		Name:    api.Name{QName: newName},
		Kind:    api.TypedefUse,
		Target:  oldName.String(),
		OldName: &oldName,
	})
	return nil
}

// replaceOverrides runs after the walk because the struct or enum the
// walk produced may need to be discarded in favor of the user's
// hand-written native type.
func (w *Walker) replaceOverrides() {
	if len(w.Config.Overrides) == 0 {
		return
	}
	replaced := make(map[string]bool, len(w.Config.Overrides))
	for _, ov := range w.Config.Overrides {
		replaced[types.ParseQualifiedName(ov.CppDefinition).String()] = true
	}
	w.model.Retain(func(e api.Entry) bool {
		return !replaced[e.EntryName().QName.String()]
	})
	for _, ov := range w.Config.Overrides {
		qn := types.ParseQualifiedName(ov.CppDefinition)
		w.model.Push(&api.NativeOverrideEntry{
			Name:     api.Name{QName: qn},
			HostPath: ov.HostPath,
			POD:      w.Config.IsPODRequest(qn.String()),
		})
	}
}

// confirmGenerateDirectives is the terminal validation gate: every name
// the user demanded must be present in the final model.
func (w *Walker) confirmGenerateDirectives() error {
	names := w.model.PlainNames()
	for _, directive := range w.Config.MustGenerateList() {
		if !names[directive] {
			return &ConvertError{Kind: ErrDidNotGenerateAnything, Detail: directive}
		}
	}
	return nil
}

// apiName builds an entry name, attaching the original C++ spelling
// when upstream flattened it.
func apiName(ns types.Namespace, id, cppName string) api.Name {
	n := api.NewName(ns, id)
	if cppName != "" && cppName != id {
		n.CppName = cppName
	}
	return n
}

// apiNameQualified is apiName plus identifier validation for kinds that
// must be spellable in the generated surface.
func apiNameQualified(ns types.Namespace, id, cppName string) (api.Name, error) {
	if err := types.ValidateIdent(id); err != nil {
		return api.Name{}, convertErr(ErrInvalidIdent, err.Error(), ns, id)
	}
	return apiName(ns, id, cppName), nil
}

func spotField(fields []decl.Field, marker string) bool {
	for _, f := range fields {
		if f.Name == marker {
			return true
		}
	}
	return false
}

func spotRValueReferenceFields(fields []decl.Field) bool {
	for _, f := range fields {
		if f.Type.RValueReference {
			return true
		}
	}
	return false
}

func deferred(err *ConvertError) *api.DeferredError {
	if err == nil {
		return nil
	}
	d := &api.DeferredError{Detail: err.Kind.String()}
	if err.Detail != "" {
		d.Detail += ": " + err.Detail
	}
	if err.Context != nil {
		d.Ident = err.Context.Ident
	}
	return d
}

func itemKind(item decl.Item) string {
	if u, ok := item.(*decl.Unknown); ok {
		return u.Kind
	}
	return fmt.Sprintf("%T", item)
}

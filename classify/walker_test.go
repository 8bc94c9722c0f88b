package classify

import (
	"bytes"
	"testing"

	"github.com/hxforge/bridgen/api"
	"github.com/hxforge/bridgen/config"
	"github.com/hxforge/bridgen/decl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree wraps items in the root-scope sentinel the upstream parser
// always emits.
func tree(items ...decl.Item) []decl.Item {
	return []decl.Item{&decl.Scope{Name: decl.RootScopeName, Items: items}}
}

func run(t *testing.T, cfg *config.Config, items []decl.Item) (*api.Model, *Walker) {
	t.Helper()
	w := &Walker{Config: cfg}
	model, err := w.Run(items)
	require.NoError(t, err)
	return model, w
}

func names(m *api.Model) []string {
	var out []string
	for _, e := range m.Entries() {
		out = append(out, e.EntryName().QName.String())
	}
	return out
}

func TestEmptyTreeSeedsUtilities(t *testing.T) {
	model, w := run(t, config.New(), nil)
	require.Equal(t, 1, model.Len())
	fn, ok := model.Entries()[0].(*api.FunctionEntry)
	require.True(t, ok)
	assert.Equal(t, "make_string", fn.Name.QName.String())
	assert.Empty(t, w.Diagnostics())
}

func TestMissingRootWrapperMeansEmpty(t *testing.T) {
	// A top-level list without the sentinel wrapper is treated as an
	// empty declaration list, not an error.
	model, _ := run(t, config.New(), []decl.Item{&decl.Scope{Name: "other"}})
	assert.Equal(t, []string{"make_string"}, names(model))
}

func TestExcludeUtilities(t *testing.T) {
	cfg := config.New()
	cfg.ExcludeUtilities = true
	model, _ := run(t, cfg, nil)
	assert.Equal(t, 0, model.Len())
}

func TestNestedScopeStruct(t *testing.T) {
	items := tree(&decl.Scope{Name: "a", Items: []decl.Item{
		&decl.Scope{Name: "b", Items: []decl.Item{
			&decl.Struct{Name: "Foo", Fields: []decl.Field{
				{Name: "x", Type: decl.TypeRef{Name: "int32_t"}},
			}},
		}},
	}})
	model, _ := run(t, config.New(), items)
	e, ok := model.Get("a::b::Foo")
	require.True(t, ok)
	s := e.(*api.StructEntry)
	assert.Equal(t, []string{"a", "b"}, s.Name.QName.Namespace().Segments())
	assert.False(t, s.HasRValueReferenceFields)
}

func TestForwardDeclarationDetection(t *testing.T) {
	items := tree(&decl.Struct{Name: "Opaque", Fields: []decl.Field{
		{Name: "_unused", Type: decl.TypeRef{Name: "u8"}},
	}})
	model, _ := run(t, config.New(), items)
	e, ok := model.Get("Opaque")
	require.True(t, ok)
	fwd, ok := e.(*api.ForwardDeclarationEntry)
	require.True(t, ok, "a struct whose only field is the _unused marker is never a real struct")
	assert.Nil(t, fwd.Err)
}

func TestTemplatedPlaceholderWithFatalAttr(t *testing.T) {
	items := tree(&decl.Struct{
		Name:            "Tpl",
		FatalAttrReason: "unsupported layout",
		Fields: []decl.Field{
			{Name: "_address", Type: decl.TypeRef{Name: "u8"}},
		},
	})
	model, _ := run(t, config.New(), items)
	e, ok := model.Get("Tpl")
	require.True(t, ok)
	fwd, ok := e.(*api.ForwardDeclarationEntry)
	require.True(t, ok)
	require.NotNil(t, fwd.Err)
	assert.Contains(t, fwd.Err.Detail, "fatal attribute")
	assert.Contains(t, fwd.Err.Detail, "unsupported layout")
}

func TestPlaceholderWithoutFatalAttrIsStruct(t *testing.T) {
	items := tree(&decl.Struct{Name: "Sized", Fields: []decl.Field{
		{Name: "_address", Type: decl.TypeRef{Name: "u8"}},
	}})
	model, _ := run(t, config.New(), items)
	e, ok := model.Get("Sized")
	require.True(t, ok)
	assert.IsType(t, &api.StructEntry{}, e)
}

func TestForwardDeclaredNestedType(t *testing.T) {
	items := tree(&decl.Struct{
		Name:    "Outer_Inner",
		CppName: "Outer::Inner",
		Fields: []decl.Field{
			{Name: "_unused", Type: decl.TypeRef{Name: "u8"}},
		},
	})
	model, _ := run(t, config.New(), items)
	e, ok := model.Get("Outer_Inner")
	require.True(t, ok)
	fwd := e.(*api.ForwardDeclarationEntry)
	require.NotNil(t, fwd.Err)
	assert.Contains(t, fwd.Err.Detail, "forward-declared nested type")
}

func TestRValueReferenceFields(t *testing.T) {
	items := tree(&decl.Struct{Name: "Mover", Fields: []decl.Field{
		{Name: "payload", Type: decl.TypeRef{Name: "Buffer", RValueReference: true}},
	}})
	model, _ := run(t, config.New(), items)
	e, _ := model.Get("Mover")
	assert.True(t, e.(*api.StructEntry).HasRValueReferenceFields)
}

func TestSkippedStructs(t *testing.T) {
	cfg := config.New()
	cfg.HostTypes = []string{"myapp.Token"}
	items := tree(
		&decl.Struct{Name: "Widget__vtable"},
		&decl.Struct{Name: "string"},  // substitute type
		&decl.Struct{Name: "Token"},   // host type at root scope
		&decl.Struct{Name: "int32_t"}, // known standard type
		&decl.Struct{Name: "Real"},
	)
	model, w := run(t, cfg, items)
	assert.Empty(t, w.Diagnostics(), "skips are silent")
	// Token appears as a host-type entry from the config merge, never
	// as a parsed struct.
	e, ok := model.Get("Token")
	require.True(t, ok)
	assert.IsType(t, &api.HostTypeEntry{}, e)
	_, ok = model.Get("Widget__vtable")
	assert.False(t, ok)
	_, ok = model.Get("string")
	assert.False(t, ok)
	_, ok = model.Get("int32_t")
	assert.False(t, ok)
	_, ok = model.Get("Real")
	assert.True(t, ok)
}

func TestHostTypeOnlySkippedAtRootScope(t *testing.T) {
	cfg := config.New()
	cfg.HostTypes = []string{"myapp.Token"}
	items := tree(&decl.Scope{Name: "inner", Items: []decl.Item{
		&decl.Struct{Name: "Token"},
	}})
	model, _ := run(t, cfg, items)
	_, ok := model.Get("inner::Token")
	assert.True(t, ok)
}

func TestBlocklistExclusion(t *testing.T) {
	cfg := config.New()
	cfg.Blocklist = []string{"a::Foo", "Color", "detail::*"}
	items := tree(
		&decl.Scope{Name: "a", Items: []decl.Item{&decl.Struct{Name: "Foo"}}},
		&decl.Enum{Name: "Color"},
		&decl.Scope{Name: "detail", Items: []decl.Item{&decl.Struct{Name: "Helper"}}},
		&decl.Struct{Name: "Kept"},
	)
	model, _ := run(t, cfg, items)
	assert.Equal(t, []string{"make_string", "Kept"}, names(model))
}

func TestBlocklistAppliesToForwardDeclarations(t *testing.T) {
	cfg := config.New()
	cfg.Blocklist = []string{"Opaque"}
	items := tree(&decl.Struct{Name: "Opaque", Fields: []decl.Field{
		{Name: "_unused", Type: decl.TypeRef{Name: "u8"}},
	}})
	model, _ := run(t, cfg, items)
	_, ok := model.Get("Opaque")
	assert.False(t, ok)
}

func TestConstClassification(t *testing.T) {
	items := tree(
		&decl.Const{Name: "MAX", TypeName: "uint32_t", Value: "64"},
		// Anonymous nested enums produce type names the model cannot
		// express; those constants vanish without a diagnostic.
		&decl.Const{Name: "ANON", TypeName: "detail::9unnamed", Value: "1"},
	)
	model, w := run(t, config.New(), items)
	e, ok := model.Get("MAX")
	require.True(t, ok)
	assert.Equal(t, "64", e.(*api.ConstEntry).Value)
	_, ok = model.Get("ANON")
	assert.False(t, ok)
	assert.Empty(t, w.Diagnostics(), "illegal const types are dropped silently")
}

func TestTypeAliasDuplicatesTolerated(t *testing.T) {
	items := tree(
		&decl.TypeAlias{Name: "Ref", Target: "Widget"},
		&decl.TypeAlias{Name: "Ref", Target: "Gadget"},
	)
	model, w := run(t, config.New(), items)
	assert.Empty(t, w.Diagnostics())
	e, ok := model.Get("Ref")
	require.True(t, ok)
	td := e.(*api.TypedefEntry)
	assert.Equal(t, api.TypedefAlias, td.Kind)
	assert.Equal(t, "Gadget", td.Target, "last write wins")
	assert.Nil(t, td.OldName)
}

func TestImportRenameCreatesTypedef(t *testing.T) {
	items := tree(&decl.Import{
		Segments: []string{"self", "super", "detail", "Foo"},
		Rename:   "FooAlias",
	})
	model, _ := run(t, config.New(), items)
	e, ok := model.Get("FooAlias")
	require.True(t, ok)
	td := e.(*api.TypedefEntry)
	assert.Equal(t, api.TypedefUse, td.Kind)
	require.NotNil(t, td.OldName)
	assert.Equal(t, "detail::Foo", td.OldName.String())
	assert.Equal(t, "detail::Foo", td.Target)
}

func TestImportSelfReferenceRejected(t *testing.T) {
	items := tree(&decl.Import{
		Segments: []string{"self", "super", "Foo"},
		Rename:   "Foo",
	})
	model, w := run(t, config.New(), items)
	_, ok := model.Get("Foo")
	assert.False(t, ok, "a self-aliasing rename never silently succeeds")
	diags := w.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, ErrInfinitelyRecursiveTypedef, diags[0].Kind)
}

func TestImportPlainChainIgnored(t *testing.T) {
	items := tree(&decl.Import{Segments: []string{"root"}})
	model, w := run(t, config.New(), items)
	assert.Equal(t, []string{"make_string"}, names(model))
	assert.Empty(t, w.Diagnostics())
}

func TestImportChar16RenameIgnored(t *testing.T) {
	items := tree(&decl.Import{
		Segments: []string{"self", "super", "char16_t"},
		Rename:   char16Alias,
	})
	model, w := run(t, config.New(), items)
	assert.Equal(t, []string{"make_string"}, names(model))
	assert.Empty(t, w.Diagnostics())
}

func TestUnexpectedItemKeepsWalking(t *testing.T) {
	items := tree(
		&decl.Unknown{Kind: "static_assert", Name: "check"},
		&decl.Struct{Name: "After"},
	)
	model, w := run(t, config.New(), items)
	diags := w.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, ErrUnexpectedItem, diags[0].Kind)
	_, ok := model.Get("After")
	assert.True(t, ok, "a malformed declaration must not abort its siblings")
}

func TestInvalidStructIdentReported(t *testing.T) {
	items := tree(
		&decl.Struct{Name: "9bad"},
		&decl.Struct{Name: "Good"},
	)
	model, w := run(t, config.New(), items)
	diags := w.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, ErrInvalidIdent, diags[0].Kind)
	_, ok := model.Get("Good")
	assert.True(t, ok)
}

func TestConfigMergeOrder(t *testing.T) {
	cfg := config.New()
	cfg.Subclasses = []config.SubclassSpec{{Subclass: "FancyWidget", Superclass: "Widget"}}
	cfg.HostFunctions = []config.HostFunction{{Name: "on_event", Signature: "on_event(w: Widget)"}}
	cfg.HostTypes = []string{"myapp.Token", "myapp.Token"}
	cfg.Concretes = []config.ConcreteSpec{{CppDefinition: "std::vector<Widget>", HostName: "WidgetList"}}

	w := &Walker{Config: cfg, Source: "struct Widget {}; struct Event {};"}
	model, err := w.Run(tree(&decl.Struct{Name: "Widget"}))
	require.NoError(t, err)

	// Utilities first, config-derived second, parsed third.
	assert.Equal(t, []string{"make_string", "FancyWidget", "on_event", "Token", "WidgetList", "Widget"}, names(model))

	sub, _ := model.Get("FancyWidget")
	assert.Equal(t, "Widget", sub.(*api.SubclassEntry).Superclass.String())

	fn, _ := model.Get("on_event")
	assert.Equal(t, []string{"Widget"}, fn.(*api.FunctionEntry).Deps)

	ct, _ := model.Get("WidgetList")
	assert.Equal(t, "std::vector<Widget>", ct.(*api.ConcreteTypeEntry).CppDefinition)
}

func TestOverrideSupersedesParse(t *testing.T) {
	cfg := config.New()
	cfg.Overrides = []config.OverrideSpec{{CppDefinition: "Widget", HostPath: "myapp.Widget"}}
	cfg.PODRequests = []string{"Widget"}

	model, _ := run(t, cfg, tree(&decl.Struct{Name: "Widget"}))

	var widgets []api.Entry
	for _, e := range model.Entries() {
		if e.EntryName().QName.String() == "Widget" {
			widgets = append(widgets, e)
		}
	}
	require.Len(t, widgets, 1, "exactly one entry for an overridden name")
	ov, ok := widgets[0].(*api.NativeOverrideEntry)
	require.True(t, ok)
	assert.Equal(t, "myapp.Widget", ov.HostPath)
	assert.True(t, ov.POD)
}

func TestOverrideForUnparsedName(t *testing.T) {
	cfg := config.New()
	cfg.Overrides = []config.OverrideSpec{{CppDefinition: "geo::Point", HostPath: "myapp.geo.Point"}}
	model, _ := run(t, cfg, nil)
	e, ok := model.Get("geo::Point")
	require.True(t, ok)
	ov := e.(*api.NativeOverrideEntry)
	assert.False(t, ov.POD)
	assert.Equal(t, []string{"geo", "Point"}, append(ov.Name.QName.Namespace().Segments(), ov.Name.QName.Name()))
}

func TestMustGenerateDirectiveFailure(t *testing.T) {
	cfg := config.New()
	cfg.Generate = []string{"Ghost"}
	w := &Walker{Config: cfg}
	_, err := w.Run(nil)
	require.Error(t, err)
	var cerr *ConvertError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrDidNotGenerateAnything, cerr.Kind)
	assert.Contains(t, err.Error(), "Ghost")
}

func TestMustGenerateDirectiveSatisfied(t *testing.T) {
	cfg := config.New()
	cfg.Generate = []string{"Widget"}
	model, _ := run(t, cfg, tree(&decl.Struct{Name: "Widget"}))
	_, ok := model.Get("Widget")
	assert.True(t, ok)
}

func TestMustGenerateMatchesCppSpelling(t *testing.T) {
	cfg := config.New()
	cfg.Generate = []string{"Outer::Inner"}
	items := tree(&decl.Struct{Name: "Outer_Inner", CppName: "Outer::Inner"})
	_, err := (&Walker{Config: cfg}).Run(items)
	assert.NoError(t, err)
}

func TestDeterminism(t *testing.T) {
	build := func() []decl.Item {
		return tree(
			&decl.Struct{Name: "Widget", Fields: []decl.Field{
				{Name: "id", Type: decl.TypeRef{Name: "uint32_t"}},
			}},
			&decl.Enum{Name: "Color", Variants: []decl.Enumerator{{Name: "Red"}}},
			&decl.Scope{Name: "detail", Items: []decl.Item{
				&decl.TypeAlias{Name: "Ref", Target: "Widget"},
			}},
		)
	}
	cfg := config.New()
	cfg.HostTypes = []string{"myapp.Token"}

	var dumps []string
	for i := 0; i < 3; i++ {
		model, _ := run(t, cfg, build())
		var buf bytes.Buffer
		require.NoError(t, model.Dump(&buf))
		dumps = append(dumps, buf.String())
	}
	assert.Equal(t, dumps[0], dumps[1])
	assert.Equal(t, dumps[1], dumps[2])
}

func TestWalkerRequiresConfig(t *testing.T) {
	_, err := (&Walker{}).Run(nil)
	assert.Error(t, err)
}

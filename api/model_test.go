package api

import (
	"bytes"
	"testing"

	"github.com/hxforge/bridgen/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func structEntry(spelling string) *StructEntry {
	return &StructEntry{Name: Name{QName: types.ParseQualifiedName(spelling)}}
}

func entryNames(m *Model) []string {
	var out []string
	for _, e := range m.Entries() {
		out = append(out, e.EntryName().QName.String())
	}
	return out
}

func TestModelPreservesInsertionOrder(t *testing.T) {
	m := NewModel()
	m.Push(structEntry("c::Gamma"))
	m.Push(structEntry("Alpha"))
	m.Push(structEntry("b::Beta"))
	assert.Equal(t, []string{"c::Gamma", "Alpha", "b::Beta"}, entryNames(m))
}

func TestModelDuplicateKeyReplacesInPlace(t *testing.T) {
	m := NewModel()
	m.Push(structEntry("A"))
	m.Push(&TypedefEntry{Name: NameInRoot("B"), Kind: TypedefAlias, Target: "int"})
	m.Push(&TypedefEntry{Name: NameInRoot("B"), Kind: TypedefAlias, Target: "long"})
	require.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"A", "B"}, entryNames(m))

	e, ok := m.Get("B")
	require.True(t, ok)
	assert.Equal(t, "long", e.(*TypedefEntry).Target, "last write wins")
}

func TestModelRetain(t *testing.T) {
	m := NewModel()
	m.Push(structEntry("A"))
	m.Push(structEntry("B"))
	m.Push(structEntry("C"))
	m.Retain(func(e Entry) bool { return e.EntryName().QName.Name() != "B" })
	assert.Equal(t, []string{"A", "C"}, entryNames(m))

	// Index is rebuilt: a retired key can be pushed again.
	m.Push(structEntry("B"))
	assert.Equal(t, []string{"A", "C", "B"}, entryNames(m))
}

func TestModelAppendDrainsOther(t *testing.T) {
	a := NewModel()
	a.Push(structEntry("A"))
	b := NewModel()
	b.Push(structEntry("B"))
	a.Append(b)
	assert.Equal(t, []string{"A", "B"}, entryNames(a))
	assert.Equal(t, 0, b.Len())
}

func TestPlainNamePrefersCppSpelling(t *testing.T) {
	n := Name{
		QName:   types.NewQualifiedName(types.NamespaceFrom("outer"), "Outer_Inner"),
		CppName: "Outer::Inner",
	}
	assert.Equal(t, "outer::Outer::Inner", n.PlainName())
	assert.True(t, n.IsNested())

	plain := NameInRoot("Widget")
	assert.Equal(t, "Widget", plain.PlainName())
	assert.False(t, plain.IsNested())
}

func TestDumpStableOrder(t *testing.T) {
	build := func() *Model {
		m := NewModel()
		m.Push(&FunctionEntry{Name: NameInRoot("make_string"), Signature: "make_string(value: str) -> string"})
		m.Push(structEntry("a::Widget"))
		m.Push(&EnumEntry{Name: NameInRoot("Color")})
		return m
	}
	var first, second bytes.Buffer
	require.NoError(t, build().Dump(&first))
	require.NoError(t, build().Dump(&second))
	assert.Equal(t, first.String(), second.String(), "dump must be byte-identical across runs")
	assert.Contains(t, first.String(), "kind: struct")
	assert.Contains(t, first.String(), "name: a::Widget")
}

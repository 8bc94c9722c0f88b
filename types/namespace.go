// Package types holds the name model shared by every stage of the
// generator: namespace paths, qualified names, and identifier validation
// for the generated interop surface.
package types

import "strings"

// Separator is the C++ spelling of the scope separator.
const Separator = "::"

// Namespace is an ordered sequence of scope segments. The zero value is
// the root namespace. Namespaces are immutable: Push returns a new value
// and never aliases the receiver's backing array.
type Namespace struct {
	segs []string
}

// NewNamespace returns the root namespace.
func NewNamespace() Namespace {
	return Namespace{}
}

// NamespaceFrom builds a namespace from the given segments.
func NamespaceFrom(segs ...string) Namespace {
	if len(segs) == 0 {
		return Namespace{}
	}
	out := make([]string, len(segs))
	copy(out, segs)
	return Namespace{segs: out}
}

// Push returns a new namespace with seg appended.
func (ns Namespace) Push(seg string) Namespace {
	out := make([]string, 0, len(ns.segs)+1)
	out = append(out, ns.segs...)
	out = append(out, seg)
	return Namespace{segs: out}
}

// Segments returns a copy of the path segments.
func (ns Namespace) Segments() []string {
	out := make([]string, len(ns.segs))
	copy(out, ns.segs)
	return out
}

// Depth returns the number of segments.
func (ns Namespace) Depth() int { return len(ns.segs) }

// IsEmpty reports whether this is the root namespace.
func (ns Namespace) IsEmpty() bool { return len(ns.segs) == 0 }

// Equal reports whether two namespaces have the same segment sequence.
func (ns Namespace) Equal(other Namespace) bool {
	if len(ns.segs) != len(other.segs) {
		return false
	}
	for i, s := range ns.segs {
		if other.segs[i] != s {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether ns is a (possibly equal) prefix of other.
// Scope nesting in the declaration tree is strictly a prefix relation.
func (ns Namespace) IsPrefixOf(other Namespace) bool {
	if len(ns.segs) > len(other.segs) {
		return false
	}
	for i, s := range ns.segs {
		if other.segs[i] != s {
			return false
		}
	}
	return true
}

func (ns Namespace) String() string {
	return strings.Join(ns.segs, Separator)
}

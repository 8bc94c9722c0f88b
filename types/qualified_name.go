package types

import "strings"

// QualifiedName is a namespace path plus a final identifier. It is the
// unique key for API model entries and is immutable once constructed.
type QualifiedName struct {
	ns   Namespace
	name string
}

// NewQualifiedName builds a qualified name from a namespace and identifier.
func NewQualifiedName(ns Namespace, name string) QualifiedName {
	return QualifiedName{ns: ns, name: name}
}

// QualifiedNameInRoot builds a qualified name in the root namespace.
func QualifiedNameInRoot(name string) QualifiedName {
	return QualifiedName{name: name}
}

// ParseQualifiedName splits a C++ spelling such as "a::b::Widget" into a
// qualified name. A bare identifier lands in the root namespace.
func ParseQualifiedName(spelling string) QualifiedName {
	parts := strings.Split(spelling, Separator)
	if len(parts) == 1 {
		return QualifiedName{name: parts[0]}
	}
	return QualifiedName{
		ns:   NamespaceFrom(parts[:len(parts)-1]...),
		name: parts[len(parts)-1],
	}
}

// Name returns the final identifier.
func (qn QualifiedName) Name() string { return qn.name }

// Namespace returns the namespace path.
func (qn QualifiedName) Namespace() Namespace { return qn.ns }

// Equal reports whether two qualified names are identical.
func (qn QualifiedName) Equal(other QualifiedName) bool {
	return qn.name == other.name && qn.ns.Equal(other.ns)
}

// String returns the C++ spelling, segments joined with "::".
func (qn QualifiedName) String() string {
	if qn.ns.IsEmpty() {
		return qn.name
	}
	return qn.ns.String() + Separator + qn.name
}

// IsNested reports whether the spelling names a nested type, i.e. the
// identifier itself carries a scope separator. Upstream flattens nested
// classes into single identifiers; the original spelling restores the
// separator, which is how nested forward declarations are detected.
func IsNested(cppSpelling string) bool {
	return strings.Contains(cppSpelling, Separator)
}

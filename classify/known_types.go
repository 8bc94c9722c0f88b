package classify

import "github.com/hxforge/bridgen/types"

// substituteTypes are replacement types the bridge runtime provides
// itself. A struct by one of these names in the declaration tree is a
// placeholder for the runtime's own definition and is never classified.
var substituteTypes = map[string]bool{
	"string":  true, // replaces std::string at the root scope
	"Str":     true,
	"String":  true,
	"CString": true,
}

// knownTypeNames are standard types the generated surface already
// understands; declarations re-stating them are skipped.
var knownTypeNames = map[string]bool{
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	"intptr_t": true, "uintptr_t": true, "size_t": true, "ssize_t": true,
	"ptrdiff_t": true, "char16_t": true, "char32_t": true, "wchar_t": true,
	"unique_ptr": true, "shared_ptr": true, "weak_ptr": true,
	"basic_string": true, "vector": true,
}

// knownTypeSpellings are fully qualified standard spellings.
var knownTypeSpellings = map[string]bool{
	"std::string":     true,
	"std::unique_ptr": true,
	"std::shared_ptr": true,
	"std::weak_ptr":   true,
	"std::vector":     true,
	"std::pin":        true,
}

// isSubstituteType reports whether qn names one of the runtime's own
// replacement types.
func isSubstituteType(qn types.QualifiedName) bool {
	return qn.Namespace().IsEmpty() && substituteTypes[qn.Name()]
}

// isKnownType reports whether qn is a standard type the surface
// already understands, by full spelling or by unqualified name.
func isKnownType(qn types.QualifiedName) bool {
	return knownTypeSpellings[qn.String()] || knownTypeNames[qn.Name()]
}

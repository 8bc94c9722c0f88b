package classify

import "github.com/hxforge/bridgen/api"

// makeStringName is the fixed utility the generated surface always
// needs: constructing a native string from managed text.
const makeStringName = "make_string"

// generateUtilities seeds the fixed utility entries. They go in before
// any config-derived or parsed entries so downstream output starts from
// a stable prefix.
func generateUtilities(model *api.Model) {
	model.Push(&api.FunctionEntry{
		Name:      api.NameInRoot(makeStringName),
		Signature: makeStringName + "(value: str) -> string",
	})
}

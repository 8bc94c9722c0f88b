package types

import "fmt"

// reservedIdents are identifiers that are legal C++ but collide with the
// generated interop surface and therefore cannot name an exposed entity.
var reservedIdents = map[string]bool{
	"box":     true,
	"dyn":     true,
	"impl":    true,
	"loop":    true,
	"match":   true,
	"mod":     true,
	"move":    true,
	"priv":    true,
	"ref":     true,
	"self":    true,
	"super":   true,
	"trait":   true,
	"unsafe":  true,
	"use":     true,
	"where":   true,
	"crate":   true,
	"async":   true,
	"await":   true,
	"final":   true,
	"extern":  true,
	"unsized": true,
}

// ValidateIdent reports whether id is legal as an identifier in the
// generated interop surface. Upstream occasionally synthesizes names
// (anonymous enums, flattened nested types) that C++ tolerates but the
// output language cannot express.
func ValidateIdent(id string) error {
	if id == "" {
		return fmt.Errorf("empty identifier")
	}
	for i, r := range id {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("identifier %q starts with a digit", id)
			}
		default:
			return fmt.Errorf("identifier %q contains illegal character %q", id, r)
		}
	}
	if reservedIdents[id] {
		return fmt.Errorf("identifier %q is reserved in the generated interop surface", id)
	}
	return nil
}

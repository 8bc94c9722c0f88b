// Package classify walks the declaration tree and builds the API model:
// it recognizes the structural patterns the upstream parser uses to
// encode native concepts, applies the user's inclusion policy, merges
// config-declared entities, and substitutes native-type overrides.
package classify

import (
	"fmt"

	"github.com/hxforge/bridgen/types"
)

// ErrKind partitions classification failures. All kinds except
// DidNotGenerateAnything are local to one declaration; only directive
// violations fail the whole pass.
type ErrKind int

const (
	// ErrInvalidIdent means a declaration's name is not legal in the
	// generated interop surface.
	ErrInvalidIdent ErrKind = iota
	// ErrForwardDeclaredNestedType flags a nested type known only by
	// forward declaration.
	ErrForwardDeclaredNestedType
	// ErrFatalAttr flags an attribute upstream marked as fatal for the
	// type.
	ErrFatalAttr
	// ErrInfinitelyRecursiveTypedef flags an alias resolving to itself.
	ErrInfinitelyRecursiveTypedef
	// ErrUnexpectedItem flags a declaration kind the classifier does
	// not recognize.
	ErrUnexpectedItem
	// ErrDidNotGenerateAnything means a must-generate directive went
	// unmet. Pass-fatal.
	ErrDidNotGenerateAnything
)

func (k ErrKind) String() string {
	switch k {
	case ErrInvalidIdent:
		return "invalid identifier"
	case ErrForwardDeclaredNestedType:
		return "forward-declared nested type"
	case ErrFatalAttr:
		return "fatal attribute"
	case ErrInfinitelyRecursiveTypedef:
		return "infinitely recursive typedef"
	case ErrUnexpectedItem:
		return "unexpected item in scope"
	case ErrDidNotGenerateAnything:
		return "did not generate anything"
	default:
		return "unknown error"
	}
}

// ErrorContext locates a failure: the namespace being walked and the
// identifier of the offending declaration.
type ErrorContext struct {
	Namespace types.Namespace
	Ident     string
}

func (c ErrorContext) String() string {
	if c.Namespace.IsEmpty() {
		return c.Ident
	}
	return c.Namespace.String() + types.Separator + c.Ident
}

// ConvertError is a located classification failure.
type ConvertError struct {
	Kind    ErrKind
	Detail  string
	Context *ErrorContext
}

func (e *ConvertError) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Context != nil {
		msg = fmt.Sprintf("%s (in %s)", msg, e.Context)
	}
	return msg
}

func convertErr(kind ErrKind, detail string, ns types.Namespace, ident string) *ConvertError {
	return &ConvertError{
		Kind:    kind,
		Detail:  detail,
		Context: &ErrorContext{Namespace: ns, Ident: ident},
	}
}

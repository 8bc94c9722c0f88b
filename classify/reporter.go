package classify

import (
	"errors"

	"github.com/hxforge/bridgen/api"
)

// Reporter receives per-declaration failures. It decides whether the
// failed declaration gets a best-effort placeholder entry or is simply
// dropped; the walker itself never decides that policy.
type Reporter interface {
	// Report is called once per failed declaration. A non-nil return
	// value is pushed into the model as a placeholder.
	Report(err *ConvertError) api.Entry
}

// Diagnostic is one recorded per-declaration failure.
type Diagnostic struct {
	Kind    ErrKind
	Detail  string
	Context string
}

// DiagnosticLog is the default Reporter: it records every failure and
// drops the declaration.
type DiagnosticLog struct {
	diags []Diagnostic
}

// Report records the failure. No placeholder is synthesized.
func (l *DiagnosticLog) Report(err *ConvertError) api.Entry {
	d := Diagnostic{Kind: err.Kind, Detail: err.Detail}
	if err.Context != nil {
		d.Context = err.Context.String()
	}
	l.diags = append(l.diags, d)
	return nil
}

// Diagnostics returns the recorded failures in walk order.
func (l *DiagnosticLog) Diagnostics() []Diagnostic { return l.diags }

// reportAnyError runs fn and, if it fails with a ConvertError, hands
// the failure to the reporter and keeps the walk alive. Errors that are
// not ConvertErrors propagate: they indicate a malformed tree, not a
// malformed declaration.
func reportAnyError(rep Reporter, model *api.Model, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	var cerr *ConvertError
	if !errors.As(err, &cerr) {
		return err
	}
	if placeholder := rep.Report(cerr); placeholder != nil {
		model.Push(placeholder)
	}
	return nil
}

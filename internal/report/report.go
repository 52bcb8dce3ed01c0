// Package report evaluates expressions on behalf of the command-line and
// HTTP front ends and describes the outcome in a form both can encode.
package report

import (
	"errors"

	"github.com/zephyrtronium/calc"
)

// Error kinds.
const (
	KindParse = "parse"
	KindValue = "value"
	KindOther = "other"
)

// Result is the outcome of evaluating one expression. Exactly one of Value
// and Error is set.
type Result struct {
	Expr  string `json:"expr"            yaml:"expr"`
	Tree  string `json:"tree,omitempty"  yaml:"tree,omitempty"`
	Kind  string `json:"kind,omitempty"  yaml:"kind,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Error *Error `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// Error describes a failed evaluation.
type Error struct {
	Kind    string `json:"kind"    yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// Evaluate parses and evaluates src. If tree is true and src parses, the
// result includes the parenthesized parse tree.
func Evaluate(src string, tree bool) Result {
	r := Result{Expr: src}
	a, err := calc.ParseString(src)
	if err != nil {
		return r.fail(err)
	}
	if tree {
		r.Tree = a.String()
	}
	v, err := a.Eval()
	if err != nil {
		return r.fail(err)
	}
	r.Kind = v.Kind().String()
	r.Value = v.String()
	return r
}

func (r Result) fail(err error) Result {
	r.err = err
	r.Error = &Error{Kind: Kind(err), Message: err.Error()}
	return r
}

// Err returns the evaluation error, if any.
func (r Result) Err() error {
	return r.err
}

// Kind classifies an error from the calculator.
func Kind(err error) string {
	var (
		p *calc.ParseError
		v *calc.ValueError
	)
	switch {
	case errors.As(err, &p):
		return KindParse
	case errors.As(err, &v):
		return KindValue
	default:
		return KindOther
	}
}

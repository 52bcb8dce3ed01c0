package calc

import "errors"

// ParseError indicates input that is not a well-formed expression: an unknown
// character, an unexpected token, a missing token, or numeric text that does
// not convert to a number.
type ParseError struct {
	// Msg describes the problem. It names the offending character or token
	// where there is one.
	Msg string
	// Err is the underlying numeric conversion error, if any.
	Err error
}

func (err *ParseError) Error() string {
	return err.Msg
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// ValueError indicates an operation that has no valid result for its operands,
// such as integer overflow, division by zero, or the factorial of a negative
// or fractional number.
type ValueError struct {
	Msg string
}

func (err *ValueError) Error() string {
	return err.Msg
}

// IsParseError reports whether any error in err's chain is a *ParseError.
func IsParseError(err error) bool {
	var p *ParseError
	return errors.As(err, &p)
}

// IsValueError reports whether any error in err's chain is a *ValueError.
func IsValueError(err error) bool {
	var v *ValueError
	return errors.As(err, &v)
}

var (
	errEOF      = &ParseError{Msg: "Unexpected end of input"}
	errOverflow = &ValueError{Msg: "Integer overflow"}
	errDivZero  = &ValueError{Msg: "Can't divide by zero"}
	errNegFact  = &ValueError{Msg: "Can't take factorial of negative number"}
)

// unexpected creates an error for a token that may not appear where it did.
func unexpected(tok lexToken) error {
	if tok.kind == tokenEOF {
		return errEOF
	}
	return &ParseError{Msg: "Unexpected token " + tok.text}
}

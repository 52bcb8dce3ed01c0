package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Expr = Atom | Prefix | Postfix | Infix
// Atom = num | '(' Expr ')'
// Prefix = ('+' | '-') Expr
// Postfix = Expr '!'
// Infix = Expr ('+' | '-' | '*' | '/' | '%' | '^') Expr

// Expr is a parsed expression. Evaluating it has no side effects, so an Expr
// may be evaluated any number of times, including concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression. The entire input must form exactly one
// expression.
func Parse(src io.RuneScanner) (*Expr, error) {
	scan := lex(src)
	n, err := parseexpr(scan, 0)
	if err != nil {
		return nil, err
	}
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenEOF {
		return nil, unexpected(tok)
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(src))
}

// String creates a fully parenthesized representation of the parsed
// expression. Parsing the result gives an equivalent expression.
func (e *Expr) String() string {
	return e.n.String()
}

// parseexpr parses an expression whose operators all bind at least as tightly
// as min. It leaves the first token it does not use for the caller.
func parseexpr(scan *lexer, min uint8) (*node, error) {
	var lhs *node
	op, err := nextop(scan, prefixop, min)
	if err != nil {
		return nil, err
	}
	if op.op != nodeNone {
		// Right-associative prefix operators recurse at their own
		// precedence, so --x is -(-x).
		operand, err := parseexpr(scan, op.next())
		if err != nil {
			return nil, err
		}
		lhs = &node{kind: op.op, left: operand}
	} else {
		lhs, err = parseatom(scan)
		if err != nil {
			return nil, err
		}
	}
	for {
		op, err := nextop(scan, postfixop, min)
		if err != nil {
			return nil, err
		}
		if op.op == nodeNone {
			break
		}
		lhs = &node{kind: op.op, left: lhs}
	}
	for {
		op, err := nextop(scan, infixop, min)
		if err != nil {
			return nil, err
		}
		if op.op == nodeNone {
			break
		}
		rhs, err := parseexpr(scan, op.next())
		if err != nil {
			return nil, err
		}
		lhs = &node{kind: op.op, left: lhs, right: rhs}
	}
	return lhs, nil
}

// parseatom parses a number or a parenthesized expression.
func parseatom(scan *lexer) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return parsenum(tok.text)
	case tokenOpen:
		n, err := parseexpr(scan, 0)
		if err != nil {
			return nil, err
		}
		end, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch end.kind {
		case tokenClose:
			return n, nil
		case tokenEOF:
			return nil, errEOF
		default:
			return nil, &ParseError{Msg: "Expected token ), found " + end.text}
		}
	case tokenEOF:
		return nil, errEOF
	default:
		return nil, &ParseError{Msg: "Expected expression atom, found " + tok.text}
	}
}

// parsenum converts number text to a literal node. Text made only of digits is
// an integer; anything else is a float. Integers out of range are errors.
func parsenum(text string) (*node, error) {
	n := &node{kind: nodeNum, name: text}
	if strings.Trim(text, "0123456789") == "" {
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &ParseError{Msg: err.Error(), Err: err}
		}
		n.val = Int(i)
		return n, nil
	}
	// Float text too large to represent is infinite rather than an error.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, &ParseError{Msg: err.Error(), Err: err}
	}
	n.val = Real(f)
	return n, nil
}

// nextop consumes the next token if it is an operator from table that binds at
// least as tightly as min. Otherwise, the token is left for the next scan and
// the result has an op of nodeNone.
func nextop(scan *lexer, table func(lexToken) operator, min uint8) (operator, error) {
	tok, err := scan.peek()
	if err != nil {
		return operator{}, err
	}
	op := table(tok)
	if op.op == nodeNone || op.prec < min {
		return operator{}, nil
	}
	scan.next()
	return op, nil
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec uint8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

// next is the minimum precedence of the operand that follows the operator.
// Left-associative operators stop at operators of their own precedence.
func (p operator) next() uint8 {
	if p.right {
		return p.prec
	}
	return p.prec + 1
}

// prefixop gets a prefix operator for a token. If there is no such operator,
// then the result has an op of nodeNone.
func prefixop(tok lexToken) operator {
	if tok.kind != tokenOp {
		return operator{}
	}
	switch tok.text {
	case "+":
		return operator{9, true, nodeNop}
	case "-":
		return operator{9, true, nodeNeg}
	default:
		return operator{}
	}
}

// postfixop gets a postfix operator for a token. If there is no such operator,
// then the result has an op of nodeNone.
func postfixop(tok lexToken) operator {
	if tok.kind != tokenOp {
		return operator{}
	}
	switch tok.text {
	case "!":
		return operator{8, false, nodeFact}
	default:
		return operator{}
	}
}

// infixop gets a binary operator for a token. If there is no such operator,
// then the result has an op of nodeNone.
func infixop(tok lexToken) operator {
	if tok.kind != tokenOp {
		return operator{}
	}
	switch tok.text {
	case "^":
		return operator{7, true, nodePow}
	case "*":
		return operator{6, false, nodeMul}
	case "/":
		return operator{6, false, nodeDiv}
	case "%":
		return operator{6, false, nodeMod}
	case "+":
		return operator{5, false, nodeAdd}
	case "-":
		return operator{5, false, nodeSub}
	default:
		return operator{}
	}
}

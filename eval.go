package calc

import (
	"io"
	"math"
	"strings"
)

// Eval evaluates the expression. If an operation has no valid result, e.g. an
// integer overflow or a division by zero, the error is a *ValueError and no
// partial result is returned.
func (e *Expr) Eval() (Value, error) {
	return e.n.eval()
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner) (Value, error) {
	a, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return a.Eval()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string) (Value, error) {
	return Eval(strings.NewReader(src))
}

// eval computes the node's value after computing its children.
func (n *node) eval() (Value, error) {
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeNop:
		return n.left.eval()
	case nodeNeg:
		x, err := n.left.eval()
		if err != nil {
			return Value{}, err
		}
		return neg(x)
	case nodeFact:
		x, err := n.left.eval()
		if err != nil {
			return Value{}, err
		}
		return fact(x)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		l, err := n.left.eval()
		if err != nil {
			return Value{}, err
		}
		r, err := n.right.eval()
		if err != nil {
			return Value{}, err
		}
		return binary(n.kind, l, r)
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// binary applies a binary operation. Two integers give an integer, except for
// integer powers with negative exponents; any float operand makes the
// operation use floats.
func binary(op nodeKind, l, r Value) (Value, error) {
	if l.kind == Integer && r.kind == Integer {
		return binaryInt(op, l.i, r.i)
	}
	a, b := l.Float64(), r.Float64()
	switch op {
	case nodeAdd:
		return Real(a + b), nil
	case nodeSub:
		return Real(a - b), nil
	case nodeMul:
		return Real(a * b), nil
	case nodeDiv:
		return Real(a / b), nil
	case nodeMod:
		return Real(math.Mod(a, b)), nil
	case nodePow:
		return Real(math.Pow(a, b)), nil
	default:
		panic("calc: invalid binary operator " + op.String())
	}
}

func binaryInt(op nodeKind, a, b int64) (Value, error) {
	switch op {
	case nodeAdd:
		c, ok := addInt(a, b)
		if !ok {
			return Value{}, errOverflow
		}
		return Int(c), nil
	case nodeSub:
		// Subtraction wraps.
		return Int(a - b), nil
	case nodeMul:
		c, ok := mulInt(a, b)
		if !ok {
			return Value{}, errOverflow
		}
		return Int(c), nil
	case nodeDiv:
		if b == 0 {
			return Value{}, errDivZero
		}
		if a == math.MinInt64 && b == -1 {
			return Value{}, errOverflow
		}
		return Int(a / b), nil
	case nodeMod:
		if b == 0 {
			return Value{}, errDivZero
		}
		return Int(a % b), nil
	case nodePow:
		if b < 0 {
			return Real(math.Pow(float64(a), float64(b))), nil
		}
		c, ok := powInt(a, b)
		if !ok {
			return Value{}, errOverflow
		}
		return Int(c), nil
	default:
		panic("calc: invalid binary operator " + op.String())
	}
}

func neg(x Value) (Value, error) {
	if x.kind == Float {
		return Real(-x.f), nil
	}
	if x.i == math.MinInt64 {
		return Value{}, errOverflow
	}
	return Int(-x.i), nil
}

// fact computes the factorial of a non-negative integer.
func fact(x Value) (Value, error) {
	if x.kind == Float {
		return Value{}, &ValueError{Msg: "Can't take factorial of " + x.String()}
	}
	if x.i < 0 {
		return Value{}, errNegFact
	}
	r := int64(1)
	for k := int64(2); k <= x.i; k++ {
		var ok bool
		r, ok = mulInt(r, k)
		if !ok {
			return Value{}, errOverflow
		}
	}
	return Int(r), nil
}

// addInt adds two integers, reporting false if the sum overflows.
func addInt(a, b int64) (int64, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

// mulInt multiplies two integers, reporting false if the product overflows.
func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (c < 0) != ((a < 0) != (b < 0)) || c/b != a {
		return 0, false
	}
	return c, true
}

// powInt raises a to a non-negative integer power by squaring, reporting false
// if the result overflows.
func powInt(a, b int64) (int64, bool) {
	r := int64(1)
	for b > 0 {
		var ok bool
		if b&1 != 0 {
			r, ok = mulInt(r, a)
			if !ok {
				return 0, false
			}
		}
		b >>= 1
		if b > 0 {
			// Every remaining bit multiplies the result by at least a², so an
			// overflow here is an overflow of the result.
			a, ok = mulInt(a, a)
			if !ok {
				return 0, false
			}
		}
	}
	return r, true
}

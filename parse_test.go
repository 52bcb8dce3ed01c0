package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if !n.val.Equal(m.val) {
			return n, m
		}
	case nodeNeg, nodeNop, nodeFact:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		tok := lexToken{text: string(r), kind: tokenOp}
		if prefixop(tok).op == nodeNone && infixop(tok).op == nodeNone && postfixop(tok).op == nodeNone {
			t.Errorf("no operator for %c", r)
		}
	}
}

func TestComparisonsHaveNoOperators(t *testing.T) {
	for _, s := range []string{"=", "<", ">", "<=", ">=", "<>"} {
		tok := lexToken{text: s, kind: tokenCmp}
		if prefixop(tok).op != nodeNone || infixop(tok).op != nodeNone || postfixop(tok).op != nodeNone {
			t.Errorf("comparison %s has an operator", s)
		}
	}
}

func TestOperatorTable(t *testing.T) {
	cases := []struct {
		table func(lexToken) operator
		text  string
		prec  uint8
		right bool
		op    nodeKind
	}{
		{prefixop, "+", 9, true, nodeNop},
		{prefixop, "-", 9, true, nodeNeg},
		{postfixop, "!", 8, false, nodeFact},
		{infixop, "^", 7, true, nodePow},
		{infixop, "*", 6, false, nodeMul},
		{infixop, "/", 6, false, nodeDiv},
		{infixop, "%", 6, false, nodeMod},
		{infixop, "+", 5, false, nodeAdd},
		{infixop, "-", 5, false, nodeSub},
	}
	for _, c := range cases {
		got := c.table(lexToken{text: c.text, kind: tokenOp})
		want := operator{c.prec, c.right, c.op}
		if got != want {
			t.Errorf("operator %s: want %+v, got %+v", c.text, want, got)
		}
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(1)", "1"},
		{"multi", "((((1))))", "1"},
		{"space", " 1 +\t2\n", "1+2"},

		{"plus", "+1", "(+(1))"},
		{"neg", "-1", "(-(1))"},
		{"add", "1+2", "((1)+(2))"},
		{"sub", "1-2", "((1)-(2))"},
		{"mul", "1*2", "((1)*(2))"},
		{"div", "1/2", "((1)/(2))"},
		{"mod", "1%2", "((1)%(2))"},
		{"pow", "1^2", "((1)^(2))"},
		{"fact", "1!", "((1)!)"},

		{"add4", "1+2+3+4", "((1+2)+3)+4"},
		{"sub4", "1-2-3-4", "((1-2)-3)-4"},
		{"mul4", "1*2*3*4", "((1*2)*3)*4"},
		{"div4", "1/2/3/4", "((1/2)/3)/4"},
		{"mod4", "1%2%3%4", "((1%2)%3)%4"},
		{"pow4", "1^2^3^4", "1^(2^(3^4))"},
		{"fact3", "4!!!", "((4!)!)!"},
		{"muldivmod", "1*2/3%4", "((1*2)/3)%4"},
		{"addsub", "1+2-3+4", "((1+2)-3)+4"},

		{"desc", "1^2*3+4", "((1^2)*3)+4"},
		{"asc", "1+2*3^4", "1+(2*(3^4))"},
		{"ascdesc", "1+2*3^4^5*6+7", "1+((2*(3^(4^5)))*6)+7"},
		{"subdiv", "8-4/2", "8-(4/2)"},
		{"divsub", "8/4-2", "(8/4)-2"},
		{"negneg", "--1", "-(-1)"},
		{"plusneg", "+-1", "+(-1)"},
		{"negsub", "-1-1", "(-1)-1"},
		{"negpow", "-2^2", "(-2)^2"},
		{"negfact", "-1!", "(-1)!"},
		{"powneg", "2^-1", "2^(-1)"},
		{"pownegpow", "2^-3^-4", "2^((-3)^(-4))"},
		{"powfact", "2^3!", "2^(3!)"},
		{"factpow", "3!^2", "(3!)^2"},
		{"mulfact", "2*3!", "2*(3!)"},
		{"subneg", "1--1", "1-(-1)"},
		{"parenfact", "(1+2)!", "((1+2))!"},
		{"float", "1.5+2.", "(1.5)+(2.0)"},
		{"example", "(1+1)*2+4!", "((1+1)*2)+(4!)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := ParseString(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want Value
	}{
		{"0", Int(0)},
		{"007", Int(7)},
		{"9223372036854775807", Int(9223372036854775807)},
		{"1.5", Real(1.5)},
		{"1.", Real(1)},
		{"0.0", Real(0)},
		{"123456789012345678901234567890.5", Real(123456789012345678901234567890.5)},
	}
	for _, c := range cases {
		a, err := ParseString(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		if a.n.kind != nodeNum {
			t.Errorf("%q parsed to %v", c.src, a.n)
			continue
		}
		if !a.n.val.Equal(c.want) {
			t.Errorf("%q: want %v (%v), got %v (%v)", c.src, c.want, c.want.Kind(), a.n.val, a.n.val.Kind())
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		msg  string
	}{
		{"empty", "", "Unexpected end of input"},
		{"space", "   ", "Unexpected end of input"},
		{"trailing-op", "1+", "Unexpected end of input"},
		{"prefix-only", "-", "Unexpected end of input"},
		{"open", "(", "Unexpected end of input"},
		{"unclosed", "(1+2", "Unexpected end of input"},
		{"wrong-close", "(1 2)", "Expected token ), found 2"},
		{"close-cmp", "(1 = 2)", "Expected token ), found ="},
		{"fact-atom", "1*!1", "Expected expression atom, found !"},
		{"lone-fact", "!", "Expected expression atom, found !"},
		{"close-atom", ")", "Expected expression atom, found )"},
		{"empty-parens", "()", "Expected expression atom, found )"},
		{"mul-atom", "*2", "Expected expression atom, found *"},
		{"cmp-atom", "<1", "Expected expression atom, found <"},
		{"extra-close", "(1))", "Unexpected token )"},
		{"juxtaposed", "1 2", "Unexpected token 2"},
		{"comparison", "1 < 2", "Unexpected token <"},
		{"not-equal", "1 <> 2", "Unexpected token <>"},
		{"char", "1 + m", "Unexpected character m"},
		{"trailing-char", "1m", "Unexpected character m"},
		{"char-in-parens", "(1$)", "Unexpected character $"},
		{"dot", ".5", "Unexpected character ."},
		{"exponent", "1e10", "Unexpected character e"},
		{"comma", "1,000", "Unexpected character ,"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err == nil {
				t.Fatalf("%q parsed to %v", c.src, a)
			}
			if !IsParseError(err) {
				t.Errorf("%q gave %T, not *ParseError: %v", c.src, err, err)
			}
			if err.Error() != c.msg {
				t.Errorf("%q: want message %q, got %q", c.src, c.msg, err.Error())
			}
		})
	}
}

func TestParseNumberRange(t *testing.T) {
	_, err := ParseString("9223372036854775808")
	if err == nil {
		t.Fatal("out of range integer parsed")
	}
	var p *ParseError
	if !errors.As(err, &p) {
		t.Fatalf("wrong error type %T: %v", err, err)
	}
	if p.Err == nil {
		t.Errorf("no wrapped conversion error in %v", err)
	}
}

func TestParseFloatRange(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Value
	}{
		{"huge", "1" + strings.Repeat("0", 400) + ".5", Real(math.Inf(1))},
		{"tiny", "0." + strings.Repeat("0", 400) + "1", Real(0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("failed to parse: %v", err)
			}
			if a.n.kind != nodeNum || !a.n.val.Equal(c.want) {
				t.Errorf("want %v, got %v", c.want, a.n.val)
			}
		})
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	cases := []string{
		"1",
		"1.",
		"-1",
		"+-1",
		"(1+1)*2+4!",
		"2^3^2",
		"2^-1",
		"-2^2",
		"-1!",
		"1--1",
		"8-4/2%3",
		"(1.1+1.1)*2+4!",
	}
	for _, src := range cases {
		a, err := ParseString(src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", src, err)
			continue
		}
		s := a.String()
		b, err := ParseString(s)
		if err != nil {
			t.Errorf("%q formatted as %q, which failed to parse: %v", src, s, err)
			continue
		}
		if d, e := a.n.diff(b.n); d != nil || e != nil {
			t.Errorf("%q formatted as %q, which parses differently: %v vs %v", src, s, d, e)
		}
	}
}

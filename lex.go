package calc

import (
	"errors"
	"io"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
}

func (t lexToken) String() string {
	if t.kind == tokenEOF {
		return "end of input"
	}
	return t.text
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an integer or real number token.
	tokenNum
	// tokenOp is an arithmetic operator.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenCmp is a comparison symbol. No operator consumes these yet.
	tokenCmp
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token

// Operators contains the runes which are considered to be arithmetic
// operators.
const Operators = "+-*/%^!"

// Comparisons contains the runes which begin comparison symbols. The lexer
// also recognizes the two-rune forms <>, <=, and >=.
const Comparisons = "=<>"

// Symbols is the full set of runes that begin a non-numeric token.
const Symbols = Operators + Comparisons + "()"

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	p   lexToken
	eof bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("calc: double push")
	}
	l.p = tok
}

// peek scans the next token without consuming it.
func (l *lexer) peek() (lexToken, error) {
	tok, err := l.next()
	if err != nil {
		return tok, err
	}
	l.push(tok)
	return tok, nil
}

// next scans the next token from the input. Once the input is exhausted, every
// call returns an EOF token. A lexical error consumes the offending rune, so
// scanning may continue after it.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		return lexToken{kind: tokenEOF}, nil
	}
	defer l.buf.Reset()
	for {
		r, _, err := l.src.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				return lexToken{kind: tokenEOF}, nil
			}
			return lexToken{}, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return lexToken{}, err
			}
			return lexToken{text: l.buf.String(), kind: tokenNum}, nil
		case r == '(':
			return lexToken{text: "(", kind: tokenOpen}, nil
		case r == ')':
			return lexToken{text: ")", kind: tokenClose}, nil
		case r == '<':
			return l.scanCmp("<", '>', '=')
		case r == '>':
			return l.scanCmp(">", '=')
		case r == '=':
			return lexToken{text: "=", kind: tokenCmp}, nil
		case strings.ContainsRune(Operators, r):
			return lexToken{text: string(r), kind: tokenOp}, nil
		default:
			return lexToken{}, &ParseError{Msg: "Unexpected character " + string(r)}
		}
	}
}

// unreadRune unreads a rune from the src. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
}

// scanNum scans a run of digits, optionally followed by a decimal point and
// another run of digits. The fraction may be empty, so "1." is a number.
func (l *lexer) scanNum() error {
	if err := l.scanDigits(); err != nil {
		return err
	}
	r, _, err := l.src.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if r != '.' {
		l.unreadRune()
		return nil
	}
	l.buf.WriteRune(r)
	return l.scanDigits()
}

func (l *lexer) scanDigits() error {
	for {
		r, _, err := l.src.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r < '0' || r > '9' {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// scanCmp finishes a comparison symbol that started with first, extending it
// by the first of seconds that follows.
func (l *lexer) scanCmp(first string, seconds ...rune) (lexToken, error) {
	tok := lexToken{text: first, kind: tokenCmp}
	r, _, err := l.src.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return tok, nil
		}
		return lexToken{}, err
	}
	for _, s := range seconds {
		if r == s {
			tok.text += string(r)
			return tok, nil
		}
	}
	l.unreadRune()
	return tok, nil
}

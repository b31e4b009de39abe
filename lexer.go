package meval

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// TokenType discriminates the tokens produced by a Lexer.
type TokenType int

const (
	TokPlus TokenType = iota
	TokMinus
	TokMult
	TokDivide
	TokComma
	TokOParen
	TokCParen
	TokNumber
	TokIdent
	TokEnd
	TokInvalid
)

var tokenNames = [...]string{
	TokPlus:    "'+'",
	TokMinus:   "'-'",
	TokMult:    "'*'",
	TokDivide:  "'/'",
	TokComma:   "','",
	TokOParen:  "'('",
	TokCParen:  "')'",
	TokNumber:  "number",
	TokIdent:   "identifier",
	TokEnd:     "end of input",
	TokInvalid: "invalid character",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return "TokenType(" + strconv.Itoa(int(t)) + ")"
	}
	return tokenNames[t]
}

// Token is a single lexeme. Value is always a substring of the lexer
// input starting at byte offset Pos; Number is only meaningful for
// TokNumber.
type Token struct {
	Type   TokenType
	Value  string
	Number float64
	Pos    int
}

func (t Token) String() string {
	switch t.Type {
	case TokEnd:
		return t.Type.String()
	case TokNumber, TokIdent, TokInvalid:
		return strconv.Quote(t.Value)
	}
	return t.Type.String()
}

// Lexer is a cursor over an input string. Each call to Next produces
// the following token; the lexer never looks further ahead than the
// token it is producing.
type Lexer struct {
	input      string
	action     lActionFn
	start, pos int
	width      int

	tok     Token
	emitted bool
}

type lActionFn func(l *Lexer) lActionFn

// NewLexer returns a Lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		action: lexWS,
	}
}

// Next advances the lexer and returns the token found. Once the end of
// the input is reached it keeps returning TokEnd. After a TokInvalid it
// keeps returning TokInvalid.
func (l *Lexer) Next() Token {
	l.emitted = false
	for !l.emitted {
		l.action = l.action(l)
	}
	return l.tok
}

const eof rune = -1

// Actions

func lexWS(l *Lexer) lActionFn {
	var ru rune
	for {
		ru = l.next()
		if !isSpace(ru) {
			break
		}
	}
	//we peek the last char
	l.backup()

	//we ignore all data
	l.ignore()

	if ru == eof {
		l.emit(TokEnd)
		return lexWS
	}

	if strings.ContainsRune(numeric+".", ru) {
		return lexNumber
	}

	if l.accept(alphabetic + "_") {
		return lexIdentifier
	}

	//check for single char tokens
	ru = l.next() //we know it is not eof
	if t, ok := runeToken[ru]; ok {
		l.emit(t)
		return lexWS
	}

	return lexInvalid
}

// lexNumber scans a decimal floating point literal: digits, an optional
// fraction and an optional signed exponent. The exponent is only taken
// when at least one digit follows it.
func lexNumber(l *Lexer) lActionFn {
	digits := l.acceptRun(numeric)
	if l.accept(".") {
		digits += l.acceptRun(numeric)
	}
	if digits == 0 {
		return lexInvalid
	}

	mark := l.pos
	if l.accept("eE") {
		l.accept("+-")
		if l.acceptRun(numeric) == 0 {
			l.pos = mark
		}
	}

	value, err := strconv.ParseFloat(l.current(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return lexInvalid
	}
	l.tok = Token{Type: TokNumber, Value: l.current(), Number: value, Pos: l.start}
	l.emitted = true
	l.ignore()
	return lexWS
}

func lexIdentifier(l *Lexer) lActionFn {
	l.acceptRun(alphabetic + numeric + "_")
	l.emit(TokIdent)
	return lexWS
}

// lexInvalid is a trap state: tokenization past an invalid character
// is not defined, so it is never attempted.
func lexInvalid(l *Lexer) lActionFn {
	if l.pos == l.start {
		l.next()
	}
	l.emit(TokInvalid)
	return lexInvalidAgain
}

func lexInvalidAgain(l *Lexer) lActionFn {
	l.tok = Token{Type: TokInvalid, Pos: l.pos}
	l.emitted = true
	return lexInvalidAgain
}

// static data

var numeric = "0123456789"

var alphabetic = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var runeToken = map[rune]TokenType{
	'+': TokPlus,
	'-': TokMinus,
	'*': TokMult,
	'/': TokDivide,
	',': TokComma,
	'(': TokOParen,
	')': TokCParen,
}

// isSpace matches the C locale isspace set only.
func isSpace(ru rune) bool {
	switch ru {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// helpers

func (l *Lexer) current() string {
	return l.input[l.start:l.pos]
}

func (l *Lexer) emit(t TokenType) {
	l.tok = Token{Type: t, Value: l.current(), Pos: l.start}
	l.emitted = true
	l.ignore()
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	var ru rune
	ru, l.width =
		utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return ru
}

func (l *Lexer) backup() {
	l.pos -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.pos
}

func (l *Lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptRun(valid string) int {
	n := 0
	for strings.ContainsRune(valid, l.next()) {
		n++
	}
	l.backup()
	return n
}

package meval

import (
	"fmt"

	"github.com/lyraproj/issue/issue"
)

// Parse compiles text into an Expression. On failure the returned
// error is an issue.Reported carrying one of the EXPR_* codes and no
// Expression is returned.
//
// Identifier names in the tree share the memory of text.
func Parse(text string) (*Expression, error) {
	root, err := buildAST(text)
	if err != nil {
		return nil, err
	}
	return &Expression{root: root}, nil
}

// ParseLen compiles the first length bytes of text. length is clamped
// to the size of text.
func ParseLen(text string, length int) (*Expression, error) {
	if length < 0 {
		length = 0
	}
	if length > len(text) {
		length = len(text)
	}
	return Parse(text[:length])
}

// MustParse is like Parse but panics if text cannot be parsed.
func MustParse(text string) *Expression {
	e, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("meval: Parse(%q): %s", text, err))
	}
	return e
}

// parser is a recursive descent parser over the grammar
//
//	sum     := product (('+' | '-') product)*
//	product := factor (('*' | '/') factor)*
//	factor  := ('+' | '-') primary | primary
//	primary := number | '(' sum ')' | ident | ident '(' args? ')'
//	args    := sum (',' sum){0,2}
//
// A sign is only accepted on the first factor of a sum: "1 * -2" and
// "1 - -2" are rejected, "1 * (-2)" is not.
type parser struct {
	input string
	lexer *Lexer
	tok   Token
}

func buildAST(input string) (Node, error) {
	p := &parser{input: input, lexer: NewLexer(input)}
	p.advance()

	if p.tok.Type == TokEnd {
		return nil, p.error(EmptyExpression, issue.NO_ARGS)
	}

	root, err := p.parseSum()
	if err != nil {
		return nil, err
	}

	if p.tok.Type != TokEnd {
		release(root)
		if p.tok.Type == TokInvalid {
			return nil, p.invalid()
		}
		return nil, p.error(TrailingInput, issue.H{`token`: p.tok.String()})
	}
	return root, nil
}

func (p *parser) advance() {
	p.tok = p.lexer.Next()
}

func (p *parser) parseSum() (Node, error) {
	left, err := p.parseProduct(true)
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.tok.Type {
		case TokPlus:
			op = OpAdd
		case TokMinus:
			op = OpSub
		default:
			return left, nil
		}
		p.advance()

		right, err := p.parseProduct(false)
		if err != nil {
			release(left)
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseProduct(signed bool) (Node, error) {
	left, err := p.parseFactor(signed)
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.tok.Type {
		case TokMult:
			op = OpMul
		case TokDivide:
			op = OpDiv
		default:
			return left, nil
		}
		p.advance()

		right, err := p.parseFactor(false)
		if err != nil {
			release(left)
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseFactor(signed bool) (Node, error) {
	if !signed {
		return p.parsePrimary()
	}

	var op UnaryOp
	switch p.tok.Type {
	case TokPlus:
		op = OpPlus
	case TokMinus:
		op = OpMinus
	default:
		return p.parsePrimary()
	}
	p.advance()

	operand, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &Unary{Op: op, Operand: operand}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.tok.Type {
	case TokNumber:
		n := &Literal{Value: p.tok.Number}
		p.advance()
		return n, nil

	case TokOParen:
		p.advance()
		n, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.tok.Type != TokCParen {
			release(n)
			return nil, p.unclosed()
		}
		p.advance()
		return n, nil

	case TokIdent:
		name := p.tok.Value
		p.advance()
		if p.tok.Type != TokOParen {
			return &Variable{Name: name}, nil
		}
		p.advance()
		return p.parseCall(name)
	}

	return nil, p.unexpected(`a number, an identifier or '('`)
}

func (p *parser) parseCall(name string) (Node, error) {
	call := &Call{Name: name}
	if p.tok.Type == TokCParen {
		p.advance()
		return call, nil
	}

	for {
		arg, err := p.parseSum()
		if err != nil {
			release(call)
			return nil, err
		}
		call.Args[call.Arity] = arg
		call.Arity++

		switch p.tok.Type {
		case TokCParen:
			p.advance()
			return call, nil
		case TokComma:
			if call.Arity == MaxArity {
				release(call)
				return nil, p.error(TooManyArguments, issue.H{`name`: name, `max`: MaxArity})
			}
			p.advance()
		default:
			release(call)
			return nil, p.unclosed()
		}
	}
}

// errors

func (p *parser) error(code issue.Code, args issue.H) error {
	return issue.NewReported(code, issue.SEVERITY_ERROR, args, locate(p.input, p.tok.Pos))
}

func (p *parser) invalid() error {
	return p.error(InvalidCharacter, issue.H{`token`: p.tok.String()})
}

func (p *parser) unexpected(expected string) error {
	if p.tok.Type == TokInvalid {
		return p.invalid()
	}
	return p.error(UnexpectedToken, issue.H{`expected`: expected, `token`: p.tok.String()})
}

func (p *parser) unclosed() error {
	if p.tok.Type == TokInvalid {
		return p.invalid()
	}
	return p.error(UnclosedParenthesis, issue.H{`token`: p.tok.String()})
}

package meval

import (
	"strings"

	"github.com/lyraproj/issue/issue"
)

const (
	EmptyExpression     = `EXPR_EMPTY`
	InvalidCharacter    = `EXPR_INVALID_CHARACTER`
	UnexpectedToken     = `EXPR_UNEXPECTED_TOKEN`
	UnclosedParenthesis = `EXPR_UNCLOSED_PARENTHESIS`
	TooManyArguments    = `EXPR_TOO_MANY_ARGUMENTS`
	TrailingInput       = `EXPR_TRAILING_INPUT`

	InvalidBindingName  = `BINDING_INVALID_NAME`
	MissingBindingValue = `BINDING_MISSING_VALUE`

	BindingsParseError     = `BINDINGS_PARSE_ERROR`
	BindingsInvalidValue   = `BINDINGS_INVALID_VALUE`
	BindingsUnknownSection = `BINDINGS_UNKNOWN_SECTION`
)

func init() {
	issue.Hard(EmptyExpression, `expression is empty`)
	issue.Hard(InvalidCharacter, `invalid character %{token}`)
	issue.Hard(UnexpectedToken, `expected %{expected}, got %{token}`)
	issue.Hard(UnclosedParenthesis, `missing ')' before %{token}`)
	issue.Hard(TooManyArguments, `call to '%{name}' has more than %{max} arguments`)
	issue.Hard(TrailingInput, `unexpected %{token} after a complete expression`)

	issue.Hard(InvalidBindingName, `'%{name}' is not a valid %{section} name`)
	issue.Hard(MissingBindingValue, `%{section} '%{name}' is bound to nothing`)

	issue.Hard(BindingsParseError, `bindings are not valid YAML: %{detail}`)
	issue.Hard(BindingsInvalidValue, `%{section} '%{name}' must be a number, got %{value}`)
	issue.Hard(BindingsUnknownSection, `unknown bindings section '%{section}'`)
}

// IsParseError reports whether err was returned by Parse.
func IsParseError(err error) bool {
	r, ok := err.(issue.Reported)
	return ok && strings.HasPrefix(string(r.Code()), `EXPR_`)
}

// locate returns the 1-based line and column of offset in input.
func locate(input string, offset int) issue.Location {
	if offset > len(input) {
		offset = len(input)
	}
	before := input[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndexByte(before, '\n')
	return issue.NewLocation(``, line, col)
}

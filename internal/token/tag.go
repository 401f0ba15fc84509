package token

// Tag represents the category of a source token.
type Tag uint8

const (
	// Invalid is the zero Tag; no token should carry it past the lexer.
	Invalid Tag = iota
	// EOF marks the end of the source input.
	EOF

	// Name is an identifier, including backquoted identifiers.
	Name
	// Underscore is the lone `_` token.
	Underscore

	// KwAs is the 'as' keyword.
	KwAs
	// KwBreak is the 'break' keyword.
	KwBreak
	// KwCase is the 'case' keyword.
	KwCase
	// KwCatch is the 'catch' keyword.
	KwCatch
	// KwContinue is the 'continue' keyword.
	KwContinue
	// KwDefer is the 'defer' keyword.
	KwDefer
	// KwDo is the 'do' keyword.
	KwDo
	// KwElse is the 'else' keyword.
	KwElse
	// KwFor is the 'for' keyword.
	KwFor
	// KwFun is the 'fun' keyword.
	KwFun
	// KwIf is the 'if' keyword.
	KwIf
	// KwIs is the 'is' keyword.
	KwIs
	// KwImport is the 'import' keyword.
	KwImport
	// KwIn is the 'in' keyword.
	KwIn
	// KwInfix is the 'infix' keyword.
	KwInfix
	// KwInout is the 'inout' keyword.
	KwInout
	// KwLet is the 'let' keyword.
	KwLet
	// KwMatch is the 'match' keyword.
	KwMatch
	// KwPostfix is the 'postfix' keyword.
	KwPostfix
	// KwPrefix is the 'prefix' keyword.
	KwPrefix
	// KwReturn is the 'return' keyword.
	KwReturn
	// KwStruct is the 'struct' keyword.
	KwStruct
	// KwSubscript is the 'subscript' keyword.
	KwSubscript
	// KwThrow is the 'throw' keyword.
	KwThrow
	// KwTrait is the 'trait' keyword.
	KwTrait
	// KwTry is the 'try' keyword.
	KwTry
	// KwVar is the 'var' keyword.
	KwVar
	// KwWhere is the 'where' keyword.
	KwWhere
	// KwWhile is the 'while' keyword.
	KwWhile

	// BooleanLiteral is 'true' or 'false'.
	BooleanLiteral
	// IntegerLiteral is a decimal/hex/octal/binary integer literal.
	IntegerLiteral
	// FloatingPointLiteral is a literal with a fractional part or exponent.
	FloatingPointLiteral
	// StringLiteral is a double-quoted string literal.
	StringLiteral

	// Assign is the exact `=` token.
	Assign
	// ThickArrow is the exact `=>` token.
	ThickArrow
	// Operator is any other run of the operator alphabet (`<>=+-*/%&|!?^~`).
	Operator

	// Comma is `,`.
	Comma
	// Dot is `.`.
	Dot
	// Colon is `:`.
	Colon
	// Semicolon is `;`.
	Semicolon
	// At is `@`.
	At
	// Backslash is `\`.
	Backslash

	// LeftBracket is `[`.
	LeftBracket
	// RightBracket is `]`.
	RightBracket
	// LeftParenthesis is `(`.
	LeftParenthesis
	// RightParenthesis is `)`.
	RightParenthesis

	// Indentation is a synthetic token, one per column of new indentation.
	Indentation
	// Dedentation is a synthetic token, one per column of retreated indentation.
	Dedentation

	// Error marks an unrecognized character or malformed token.
	Error
	// UnterminatedBackquotedIdentifier marks a `` `...` `` with no closing backquote.
	UnterminatedBackquotedIdentifier
	// UnterminatedStringLiteral marks a `"...` with no closing quote.
	UnterminatedStringLiteral
)

// String returns a human-readable name for the tag, used in diagnostics
// ("unexpected token '<tag>'") and in tests.
func (t Tag) String() string {
	switch t {
	case Invalid:
		return "invalid"
	case EOF:
		return "end of file"
	case Name:
		return "name"
	case Underscore:
		return "underscore"
	case KwAs:
		return "'as'"
	case KwBreak:
		return "'break'"
	case KwCase:
		return "'case'"
	case KwCatch:
		return "'catch'"
	case KwContinue:
		return "'continue'"
	case KwDefer:
		return "'defer'"
	case KwDo:
		return "'do'"
	case KwElse:
		return "'else'"
	case KwFor:
		return "'for'"
	case KwFun:
		return "'fun'"
	case KwIf:
		return "'if'"
	case KwIs:
		return "'is'"
	case KwImport:
		return "'import'"
	case KwIn:
		return "'in'"
	case KwInfix:
		return "'infix'"
	case KwInout:
		return "'inout'"
	case KwLet:
		return "'let'"
	case KwMatch:
		return "'match'"
	case KwPostfix:
		return "'postfix'"
	case KwPrefix:
		return "'prefix'"
	case KwReturn:
		return "'return'"
	case KwStruct:
		return "'struct'"
	case KwSubscript:
		return "'subscript'"
	case KwThrow:
		return "'throw'"
	case KwTrait:
		return "'trait'"
	case KwTry:
		return "'try'"
	case KwVar:
		return "'var'"
	case KwWhere:
		return "'where'"
	case KwWhile:
		return "'while'"
	case BooleanLiteral:
		return "boolean literal"
	case IntegerLiteral:
		return "integer literal"
	case FloatingPointLiteral:
		return "floating-point literal"
	case StringLiteral:
		return "string literal"
	case Assign:
		return "'='"
	case ThickArrow:
		return "'=>'"
	case Operator:
		return "operator"
	case Comma:
		return "','"
	case Dot:
		return "'.'"
	case Colon:
		return "':'"
	case Semicolon:
		return "';'"
	case At:
		return "'@'"
	case Backslash:
		return "'\\'"
	case LeftBracket:
		return "'['"
	case RightBracket:
		return "']'"
	case LeftParenthesis:
		return "'('"
	case RightParenthesis:
		return "')'"
	case Indentation:
		return "indentation"
	case Dedentation:
		return "dedentation"
	case Error:
		return "error"
	case UnterminatedBackquotedIdentifier:
		return "unterminated backquoted identifier"
	case UnterminatedStringLiteral:
		return "unterminated string literal"
	default:
		return "unknown"
	}
}

// IsKeyword reports whether the tag is one of the reserved words in §6.2.
func (t Tag) IsKeyword() bool {
	switch t {
	case KwAs, KwBreak, KwCase, KwCatch, KwContinue, KwDefer, KwDo, KwElse, KwFor, KwFun,
		KwIf, KwIs, KwImport, KwIn, KwInfix, KwInout, KwLet, KwMatch, KwPostfix, KwPrefix,
		KwReturn, KwStruct, KwSubscript, KwThrow, KwTrait, KwTry, KwVar, KwWhere, KwWhile:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether the tag introduces a literal expression.
func (t Tag) IsLiteral() bool {
	switch t {
	case BooleanLiteral, IntegerLiteral, FloatingPointLiteral, StringLiteral:
		return true
	default:
		return false
	}
}

// IsLayout reports whether the tag is a synthetic indentation/dedentation token.
func (t Tag) IsLayout() bool {
	return t == Indentation || t == Dedentation
}

// IsError reports whether the tag represents a lexical error.
func (t Tag) IsError() bool {
	switch t {
	case Error, UnterminatedBackquotedIdentifier, UnterminatedStringLiteral:
		return true
	default:
		return false
	}
}

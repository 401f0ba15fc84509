package diag

import "fmt"

// Code identifies the kind of a diagnostic, grouped by pipeline stage per
// the error taxonomy of §7.
type Code uint16

const (
	Unknown Code = 0

	// Lexical (§7 "Lexical").
	LexError                     Code = 1001
	LexUnterminatedString        Code = 1002
	LexUnterminatedBackquoted    Code = 1003

	// Parse (§7 "Parse").
	ParseExpected              Code = 2001
	ParseUnexpectedToken       Code = 2002
	ParseConsecutiveStatements Code = 2003
	ParseDedentMismatch        Code = 2004
	ParseUnaryOperatorSplit    Code = 2005

	// Lowering / semantic (§7 "Lowering/semantic").
	LowerUndefinedSymbol      Code = 3001
	LowerIntegerOutOfRange    Code = 3002
	LowerMissingImplementation Code = 3003
	LowerInvalidYield         Code = 3004

	// IR analysis (§7 "IR analysis").
	AnalysisExtraneousYield Code = 4001
	AnalysisMissingYield    Code = 4002

	// Program orchestration (load, imports; ambient, not part of §7's core
	// taxonomy, but reported through the same Bag).
	ProgramIOError       Code = 5001
	ProgramImportCycle   Code = 5002
	ProgramImportMissing Code = 5003
)

var titles = map[Code]string{
	Unknown:                     "unknown diagnostic",
	LexError:                    "lexical error",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBackquoted:   "unterminated backquoted identifier",
	ParseExpected:               "expected token",
	ParseUnexpectedToken:        "unexpected token",
	ParseConsecutiveStatements:  "consecutive statements on a line must be separated by ';'",
	ParseDedentMismatch:         "dedendation does not match the current indentation",
	ParseUnaryOperatorSplit:     "unary operator cannot be separated from its operand",
	LowerUndefinedSymbol:        "undefined symbol",
	LowerIntegerOutOfRange:      "integer literal cannot be represented as a 64-bit signed integer",
	LowerMissingImplementation:  "declaration requires an implementation",
	LowerInvalidYield:           "'yield' can only occur in a subscript",
	AnalysisExtraneousYield:     "subscript cannot project more than once",
	AnalysisMissingYield:        "subscript must yield before returning",
	ProgramIOError:              "failed to load source file",
	ProgramImportCycle:          "import cycle detected",
	ProgramImportMissing:        "import could not be resolved to a file",
}

// ID renders a stable short code ("LEX1002", "PRS2004", ...) used in tests
// and by String. The GNU-format diagnostic text of §6.4 does not include it.
func (c Code) ID() string {
	switch n := int(c); {
	case n >= 1000 && n < 2000:
		return fmt.Sprintf("LEX%04d", n)
	case n >= 2000 && n < 3000:
		return fmt.Sprintf("PRS%04d", n)
	case n >= 3000 && n < 4000:
		return fmt.Sprintf("LWR%04d", n)
	case n >= 4000 && n < 5000:
		return fmt.Sprintf("IRA%04d", n)
	case n >= 5000 && n < 6000:
		return fmt.Sprintf("PRG%04d", n)
	default:
		return "E0000"
	}
}

// Title returns the human-readable description registered for the code.
func (c Code) Title() string {
	if t, ok := titles[c]; ok {
		return t
	}
	return titles[Unknown]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s] %s", c.ID(), c.Title())
}

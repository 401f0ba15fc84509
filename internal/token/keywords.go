package token

// keywords is the reserved-word table of §6.2. Case-sensitive: only exact
// lowercase spellings are recognized; case is never folded.
var keywords = map[string]Tag{
	"as":        KwAs,
	"break":     KwBreak,
	"case":      KwCase,
	"catch":     KwCatch,
	"continue":  KwContinue,
	"defer":     KwDefer,
	"do":        KwDo,
	"else":      KwElse,
	"for":       KwFor,
	"fun":       KwFun,
	"if":        KwIf,
	"is":        KwIs,
	"import":    KwImport,
	"in":        KwIn,
	"infix":     KwInfix,
	"inout":     KwInout,
	"let":       KwLet,
	"match":     KwMatch,
	"postfix":   KwPostfix,
	"prefix":    KwPrefix,
	"return":    KwReturn,
	"struct":    KwStruct,
	"subscript": KwSubscript,
	"throw":     KwThrow,
	"trait":     KwTrait,
	"try":       KwTry,
	"var":       KwVar,
	"where":     KwWhere,
	"while":     KwWhile,
}

// LookupKeyword returns the tag for an identifier spelling that is either a
// reserved word or a boolean literal, and whether one was found.
func LookupKeyword(ident string) (Tag, bool) {
	if ident == "true" || ident == "false" {
		return BooleanLiteral, true
	}
	tag, ok := keywords[ident]
	return tag, ok
}

package token

var keywords = map[string]Kind{
	"let":   KwLet,
	"rec":   KwRec,
	"in":    KwIn,
	"if":    KwIf,
	"then":  KwThen,
	"elif":  KwElif,
	"else":  KwElse,
	"match": KwMatch,
	"with":  KwWith,
	"fun":   KwFun,
	"type":  KwType,
	"open":  KwOpen,
	"of":    KwOf,
	"not":   KwNot,
	"true":  BoolLit,
	"false": BoolLit,
}

// LookupKeyword returns the keyword (or BoolLit) kind for an identifier
// spelling, or Ident when the spelling is not reserved.
func LookupKeyword(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}

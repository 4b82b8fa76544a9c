// Package token defines the lexical vocabulary of the Lume language:
// significant token kinds, the token structure itself, and the trivia kinds
// (comments, whitespace runs, conditional-compilation directives) that the
// lexer collects alongside the significant stream.
package token

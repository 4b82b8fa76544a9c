package diag

import (
	"fmt"
)

// Code identifies a diagnostic family. Lexical codes live in the 1000 range,
// syntactic in 2000, formatting in 3000, I/O in 9000.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedDirective    Code = 1005
	LexUnknownDirective         Code = 1006
	LexDanglingDirective        Code = 1007

	// Syntactic
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectPattern      Code = 2004
	SynExpectType         Code = 2005
	SynExpectExpression   Code = 2006
	SynUnexpectedTopLevel Code = 2007
	SynEmptyMatch         Code = 2008
	SynBadRecordField     Code = 2009

	// Formatting
	FmtParseFailed          Code = 3001
	FmtUnsupportedConstruct Code = 3002
	FmtTriviaInvariant      Code = 3003
	FmtMalformedTrivia      Code = 3004
	FmtNotIdempotent        Code = 3005

	// I/O
	IOLoadFileError Code = 9001
)

func (c Code) String() string {
	switch {
	case c >= 9000:
		return fmt.Sprintf("IO%04d", uint16(c))
	case c >= 3000:
		return fmt.Sprintf("FMT%04d", uint16(c))
	case c >= 2000:
		return fmt.Sprintf("SYN%04d", uint16(c))
	case c >= 1000:
		return fmt.Sprintf("LEX%04d", uint16(c))
	}
	return fmt.Sprintf("E%04d", uint16(c))
}

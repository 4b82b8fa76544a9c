package trivia

import (
	"lumefmt/internal/source"
)

// AnchorKind distinguishes tree-node anchors from bare-token anchors.
// Token anchors exist because some trivia sits between two tokens inside
// one node, such as a comment after 'then'.
type AnchorKind uint8

const (
	AnchorNode AnchorKind = iota
	AnchorToken
)

// Anchor identifies what a trivia run attaches to. Lookup is by exact
// span equality.
type Anchor struct {
	Kind AnchorKind
	Span source.Span
}

// NodeAnchor keys trivia to a syntax-tree node by its exact span.
func NodeAnchor(sp source.Span) Anchor {
	return Anchor{Kind: AnchorNode, Span: sp}
}

// TokenAnchor keys trivia to a specific keyword or punctuation token.
func TokenAnchor(sp source.Span) Anchor {
	return Anchor{Kind: AnchorToken, Span: sp}
}

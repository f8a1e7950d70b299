// File: regex/ast.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Parse tree. Nodes are a closed tagged variant: one struct with a Kind
// discriminator, matching on which replaces virtual dispatch.

package regex

// NodeKind discriminates AST node variants.
type NodeKind uint8

const (
	NodeLiteral NodeKind = iota
	NodeDot
	NodeClass
	NodeStartAnchor
	NodeEndAnchor
	NodeGroup
	NodeAlternation
	NodeQuantified
	NodeBackref
)

// ClassMember is a single byte (Lo == Hi) or an inclusive byte range.
type ClassMember struct {
	Lo, Hi byte
}

// contains reports whether b satisfies the member.
func (m ClassMember) contains(b byte) bool {
	return b >= m.Lo && b <= m.Hi
}

// CharClass is a bracket expression: an ordered member list with an
// optional leading negation.
type CharClass struct {
	Negated bool
	Members []ClassMember
}

// contains reports whether b is matched by the class, negation included.
func (c *CharClass) contains(b byte) bool {
	in := false
	for _, m := range c.Members {
		if m.contains(b) {
			in = true
			break
		}
	}
	return in != c.Negated
}

// Quantifier bounds a repetition. Max < 0 means unbounded.
type Quantifier struct {
	Min    int
	Max    int
	Greedy bool
}

// Branch is one alternative of an alternation: an ordered node sequence.
type Branch []*Node

// Alternation is an ordered list of branches tried in source order.
type Alternation struct {
	Branches []Branch
}

// Node is one AST vertex. Which fields are meaningful depends on Kind:
//
//	NodeLiteral      Lit
//	NodeClass        Class
//	NodeGroup        GroupIndex (1-based), Sub
//	NodeAlternation  Sub
//	NodeQuantified   Quant, Inner
//	NodeBackref      GroupIndex (referenced group)
type Node struct {
	Kind       NodeKind
	Lit        byte
	Class      *CharClass
	Sub        *Alternation
	GroupIndex int
	Quant      Quantifier
	Inner      *Node
}

// classW is the expansion of \w: [a-zA-Z0-9_].
func classW() *CharClass {
	return &CharClass{Members: []ClassMember{
		{'a', 'z'}, {'A', 'Z'}, {'0', '9'}, {'_', '_'},
	}}
}

// classD is the expansion of \d: [0-9].
func classD() *CharClass {
	return &CharClass{Members: []ClassMember{{'0', '9'}}}
}

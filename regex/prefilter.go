// File: regex/prefilter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Literal-alternation fast path. A pattern whose branches are all plain
// literal sequences (no groups, anchors, classes or quantifiers) is exactly
// a multi-substring search, so matching is delegated to an Aho-Corasick
// automaton instead of the backtracker.

package regex

import "github.com/coregx/ahocorasick"

// buildPrefilter returns an automaton over the branch literals, or nil when
// the pattern does not qualify. Single-branch patterns stay on the
// backtracker; the automaton pays off on multi-literal alternations.
func buildPrefilter(alt *Alternation) *ahocorasick.Automaton {
	if len(alt.Branches) < 2 {
		return nil
	}
	lits, ok := literalBranches(alt)
	if !ok {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return auto
}

// literalBranches flattens each branch into its byte string when every node
// in every branch is a literal.
func literalBranches(alt *Alternation) ([][]byte, bool) {
	lits := make([][]byte, 0, len(alt.Branches))
	for _, branch := range alt.Branches {
		lit := make([]byte, 0, len(branch))
		for _, node := range branch {
			if node.Kind != NodeLiteral {
				return nil, false
			}
			lit = append(lit, node.Lit)
		}
		lits = append(lits, lit)
	}
	return lits, true
}

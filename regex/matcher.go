// File: regex/matcher.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Backtracking matcher. Branches and quantifier steps snapshot the cursor
// (position plus capture table) before each attempt and restore it when the
// attempt is abandoned, so captures never leak out of a failed branch.

package regex

// capSpan records the most recent span captured by a group within the
// current match attempt. ok distinguishes "captured empty" from "never
// captured".
type capSpan struct {
	lo, hi int
	ok     bool
}

// cursor is the mutable state of one match attempt over an input.
type cursor struct {
	input []byte
	pos   int
	caps  []capSpan
}

// checkpoint is a full cursor snapshot. Captures are spans into the input,
// so the copy is O(number of groups).
type checkpoint struct {
	pos  int
	caps []capSpan
}

func (c *cursor) save() checkpoint {
	return checkpoint{pos: c.pos, caps: append([]capSpan(nil), c.caps...)}
}

func (c *cursor) restore(cp checkpoint) {
	c.pos = cp.pos
	copy(c.caps, cp.caps)
}

// Matches reports whether the pattern matches anywhere in input. Search
// semantics: every start position from 0 through len(input) is attempted
// with a fresh cursor.
func (re *Regex) Matches(input []byte) bool {
	if re.prefilter != nil {
		return re.prefilter.IsMatch(input)
	}
	c := &cursor{input: input, caps: make([]capSpan, re.groupCount)}
	for start := 0; start <= len(input); start++ {
		c.pos = start
		for i := range c.caps {
			c.caps[i] = capSpan{}
		}
		if matchAlternation(c, &re.root) {
			return true
		}
	}
	return false
}

// matchAlternation tries each branch in source order. A failed branch has
// its cursor effects undone before the next branch is attempted; overall
// failure leaves the cursor as it was on entry.
func matchAlternation(c *cursor, alt *Alternation) bool {
	cp := c.save()
	for _, branch := range alt.Branches {
		if matchSeq(c, branch, 0) {
			return true
		}
		c.restore(cp)
	}
	return false
}

// matchSeq matches branch[idx:] against the cursor. Quantified atoms are
// expanded here because the repetition count is chosen against the
// continuation of the same branch.
func matchSeq(c *cursor, branch Branch, idx int) bool {
	if idx == len(branch) {
		return true
	}
	node := branch[idx]
	if node.Kind == NodeQuantified {
		return matchQuantified(c, node, branch, idx)
	}
	if !matchAtom(c, node) {
		return false
	}
	return matchSeq(c, branch, idx+1)
}

// matchQuantified collects every cursor state reachable by repeating the
// inner atom up to the maximum (stopping early once a repetition consumes
// nothing), then tries the branch continuation from the longest repetition
// down to the minimum. Non-greedy quantifiers probe from the minimum
// upward; the parser never emits them yet, but the matcher honors the flag.
func matchQuantified(c *cursor, node *Node, branch Branch, idx int) bool {
	q := node.Quant
	states := []checkpoint{c.save()}
	for q.Max < 0 || len(states)-1 < q.Max {
		before := c.pos
		cp := c.save()
		if !matchAtom(c, node.Inner) {
			c.restore(cp)
			break
		}
		states = append(states, c.save())
		if c.pos == before {
			break
		}
	}
	count := len(states) - 1
	if count < q.Min {
		c.restore(states[0])
		return false
	}
	if q.Greedy {
		for k := count; k >= q.Min; k-- {
			c.restore(states[k])
			if matchSeq(c, branch, idx+1) {
				return true
			}
		}
	} else {
		for k := q.Min; k <= count; k++ {
			c.restore(states[k])
			if matchSeq(c, branch, idx+1) {
				return true
			}
		}
	}
	c.restore(states[0])
	return false
}

// matchAtom evaluates a single non-quantified atom. On failure the cursor
// is left unchanged.
func matchAtom(c *cursor, node *Node) bool {
	switch node.Kind {
	case NodeLiteral:
		if c.pos < len(c.input) && c.input[c.pos] == node.Lit {
			c.pos++
			return true
		}
		return false

	case NodeDot:
		// Any byte, newline included; only explicit anchors are
		// line-sensitive.
		if c.pos < len(c.input) {
			c.pos++
			return true
		}
		return false

	case NodeClass:
		if c.pos < len(c.input) && node.Class.contains(c.input[c.pos]) {
			c.pos++
			return true
		}
		return false

	case NodeStartAnchor:
		return c.pos == 0 || c.input[c.pos-1] == '\n'

	case NodeEndAnchor:
		return c.pos == len(c.input) || c.input[c.pos] == '\n'

	case NodeGroup:
		start := c.pos
		if !matchAlternation(c, node.Sub) {
			return false
		}
		c.caps[node.GroupIndex-1] = capSpan{lo: start, hi: c.pos, ok: true}
		return true

	case NodeAlternation:
		return matchAlternation(c, node.Sub)

	case NodeBackref:
		span := c.caps[node.GroupIndex-1]
		if !span.ok {
			// The group has not captured yet in this attempt: no match,
			// not an error.
			return false
		}
		ref := c.input[span.lo:span.hi]
		if len(c.input)-c.pos < len(ref) {
			return false
		}
		for i, b := range ref {
			if c.input[c.pos+i] != b {
				return false
			}
		}
		c.pos += len(ref)
		return true
	}
	return false
}

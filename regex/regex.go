// File: regex/regex.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package regex

import (
	"github.com/coregx/ahocorasick"
)

// Regex is a compiled pattern: the root alternation plus its capture-group
// count, and an optional literal prefilter. A Regex is immutable after
// Compile and safe to share across goroutines.
type Regex struct {
	pattern    string
	root       Alternation
	groupCount int
	prefilter  *ahocorasick.Automaton
}

// Compile tokenizes and parses a pattern.
func Compile(pattern string) (*Regex, error) {
	toks, err := Tokenize([]byte(pattern))
	if err != nil {
		return nil, err
	}
	re, err := Parse(toks)
	if err != nil {
		return nil, err
	}
	re.pattern = pattern
	return re, nil
}

// MustCompile is Compile that panics on an invalid pattern. Intended for
// package-level patterns known to be well-formed.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// MatchString is Matches over a string.
func (re *Regex) MatchString(s string) bool {
	return re.Matches([]byte(s))
}

// Pattern returns the source pattern.
func (re *Regex) Pattern() string {
	return re.pattern
}

// GroupCount returns the number of capture groups in the pattern.
func (re *Regex) GroupCount() int {
	return re.groupCount
}

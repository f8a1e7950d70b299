// File: regex/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package regex implements a byte-oriented backtracking regular-expression
// engine: a tokenizer, a recursive-descent parser producing an alternation
// tree, and a matcher with capture-group tracking and numeric
// back-references.
//
// Supported syntax:
//
//	literal bytes, '.'
//	character classes: [abc], [^abc], [a-z0-9], \w and \d inline
//	anchors: ^ and $
//	quantifiers: * + ? (greedy)
//	alternation: a|b
//	capture groups: (...), indexed from 1 in parse order
//	back-references: \1 through \9
//
// Matching is unanchored search: the pattern may match at any position of
// the input. The engine works on raw bytes and is not Unicode-aware.
//
// Basic usage:
//
//	re, err := regex.Compile(`(\w+) and \1`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.Matches([]byte("cat and cat")) // true
//
// A compiled Regex is immutable and safe to share across goroutines; every
// match attempt runs on its own cursor.
package regex

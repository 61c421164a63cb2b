package annotate

import (
	"strings"

	"github.com/toschema/toschema/internal/rust"
)

// TypeScanner reports whether a type expression references any of the
// configured problematic type fragments.
type TypeScanner struct {
	patterns []string
}

// NewTypeScanner canonicalizes the pattern list once up front.
func NewTypeScanner(patterns []string) *TypeScanner {
	canon := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if c := rust.Canon(p); c != "" {
			canon = append(canon, c)
		}
	}
	return &TypeScanner{patterns: canon}
}

// HasProblematic walks the type expression and its nested type parameters,
// matching each canonical rendering against the pattern list and stopping at
// the first hit. Matching is substring-based over the written type name: a
// name that merely contains a fragment is excluded, and an alias that expands
// to a blocked type is not caught.
func (s *TypeScanner) HasProblematic(t rust.TypeExpr) bool {
	text := t.Canonical()
	for _, pattern := range s.patterns {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	for _, arg := range t.TypeArguments() {
		if s.HasProblematic(arg) {
			return true
		}
	}
	return false
}

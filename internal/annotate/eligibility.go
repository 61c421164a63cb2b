package annotate

import (
	"strings"

	"github.com/toschema/toschema/internal/policy"
	"github.com/toschema/toschema/internal/rust"
)

// Analyzer decides whether a declaration should receive the schema derive.
type Analyzer struct {
	qualified   string
	unqualified string
	skip        map[string]bool
	scanner     *TypeScanner
}

// NewAnalyzer builds an analyzer from a fixed policy.
func NewAnalyzer(p policy.Policy) *Analyzer {
	skip := make(map[string]bool, len(p.SkipTypes))
	for _, name := range p.SkipTypes {
		skip[name] = true
	}
	return &Analyzer{
		qualified:   rust.Canon(p.Annotation),
		unqualified: p.Unqualified(),
		skip:        skip,
		scanner:     NewTypeScanner(p.ProblematicTypes),
	}
}

// Eligible reports whether decl may be annotated: its name is not on the skip
// list, it does not already carry the derive, and none of its field types are
// problematic. An enum with a problematic field in any variant is excluded as
// a whole.
func (a *Analyzer) Eligible(decl rust.Decl) bool {
	if a.skip[decl.Name()] {
		return false
	}
	if a.alreadyAnnotated(decl) {
		return false
	}
	switch decl.Kind() {
	case rust.KindStruct:
		for _, field := range decl.Fields() {
			if a.scanner.HasProblematic(field.Type) {
				return false
			}
		}
	case rust.KindEnum:
		for _, variant := range decl.Variants() {
			for _, field := range variant.Fields {
				if a.scanner.HasProblematic(field.Type) {
					return false
				}
			}
		}
	}
	return true
}

// alreadyAnnotated checks every existing derive entry against the qualified
// spelling, the bare trait name, and any other path ending in the trait name.
func (a *Analyzer) alreadyAnnotated(decl rust.Decl) bool {
	for _, attr := range decl.Attributes() {
		for _, entry := range attr.DeriveEntries() {
			if entry == a.qualified || entry == a.unqualified {
				return true
			}
			if strings.HasSuffix(entry, "::"+a.unqualified) {
				return true
			}
		}
	}
	return false
}

package annotate

import (
	"sort"

	"github.com/toschema/toschema/internal/rust"
)

// Edit is one pending text insertion at a byte offset.
type Edit struct {
	Offset int
	Text   string
}

// Inserter computes the insertion edit for eligible declarations.
type Inserter struct {
	directive string
}

// NewInserter takes the rendered attribute line, e.g.
// "#[derive(utoipa::ToSchema)]".
func NewInserter(directive string) *Inserter {
	return &Inserter{directive: directive}
}

// Edit places the directive directly after the last existing derive
// attribute. A declaration with no derive gets the directive ahead of its
// whole attribute block, or directly above the declaration itself when it
// carries no attributes at all. Indentation follows the anchor line so
// declarations nested in mod blocks render correctly.
func (ins *Inserter) Edit(decl rust.Decl, src []byte) Edit {
	attrs := decl.Attributes()

	lastDerive := -1
	for i, attr := range attrs {
		if attr.IsDerive() {
			lastDerive = i
		}
	}
	if lastDerive != -1 {
		anchor := attrs[lastDerive]
		indent := lineIndent(src, anchor.StartByte())
		return Edit{Offset: anchor.EndByte(), Text: "\n" + indent + ins.directive}
	}

	offset := decl.StartByte()
	if len(attrs) > 0 {
		offset = attrs[0].StartByte()
	}
	indent := lineIndent(src, offset)
	return Edit{Offset: offset, Text: ins.directive + "\n" + indent}
}

// applyEdits splices insertions back-to-front so earlier offsets stay valid.
func applyEdits(src []byte, edits []Edit) []byte {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset > sorted[j].Offset
	})

	grown := len(src)
	for _, e := range sorted {
		grown += len(e.Text)
	}
	out := make([]byte, len(src), grown)
	copy(out, src)
	for _, e := range sorted {
		out = append(out[:e.Offset], append([]byte(e.Text), out[e.Offset:]...)...)
	}
	return out
}

// lineIndent returns the leading whitespace of the line containing offset.
func lineIndent(src []byte, offset int) string {
	start := offset
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}

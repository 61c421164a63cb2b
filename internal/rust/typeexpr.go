package rust

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
)

// TypeExpr is a read-only view over one type expression node.
type TypeExpr struct {
	node *sitter.Node
	src  []byte
}

// Text returns the type's source text as written.
func (t TypeExpr) Text() string {
	return t.node.Content(t.src)
}

// Canonical returns the type's source text with all whitespace removed, the
// form used for pattern matching.
func (t TypeExpr) Canonical() string {
	return Canon(t.Text())
}

// typeNodeKinds are the node types that represent a type expression.
var typeNodeKinds = map[string]bool{
	"type_identifier":        true,
	"scoped_type_identifier": true,
	"generic_type":           true,
	"reference_type":         true,
	"pointer_type":           true,
	"array_type":             true,
	"tuple_type":             true,
	"primitive_type":         true,
	"function_type":          true,
	"dynamic_type":           true,
	"abstract_type":          true,
	"qualified_type":         true,
	"unit_type":              true,
	"never_type":             true,
}

// TypeArguments returns the nested type parameters of a parameterized or
// compound type: the T of Vec<T> or &T, the element of an array or slice,
// every element of a tuple. Plain named types yield none.
func (t TypeExpr) TypeArguments() []TypeExpr {
	var args []TypeExpr
	switch t.node.Type() {
	case "generic_type":
		if list := t.node.ChildByFieldName("type_arguments"); list != nil {
			args = t.collectTypeChildren(list, args)
		}
	case "reference_type", "pointer_type":
		if inner := t.node.ChildByFieldName("type"); inner != nil {
			args = append(args, TypeExpr{node: inner, src: t.src})
		}
	case "array_type":
		if element := t.node.ChildByFieldName("element"); element != nil {
			args = append(args, TypeExpr{node: element, src: t.src})
		}
	case "tuple_type", "dynamic_type", "abstract_type":
		args = t.collectTypeChildren(t.node, args)
	}
	return args
}

func (t TypeExpr) collectTypeChildren(node *sitter.Node, args []TypeExpr) []TypeExpr {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if typeNodeKinds[child.Type()] {
			args = append(args, TypeExpr{node: child, src: t.src})
		}
	}
	return args
}

// Canon strips all whitespace from s. Both type expressions and the patterns
// matched against them are compared in this form.
func Canon(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

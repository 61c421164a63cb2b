package rust

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// DeclKind distinguishes the two annotatable declaration shapes.
type DeclKind int

const (
	KindStruct DeclKind = iota
	KindEnum
)

func (k DeclKind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	}
	return "unknown"
}

// Decl is a read-only view over one struct or enum declaration.
type Decl struct {
	node *sitter.Node
	src  []byte
	kind DeclKind
}

// Name returns the declared type name.
func (d Decl) Name() string {
	name := d.node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Content(d.src)
}

// Kind reports whether the declaration is a struct or an enum.
func (d Decl) Kind() DeclKind {
	return d.kind
}

// StartByte returns the byte offset of the declaration itself, excluding any
// attributes or doc comments above it.
func (d Decl) StartByte() int {
	return int(d.node.StartByte())
}

// Attributes returns the contiguous run of #[...] attribute items directly
// above the declaration, in source order. Doc comments may sit between
// attributes and do not break the run.
func (d Decl) Attributes() []Attribute {
	var attrs []Attribute
	for sib := d.node.PrevNamedSibling(); sib != nil; sib = sib.PrevNamedSibling() {
		switch sib.Type() {
		case "attribute_item":
			attrs = append(attrs, Attribute{node: sib, src: d.src})
		case "line_comment", "block_comment":
			// part of the declaration's doc block, keep scanning
		default:
			reverse(attrs)
			return attrs
		}
	}
	reverse(attrs)
	return attrs
}

// Fields returns the fields of a struct declaration. Tuple structs yield
// unnamed fields; unit structs and enums yield none.
func (d Decl) Fields() []Field {
	if d.kind != KindStruct {
		return nil
	}
	return fieldsFromBody(d.node.ChildByFieldName("body"), d.src)
}

// Variants returns the variants of an enum declaration, each with its own
// field list.
func (d Decl) Variants() []Variant {
	if d.kind != KindEnum {
		return nil
	}
	body := d.node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var variants []Variant
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() != "enum_variant" {
			continue
		}
		v := Variant{}
		if name := child.ChildByFieldName("name"); name != nil {
			v.Name = name.Content(d.src)
		}
		v.Fields = fieldsFromBody(child.ChildByFieldName("body"), d.src)
		variants = append(variants, v)
	}
	return variants
}

// Field is one declared field; Name is empty for tuple fields.
type Field struct {
	Name string
	Type TypeExpr
}

// Variant is one enum variant and its fields.
type Variant struct {
	Name   string
	Fields []Field
}

func fieldsFromBody(body *sitter.Node, src []byte) []Field {
	if body == nil {
		return nil
	}
	var fields []Field
	switch body.Type() {
	case "field_declaration_list":
		for i := 0; i < int(body.NamedChildCount()); i++ {
			child := body.NamedChild(i)
			if child.Type() != "field_declaration" {
				continue
			}
			typeNode := child.ChildByFieldName("type")
			if typeNode == nil {
				continue
			}
			field := Field{Type: TypeExpr{node: typeNode, src: src}}
			if name := child.ChildByFieldName("name"); name != nil {
				field.Name = name.Content(src)
			}
			fields = append(fields, field)
		}
	case "ordered_field_declaration_list":
		for i := 0; i < int(body.NamedChildCount()); i++ {
			child := body.NamedChild(i)
			if !typeNodeKinds[child.Type()] {
				continue
			}
			fields = append(fields, Field{Type: TypeExpr{node: child, src: src}})
		}
	}
	return fields
}

// Attribute is one #[...] item attached to a declaration.
type Attribute struct {
	node *sitter.Node
	src  []byte
}

// Text returns the attribute's source text.
func (a Attribute) Text() string {
	return a.node.Content(a.src)
}

// StartByte returns the byte offset where the attribute begins.
func (a Attribute) StartByte() int {
	return int(a.node.StartByte())
}

// EndByte returns the byte offset just past the attribute.
func (a Attribute) EndByte() int {
	return int(a.node.EndByte())
}

// IsDerive reports whether the attribute is a #[derive(...)] item.
func (a Attribute) IsDerive() bool {
	return strings.HasPrefix(Canon(a.Text()), "#[derive(")
}

// DeriveEntries returns the whitespace-free entries of a derive attribute's
// argument list, e.g. ["Debug", "serde::Serialize"]. Non-derive attributes
// yield none.
func (a Attribute) DeriveEntries() []string {
	if !a.IsDerive() {
		return nil
	}
	text := Canon(a.Text())
	text = strings.TrimPrefix(text, "#[derive(")
	text = strings.TrimSuffix(text, ")]")
	var entries []string
	for _, entry := range strings.Split(text, ",") {
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func reverse(attrs []Attribute) {
	for i, j := 0, len(attrs)-1; i < j; i, j = i+1, j-1 {
		attrs[i], attrs[j] = attrs[j], attrs[i]
	}
}

package rust

import (
	"context"
	"errors"

	sitter "github.com/smacker/go-tree-sitter"
	grammar "github.com/smacker/go-tree-sitter/rust"
)

// ErrSyntax indicates that the source text did not parse cleanly.
var ErrSyntax = errors.New("source contains syntax errors")

// Parser parses Rust source text into a concrete syntax tree.
type Parser struct {
	inner *sitter.Parser
}

// NewParser creates a parser bound to the Rust grammar.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(grammar.GetLanguage())
	return &Parser{inner: p}
}

// Parse builds the syntax tree for content. Trees containing error nodes are
// rejected: a file we cannot fully parse is never rewritten.
func (p *Parser) Parse(content []byte) (*File, error) {
	tree, err := p.inner.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, ErrSyntax
	}
	return &File{tree: tree, src: content}, nil
}

// File is one parsed source file. Close releases the underlying tree; Decl,
// Attribute and TypeExpr values must not be used after that.
type File struct {
	tree *sitter.Tree
	src  []byte
}

// Close releases the parse tree.
func (f *File) Close() {
	f.tree.Close()
}

// Source returns the bytes the file was parsed from.
func (f *File) Source() []byte {
	return f.src
}

// Decls returns every struct and enum declaration in the file in document
// order, including declarations nested inside mod blocks.
func (f *File) Decls() []Decl {
	decls := make([]Decl, 0)
	collectDecls(f.tree.RootNode(), f.src, &decls)
	return decls
}

func collectDecls(node *sitter.Node, src []byte, out *[]Decl) {
	switch node.Type() {
	case "struct_item":
		*out = append(*out, Decl{node: node, src: src, kind: KindStruct})
	case "enum_item":
		*out = append(*out, Decl{node: node, src: src, kind: KindEnum})
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectDecls(node.NamedChild(i), src, out)
	}
}

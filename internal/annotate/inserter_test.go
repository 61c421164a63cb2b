package annotate

import (
	"testing"

	"github.com/toschema/toschema/internal/rust"
)

const testDirective = "#[derive(utoipa::ToSchema)]"

func annotateAll(t *testing.T, src string) string {
	t.Helper()
	file, err := rust.NewParser().Parse([]byte(src))
	if err != nil {
		t.Fatalf("failed to parse source: %v", err)
	}
	t.Cleanup(file.Close)

	inserter := NewInserter(testDirective)
	var edits []Edit
	for _, decl := range file.Decls() {
		edits = append(edits, inserter.Edit(decl, []byte(src)))
	}
	return string(applyEdits([]byte(src), edits))
}

func TestInsertAfterLastDerive(t *testing.T) {
	src := `#[derive(Debug)]
#[derive(Clone)]
#[serde(default)]
pub struct Widget {
    pub id: String,
}
`
	want := `#[derive(Debug)]
#[derive(Clone)]
#[derive(utoipa::ToSchema)]
#[serde(default)]
pub struct Widget {
    pub id: String,
}
`
	if got := annotateAll(t, src); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestInsertAboveDeclarationWithoutAttributes(t *testing.T) {
	src := `pub struct Plain {
    pub id: String,
}
`
	want := `#[derive(utoipa::ToSchema)]
pub struct Plain {
    pub id: String,
}
`
	if got := annotateAll(t, src); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestInsertAheadOfNonDeriveAttributes(t *testing.T) {
	src := `#[serde(rename_all = "snake_case")]
pub struct Tagged {
    pub id: String,
}
`
	want := `#[derive(utoipa::ToSchema)]
#[serde(rename_all = "snake_case")]
pub struct Tagged {
    pub id: String,
}
`
	if got := annotateAll(t, src); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestInsertKeepsDocCommentsAbove(t *testing.T) {
	src := `/// A widget.
pub struct Documented {
    pub id: String,
}
`
	want := `/// A widget.
#[derive(utoipa::ToSchema)]
pub struct Documented {
    pub id: String,
}
`
	if got := annotateAll(t, src); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestInsertPreservesIndentationInsideMod(t *testing.T) {
	src := `mod api {
    #[derive(Debug)]
    pub struct Inner {
        pub value: u32,
    }
}
`
	want := `mod api {
    #[derive(Debug)]
    #[derive(utoipa::ToSchema)]
    pub struct Inner {
        pub value: u32,
    }
}
`
	if got := annotateAll(t, src); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestApplyEditsHandlesMultipleDeclarations(t *testing.T) {
	src := `pub struct First {
    pub a: u32,
}

#[derive(Debug)]
pub struct Second {
    pub b: u32,
}
`
	want := `#[derive(utoipa::ToSchema)]
pub struct First {
    pub a: u32,
}

#[derive(Debug)]
#[derive(utoipa::ToSchema)]
pub struct Second {
    pub b: u32,
}
`
	if got := annotateAll(t, src); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

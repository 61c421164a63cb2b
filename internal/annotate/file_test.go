package annotate

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toschema/toschema/internal/policy"
)

const catalogSource = `use std::sync::Arc;

/// A reusable request widget.
#[derive(Debug, Clone)]
pub struct Widget {
    pub id: String,
    pub tag: CustomEnum,
}

/// Raw payload, not representable.
#[derive(Debug, Clone)]
pub struct Blob {
    pub payload: Arc<Bytes>,
}
`

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(content)
}

func TestProcessAnnotatesEligibleDeclarations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.rs")
	mustWriteFile(t, path, catalogSource)

	pol := policy.Default()
	proc := NewFileProcessor(pol, false)

	modified, err := proc.Process(path)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !modified {
		t.Fatalf("expected file to be modified")
	}

	content := mustReadFile(t, path)
	if got := strings.Count(content, pol.Directive()); got != 1 {
		t.Fatalf("expected exactly 1 inserted directive, got %d:\n%s", got, content)
	}
	if strings.Index(content, pol.Directive()) > strings.Index(content, "pub struct Widget") {
		t.Fatalf("expected directive above Widget:\n%s", content)
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.rs")
	mustWriteFile(t, path, catalogSource)

	proc := NewFileProcessor(policy.Default(), false)
	if _, err := proc.Process(path); err != nil {
		t.Fatalf("first Process failed: %v", err)
	}
	first := mustReadFile(t, path)

	modified, err := proc.Process(path)
	if err != nil {
		t.Fatalf("second Process failed: %v", err)
	}
	if modified {
		t.Fatalf("expected second run to be a no-op")
	}
	if second := mustReadFile(t, path); second != first {
		t.Fatalf("expected content to be stable across runs")
	}
}

func TestProcessLeavesIneligibleFileUntouched(t *testing.T) {
	src := `use std::sync::Arc;

#[derive(Debug)]
pub struct Blob {
    pub payload: Arc<Bytes>,
}
`
	path := filepath.Join(t.TempDir(), "blob.rs")
	mustWriteFile(t, path, src)

	before := mustReadFile(t, path)
	proc := NewFileProcessor(policy.Default(), false)

	modified, err := proc.Process(path)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if modified {
		t.Fatalf("expected no modification")
	}
	if after := mustReadFile(t, path); !bytes.Equal([]byte(before), []byte(after)) {
		t.Fatalf("expected file bytes to be untouched")
	}
}

func TestProcessReportsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.rs")
	mustWriteFile(t, path, "pub struct {\n")

	proc := NewFileProcessor(policy.Default(), false)
	_, err := proc.Process(path)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Path != path {
		t.Fatalf("expected error to carry path %s, got %s", path, parseErr.Path)
	}
	if got := mustReadFile(t, path); got != "pub struct {\n" {
		t.Fatalf("expected broken file to be left untouched")
	}
}

func TestProcessReportsReadError(t *testing.T) {
	proc := NewFileProcessor(policy.Default(), false)
	_, err := proc.Process(filepath.Join(t.TempDir(), "missing.rs"))

	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected ReadError, got %v", err)
	}
}

func TestProcessReportsWriteError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "widget.rs")
	mustWriteFile(t, path, catalogSource)
	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatalf("failed to chmod %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	proc := NewFileProcessor(policy.Default(), false)
	modified, err := proc.Process(path)

	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if writeErr.Path != path {
		t.Fatalf("expected error to carry path %s, got %s", path, writeErr.Path)
	}
	if modified {
		t.Fatalf("expected a failed rewrite to not report the file as modified")
	}
	if got := mustReadFile(t, path); got != catalogSource {
		t.Fatalf("expected the file to stay in its pre-run state after a failed write")
	}
}

func TestWriteFileAtomicLeavesNoPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "widget.rs")

	if err := writeFileAtomic(path, []byte("pub struct Widget;\n")); err == nil {
		t.Fatalf("expected a write into a nonexistent directory to fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file to be created, got %v", err)
	}
}

func TestProcessDryRunWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.rs")
	mustWriteFile(t, path, catalogSource)

	proc := NewFileProcessor(policy.Default(), true)
	modified, err := proc.Process(path)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !modified {
		t.Fatalf("expected dry-run to report a pending modification")
	}
	if got := mustReadFile(t, path); got != catalogSource {
		t.Fatalf("expected dry-run to leave the file untouched")
	}
}

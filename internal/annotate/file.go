package annotate

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/toschema/toschema/internal/policy"
	"github.com/toschema/toschema/internal/rust"
)

// FileProcessor rewrites a single source file, adding the schema derive to
// every eligible declaration.
type FileProcessor struct {
	parser   *rust.Parser
	analyzer *Analyzer
	inserter *Inserter
	dryRun   bool
}

// NewFileProcessor builds a processor from a fixed policy. With dryRun set it
// reports what would change without writing anything.
func NewFileProcessor(p policy.Policy, dryRun bool) *FileProcessor {
	return &FileProcessor{
		parser:   rust.NewParser(),
		analyzer: NewAnalyzer(p),
		inserter: NewInserter(p.Directive()),
		dryRun:   dryRun,
	}
}

// Process annotates the file at path in place and reports whether its content
// changed (or would change, under dry-run). The file is written at most once,
// and only after the full rewritten content has been rendered in memory.
func (fp *FileProcessor) Process(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, &ReadError{Path: path, Err: err}
	}

	file, err := fp.parser.Parse(content)
	if err != nil {
		return false, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	var edits []Edit
	for _, decl := range file.Decls() {
		if fp.analyzer.Eligible(decl) {
			edits = append(edits, fp.inserter.Edit(decl, content))
		}
	}
	if len(edits) == 0 {
		return false, nil
	}
	if fp.dryRun {
		return true, nil
	}

	rendered := applyEdits(content, edits)
	if err := writeFileAtomic(path, rendered); err != nil {
		return false, &WriteError{Path: path, Err: err}
	}
	return true, nil
}

// writeFileAtomic writes data to a temp file in the same directory and
// renames it over path, so a failed write never leaves a partial file.
func writeFileAtomic(path string, data []byte) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

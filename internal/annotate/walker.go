package annotate

import (
	"io/fs"
	"path/filepath"

	"github.com/toschema/toschema/internal/policy"
)

// Outcome classifies one file's processing result.
type Outcome int

const (
	OutcomeUnchanged Outcome = iota
	OutcomeModified
	OutcomeFailed
)

// Failure retains a per-file error for the final summary.
type Failure struct {
	Path string
	Err  error
}

// Stats aggregates one walk.
type Stats struct {
	Visited       int
	Modified      int
	Unchanged     int
	Failed        int
	ModifiedFiles []string
	Failures      []Failure
}

// Walker enumerates candidate source files under a root directory and runs
// the file processor on each. Per-file failures are recorded and the walk
// continues; files are visited in lexical order so runs are reproducible.
type Walker struct {
	Processor *FileProcessor
	Extension string   // candidate file extension, ".rs"
	Reserved  string   // module index filename, always excluded
	Excludes  []string // additional filename globs to exclude

	// OnFile, when set, is called after each candidate file with its
	// root-relative path.
	OnFile func(relPath string, outcome Outcome, err error)
}

// NewWalker builds a walker over .rs files with the standard mod.rs
// exclusion plus any policy-level excludes.
func NewWalker(proc *FileProcessor, p policy.Policy) *Walker {
	return &Walker{
		Processor: proc,
		Extension: ".rs",
		Reserved:  "mod.rs",
		Excludes:  p.ExcludeFiles,
	}
}

// Walk processes every candidate under root and returns aggregate counts.
func (w *Walker) Walk(root string) (*Stats, error) {
	stats := &Stats{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		rel := path
		if relPath, relErr := filepath.Rel(root, path); relErr == nil {
			rel = relPath
		}

		if err != nil {
			// Enumeration failures are reported but never counted as
			// visited candidate files.
			stats.Failed++
			stats.Failures = append(stats.Failures, Failure{Path: rel, Err: &ReadError{Path: path, Err: err}})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !w.candidate(d.Name()) {
			return nil
		}

		modified, procErr := w.Processor.Process(path)
		stats.Visited++

		outcome := OutcomeUnchanged
		switch {
		case procErr != nil:
			outcome = OutcomeFailed
			stats.Failed++
			stats.Failures = append(stats.Failures, Failure{Path: rel, Err: procErr})
		case modified:
			outcome = OutcomeModified
			stats.Modified++
			stats.ModifiedFiles = append(stats.ModifiedFiles, rel)
		default:
			stats.Unchanged++
		}

		if w.OnFile != nil {
			w.OnFile(rel, outcome, procErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (w *Walker) candidate(name string) bool {
	if filepath.Ext(name) != w.Extension {
		return false
	}
	if name == w.Reserved {
		return false
	}
	for _, pattern := range w.Excludes {
		if ok, _ := filepath.Match(pattern, name); ok {
			return false
		}
	}
	return true
}

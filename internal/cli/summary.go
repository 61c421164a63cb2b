package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type RunSummary struct {
	Mode          string   `json:"mode"`
	DryRun        bool     `json:"dry_run"`
	RootPath      string   `json:"root_path"`
	TypesDir      string   `json:"types_dir"`
	Annotation    string   `json:"annotation"`
	Visited       int      `json:"visited"`
	Modified      int      `json:"modified"`
	Unchanged     int      `json:"unchanged"`
	Failed        int      `json:"failed"`
	DurationMS    int64    `json:"duration_ms"`
	ModifiedFiles []string `json:"modified_files,omitempty"`
	Failures      []string `json:"failures,omitempty"`
}

func PrintRunSummary(summary RunSummary, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}

	mode := summary.Mode
	if summary.DryRun {
		mode += " (dry-run)"
	}
	fmt.Printf("%s complete in %dms\n", mode, summary.DurationMS)
	fmt.Printf("annotation: %s\n", summary.Annotation)
	fmt.Printf("files: visited=%d modified=%d unchanged=%d failed=%d\n",
		summary.Visited, summary.Modified, summary.Unchanged, summary.Failed)
	if len(summary.ModifiedFiles) > 0 {
		fmt.Printf("modified files (%d): %s\n", len(summary.ModifiedFiles), SummarizePaths(summary.ModifiedFiles, 8))
	}
	for _, failure := range summary.Failures {
		fmt.Printf("  %s %s\n", statusFailed("error"), failure)
	}

	return nil
}

func SummarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(paths[:max], ", "), len(paths)-max)
}

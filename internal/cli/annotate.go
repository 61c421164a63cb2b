package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/toschema/toschema/internal/annotate"
	"github.com/toschema/toschema/internal/policy"
)

const (
	// markerFile must exist at the crate root before anything is touched.
	markerFile        = "Cargo.toml"
	defaultTypesDir   = "src/types"
	defaultConfigFile = "toschema.toml"
)

var (
	statusModified  = color.New(color.FgGreen).SprintFunc()
	statusUnchanged = color.New(color.Faint).SprintFunc()
	statusFailed    = color.New(color.FgRed).SprintFunc()
)

func RunAnnotate(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return fmt.Errorf("failed to read --dir flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to read --config flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to read --dry-run flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	rootPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	if _, err := os.Stat(filepath.Join(rootPath, markerFile)); err != nil {
		return fmt.Errorf("%s not found in %s: run toschema from the crate root", markerFile, rootPath)
	}

	typesDir := filepath.Join(rootPath, dir)
	info, err := os.Stat(typesDir)
	if err != nil {
		return fmt.Errorf("types directory %s not found", typesDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", typesDir)
	}

	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(rootPath, configPath)
	}
	pol, err := policy.Load(configPath)
	if err != nil {
		return err
	}

	return Annotate(rootPath, typesDir, pol, dryRun, asJSON)
}

// Annotate walks typesDir, rewrites eligible files and prints the run
// summary. Per-file failures are reported and counted but never abort the
// walk.
func Annotate(rootPath, typesDir string, pol policy.Policy, dryRun, asJSON bool) error {
	start := time.Now()

	processor := annotate.NewFileProcessor(pol, dryRun)
	walker := annotate.NewWalker(processor, pol)
	if !asJSON {
		fmt.Printf("Processing files in %s...\n", typesDir)
		walker.OnFile = printFileOutcome
	}

	stats, err := walker.Walk(typesDir)
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", typesDir, err)
	}

	summary := RunSummary{
		Mode:          "annotate",
		DryRun:        dryRun,
		RootPath:      rootPath,
		TypesDir:      typesDir,
		Annotation:    pol.Annotation,
		Visited:       stats.Visited,
		Modified:      stats.Modified,
		Unchanged:     stats.Unchanged,
		Failed:        stats.Failed,
		DurationMS:    time.Since(start).Milliseconds(),
		ModifiedFiles: stats.ModifiedFiles,
	}
	for _, failure := range stats.Failures {
		summary.Failures = append(summary.Failures, failure.Err.Error())
	}

	return PrintRunSummary(summary, asJSON)
}

func printFileOutcome(relPath string, outcome annotate.Outcome, err error) {
	switch outcome {
	case annotate.OutcomeModified:
		fmt.Printf("  %s %s\n", statusModified("modified "), relPath)
	case annotate.OutcomeFailed:
		fmt.Printf("  %s %s: %v\n", statusFailed("failed   "), relPath, err)
	default:
		fmt.Printf("  %s %s\n", statusUnchanged("unchanged"), relPath)
	}
}

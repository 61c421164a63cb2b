package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toschema",
		Short: "Add utoipa::ToSchema derives to a Rust type catalog",
		Long: `toschema walks a crate's type catalog and inserts a separate
#[derive(utoipa::ToSchema)] attribute onto every struct and enum that can
safely carry one. Declarations that already have the derive, sit on the
skip list, or contain field types the schema format cannot represent are
left untouched.

Re-running is safe: a fully annotated tree is a no-op.`,
	}

	annotateCmd := &cobra.Command{
		Use:   "annotate [path]",
		Short: "Annotate eligible type declarations under the types directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunAnnotate,
	}
	annotateCmd.Flags().String("dir", defaultTypesDir, "Types directory to scan, relative to the crate root")
	annotateCmd.Flags().String("config", defaultConfigFile, "Policy file overriding the built-in skip and exclusion lists")
	annotateCmd.Flags().Bool("dry-run", false, "Report what would change without writing files")
	annotateCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("toschema %s\n", version)
		},
	}

	rootCmd.AddCommand(annotateCmd, versionCmd)

	return rootCmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwyse/specified-default-derive/internal/codegen"
)

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate default constructors for annotated types",
		RunE:  handleGenerateCmd,
	}

	cmd.Flags().StringSliceP("type", "t", nil, "Type to process; repeat or comma-separate for several")
	cmd.Flags().StringP("dir", "d", ".", "Package directory to read")
	cmd.Flags().StringP("output", "o", "", "Merge generated code into a single file instead of one per type")
	cmd.Flags().Bool("dry-run", false, "Print the generated code without writing files")

	return cmd
}

func getGenerateOptions(cmd *cobra.Command) (codegen.Options, error) {
	types, err := cmd.Flags().GetStringSlice("type")
	if err != nil {
		return codegen.Options{}, fmt.Errorf("failed to get type flag: %w", err)
	}
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return codegen.Options{}, fmt.Errorf("failed to get dir flag: %w", err)
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return codegen.Options{}, fmt.Errorf("failed to get output flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return codegen.Options{}, fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	return codegen.Options{
		Dir:    dir,
		Types:  types,
		Output: output,
		DryRun: dryRun,
	}, nil
}

func handleGenerateCmd(cmd *cobra.Command, _ []string) error {
	opts, err := getGenerateOptions(cmd)
	if err != nil {
		return err
	}
	opts.Out = cmd.OutOrStdout()
	return codegen.New(opts).Generate(cmd.Context())
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/proyek/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import projects from a JSON store export",
		Long: `Reads a store export shaped as {"projects": {"<id>": {...}}} and stores every
record in one transaction. Records whose id or code already exists are
skipped. The whole file is validated first and every problem is listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if dryRun {
				dump, err := importer.LoadStoreDump(args[0])
				if err != nil {
					return fmt.Errorf("loading import file: %w", err)
				}
				if errs := importer.ValidateStoreDump(dump); len(errs) > 0 {
					var b strings.Builder
					fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
					for _, e := range errs {
						b.WriteString("\n  - " + e.Error())
					}
					return errors.New(b.String())
				}
				converted, err := importer.Convert(dump, app.now())
				if err != nil {
					return err
				}
				stages, lines := 0, 0
				for _, p := range converted.Projects {
					stages += len(p.Stages)
					lines += len(p.BudgetLines)
				}
				fmt.Fprintf(out, "%s is valid: %d projects, %d stages, %d budget lines\n",
					args[0], len(converted.Projects), stages, lines)
				for _, w := range converted.Warnings {
					fmt.Fprintf(out, "  warning: %s\n", w)
				}
				return nil
			}

			result, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %d projects (%d stages, %d budget lines)\n",
				len(result.Projects), result.StageCount, result.BudgetLineCount)
			if len(result.Skipped) > 0 {
				fmt.Fprintf(out, "Skipped %d existing: %s\n", len(result.Skipped), strings.Join(result.Skipped, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without storing anything")

	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/cli/formatter"
	"github.com/alexanderramin/proyek/internal/contract"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *App) *cobra.Command {
	var scope []string
	var archived, activeOnly, asJSON bool

	cmd := &cobra.Command{
		Use:   "status [PROJECT...]",
		Short: "Show deadline, progress and budget health across projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewStatusRequest()
			now := a.now()
			req.Now = &now
			req.ProjectScope = append(scope, args...)
			req.IncludeArchived = archived
			if activeOnly {
				req.IncludeFinished = false
			}

			resp, err := a.Status.GetStatus(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(contract.NewStatusDTO(resp))
			}
			if len(resp.Projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(resp))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&scope, "project", nil, "Scope to these project codes or ids")
	cmd.Flags().BoolVar(&archived, "archived", false, "Include archived projects")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Hide selesai and serah_terima projects")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the status as JSON")

	return cmd
}

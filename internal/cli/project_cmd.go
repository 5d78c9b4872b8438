package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/proyek/internal/cli/formatter"
	"github.com/alexanderramin/proyek/internal/contract"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"proyek", "p"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newProjectArchiveCmd(app),
		newProjectUnarchiveCmd(app),
		newProjectDeleteCmd(app),
		newProjectSnapshotCmd(app),
	)

	return cmd
}

// projectFields holds the header flags shared by create and update.
type projectFields struct {
	name, client, jobType, contractNumber, location string
	value                                           moneyFlag
	start, end                                      dateFlag
	status                                          string
	tenderSource, tenderNumber, tenderAgency        string
}

func (f *projectFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Project name")
	cmd.Flags().StringVar(&f.client, "client", "", "Client (klien)")
	cmd.Flags().StringVar(&f.jobType, "jenis", "", "Job type (jenis pekerjaan)")
	cmd.Flags().StringVar(&f.contractNumber, "contract-number", "", "Contract number")
	cmd.Flags().Var(&f.value, "value", "Contract value in rupiah")
	cmd.Flags().StringVar(&f.location, "location", "", "Location")
	cmd.Flags().Var(&f.start, "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(&f.end, "end", "End date (YYYY-MM-DD, none to clear)")
	cmd.Flags().StringVar(&f.status, "status", "", "persiapan|berjalan|selesai|serah_terima")
	cmd.Flags().StringVar(&f.tenderSource, "source", "", "tender|non_tender")
	cmd.Flags().StringVar(&f.tenderNumber, "tender-number", "", "Tender number")
	cmd.Flags().StringVar(&f.tenderAgency, "agency", "", "Tendering agency (instansi)")
}

// apply overlays every flag the user set onto the header intent.
func (f *projectFields) apply(cmd *cobra.Command, in *ledger.UpdateProject) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		in.Name = f.name
	}
	if changed("client") {
		in.Client = f.client
	}
	if changed("jenis") {
		in.JobType = f.jobType
	}
	if changed("contract-number") {
		in.ContractNumber = f.contractNumber
	}
	if changed("value") {
		in.ContractValue = domain.Money(f.value)
	}
	if changed("location") {
		in.Location = f.location
	}
	if changed("start") {
		if f.start.t == nil {
			return fmt.Errorf("start date cannot be cleared")
		}
		in.StartDate = *f.start.t
	}
	if changed("end") {
		in.EndDate = f.end.t
	}
	if changed("status") {
		st, err := domain.ParseProjectStatus(strings.ToLower(f.status))
		if err != nil {
			return err
		}
		in.Status = st
	}
	if changed("source") {
		src, err := domain.ParseTenderSource(strings.ToLower(f.tenderSource))
		if err != nil {
			return err
		}
		in.Tender.Source = src
	}
	if changed("tender-number") {
		in.Tender.Number = f.tenderNumber
	}
	if changed("agency") {
		in.Tender.Agency = f.tenderAgency
	}
	return nil
}

// header builds a complete header from the flags, defaulting the status to
// persiapan.
func (f *projectFields) header() (ledger.UpdateProject, error) {
	status := domain.ProjectPreparation
	if f.status != "" {
		st, err := domain.ParseProjectStatus(strings.ToLower(f.status))
		if err != nil {
			return ledger.UpdateProject{}, err
		}
		status = st
	}
	src, err := domain.ParseTenderSource(strings.ToLower(f.tenderSource))
	if err != nil {
		return ledger.UpdateProject{}, err
	}
	in := ledger.UpdateProject{
		Name:           f.name,
		Client:         f.client,
		JobType:        f.jobType,
		ContractNumber: f.contractNumber,
		ContractValue:  domain.Money(f.value),
		Location:       f.location,
		EndDate:        f.end.t,
		Status:         status,
		Tender:         domain.Tender{Source: src, Number: f.tenderNumber, Agency: f.tenderAgency},
	}
	if f.start.t != nil {
		in.StartDate = *f.start.t
	}
	return in, nil
}

func headerOf(p *domain.Project) ledger.UpdateProject {
	return ledger.UpdateProject{
		Name:           p.Name,
		Client:         p.Client,
		JobType:        p.JobType,
		ContractNumber: p.ContractNumber,
		ContractValue:  p.ContractValue,
		Location:       p.Location,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Status:         p.Status,
		Tender:         p.Tender,
	}
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var code string
	var interactive bool
	var fields projectFields

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				if err := runProjectForm(&code, &fields); err != nil {
					return err
				}
			}
			if fields.start.t == nil {
				return fmt.Errorf("--start is required")
			}

			header, err := fields.header()
			if err != nil {
				return err
			}
			p := &domain.Project{
				Code:           strings.ToUpper(code),
				Name:           header.Name,
				Client:         header.Client,
				JobType:        header.JobType,
				ContractNumber: header.ContractNumber,
				ContractValue:  header.ContractValue,
				Location:       header.Location,
				StartDate:      header.StartDate,
				EndDate:        header.EndDate,
				Status:         header.Status,
				Tender:         header.Tender,
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Project code (3-6 uppercase letters + 2-4 digits, e.g. JLN01)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the project in with a form")
	fields.register(cmd)
	cmd.MarkFlagsMutuallyExclusive("interactive", "name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")

	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "show PROJECT",
		Aliases: []string{"inspect"},
		Short:   "Show project stages, budget and deadline",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printProject(cmd, app, p, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the project as JSON")

	return cmd
}

func printProject(cmd *cobra.Command, app *App, p *domain.Project, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(contract.NewProjectDTO(p, app.now()))
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(p, app.now()))
	return nil
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var fields projectFields

	cmd := &cobra.Command{
		Use:   "update PROJECT",
		Short: "Change project header fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			header := headerOf(p)
			if err := fields.apply(cmd, &header); err != nil {
				return err
			}
			updated, err := app.Ledger.Apply(cmd.Context(), p.ID, header)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", updated.Name, updated.DisplayID())
			return nil
		},
	}

	fields.register(cmd)

	return cmd
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive PROJECT",
		Short: "Move a project to the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Projects.Archive(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived project %s\n", args[0])
			return nil
		},
	}
}

func newProjectUnarchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive PROJECT",
		Short: "Restore an archived project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Projects.Unarchive(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unarchived project %s\n", args[0])
			return nil
		},
	}
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete PROJECT",
		Aliases: []string{"rm"},
		Short:   "Permanently delete an archived project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Projects.Delete(cmd.Context(), args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if the project is not archived")

	return cmd
}

func newProjectSnapshotCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "snapshot PROJECT",
		Short: "Show an illustrative stage breakdown for a finished project with no stages",
		Long: `Generates a plausible, fully paid stage breakdown for a finished project
that was recorded without stages. The result is illustrative only and is
never saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Snapshots.Snapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printProject(cmd, app, p, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")

	return cmd
}

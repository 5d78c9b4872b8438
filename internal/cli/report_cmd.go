package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/cli/formatter"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/export"
	"github.com/alexanderramin/proyek/internal/invoice"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"invoice"},
		Short:   "Invoice reports across all projects",
	}

	cmd.AddCommand(
		newReportKindCmd(app, appReport{
			kind:  "tracking",
			short: "Every stage invoice, dated by invoice date (falling back to expected date)",
		}),
		newReportKindCmd(app, appReport{
			kind:  "projection",
			short: "Yearly income projection bucketed by month, dated by expected invoice date",
		}),
		newReportKindCmd(app, appReport{
			kind:  "recap",
			short: "Outstanding (unpaid) invoices of a year",
		}),
	)

	return cmd
}

type appReport struct {
	kind  string
	short string
}

func newReportKindCmd(a *App, r appReport) *cobra.Command {
	var (
		year       int
		month      monthFlag
		jobType    string
		status     paymentStatusFlag
		sort       sortFlag
		archived   bool
		formatStr  string
		outputPath string
		toSheet    bool
	)

	cmd := &cobra.Command{
		Use:   r.kind,
		Short: r.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := app.ParseReportKind(r.kind)
			if err != nil {
				return err
			}
			format, err := export.ParseFormat(formatStr)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("year") && kind != app.ReportTracking {
				year = a.now().Year()
			}

			resp, err := a.Reports.Report(cmd.Context(), app.ReportRequest{
				Kind:            kind,
				Year:            year,
				Month:           int(month),
				JobType:         jobType,
				Status:          domain.PaymentStatus(status),
				Sort:            invoice.SortMode(sort),
				IncludeArchived: archived,
			})
			if err != nil {
				return err
			}

			if toSheet {
				if a.Sheets == nil {
					return fmt.Errorf("sheets export is not configured (set PROYEK_SHEETS_SPREADSHEET_ID)")
				}
				exporter, err := a.Sheets(cmd.Context())
				if err != nil {
					return err
				}
				written, err := exporter.Export(cmd.Context(), resp.Rows)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(resp.Rows), written)
				return nil
			}

			w := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := writeReport(w, format, resp); err != nil {
				return err
			}
			if outputPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(resp.Rows), outputPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (defaults to this year for projection and recap)")
	cmd.Flags().StringVar(&jobType, "jenis", "", "Only this job type")
	cmd.Flags().BoolVar(&archived, "archived", false, "Include archived projects")
	cmd.Flags().StringVar(&formatStr, "format", "table", "table|csv|json")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&toSheet, "sheet", false, "Write the rows to the configured Google Sheet")
	if r.kind != "projection" {
		cmd.Flags().Var(&month, "month", "Only this month (1-12 or name)")
	}
	if r.kind != "recap" {
		cmd.Flags().Var(&status, "status", "Only this payment status")
	}
	if r.kind == "tracking" {
		cmd.Flags().Var(&sort, "sort", "Row order")
	}
	cmd.MarkFlagsMutuallyExclusive("sheet", "output")

	return cmd
}

func writeReport(w io.Writer, format export.Format, resp *app.ReportResponse) error {
	switch format {
	case export.FormatCSV:
		return export.WriteCSV(w, resp.Rows)
	case export.FormatJSON:
		return export.WriteJSON(w, resp)
	default:
		_, err := fmt.Fprintln(w, formatter.FormatReport(resp))
		return err
	}
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/proyek/internal/cli/formatter"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func proyekHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(proyekHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	_, err := domain.ParseDate(s)
	return err
}

func validateRequiredDate(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return validateOptionalDate(s)
}

func validateOptionalMoney(s string) error {
	if s == "" {
		return nil
	}
	_, err := parseMoney(s)
	return err
}

func validateWeight(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 100 {
		return fmt.Errorf("enter a weight between 0 and 100")
	}
	return nil
}

func dateInput(title string, value *string, validate func(string) error) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2026-06-30").
		Value(value).
		Validate(validate)
}

// runProjectForm collects a new project header.
func runProjectForm(code *string, f *projectFields) error {
	var value, start, end string
	status := string(domain.ProjectPreparation)

	form := newForm(
		huh.NewGroup(
			huh.NewInput().Title("Code").Placeholder("JLN01").Value(code).Validate(validateRequired),
			huh.NewInput().Title("Name").Value(&f.name).Validate(validateRequired),
			huh.NewInput().Title("Client").Value(&f.client),
			huh.NewInput().Title("Jenis Pekerjaan").Placeholder("Jalan").Value(&f.jobType),
			huh.NewInput().Title("Location").Value(&f.location),
		),
		huh.NewGroup(
			huh.NewInput().Title("Contract Number").Value(&f.contractNumber),
			huh.NewInput().Title("Contract Value (Rp)").Value(&value).Validate(validateOptionalMoney),
			dateInput("Start Date", &start, validateRequiredDate),
			dateInput("End Date (blank for none)", &end, validateOptionalDate),
			huh.NewSelect[string]().Title("Status").
				Options(
					huh.NewOption("Persiapan", string(domain.ProjectPreparation)),
					huh.NewOption("Berjalan", string(domain.ProjectRunning)),
					huh.NewOption("Selesai", string(domain.ProjectCompleted)),
					huh.NewOption("Serah Terima", string(domain.ProjectHandedOver)),
				).
				Value(&status),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	f.status = status
	if value != "" {
		if err := f.value.Set(value); err != nil {
			return err
		}
	}
	if err := f.start.Set(start); err != nil {
		return err
	}
	return f.end.Set(end)
}

// stageInput is the editable part of a stage as typed into a form.
type stageInput struct {
	name, weight, status, start, end string
}

func runStageForm(title string, in *stageInput) error {
	if in.status == "" {
		in.status = string(domain.StagePending)
	}
	form := newForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().Title("Stage Name").Value(&in.name).Validate(validateRequired),
			huh.NewInput().Title("Weight (%)").Placeholder("25").Value(&in.weight).Validate(validateWeight),
			huh.NewSelect[string]().Title("Status").
				Options(
					huh.NewOption("Pending", string(domain.StagePending)),
					huh.NewOption("Progress", string(domain.StageInProgress)),
					huh.NewOption("Done", string(domain.StageDone)),
				).
				Value(&in.status),
			dateInput("Start Date (blank for none)", &in.start, validateOptionalDate),
			dateInput("End Date (blank for none)", &in.end, validateOptionalDate),
		),
	)
	return form.Run()
}

// stage converts the typed values. Validation rules beyond parsing are left
// to the reducer.
func (in stageInput) stage() (domain.Stage, error) {
	w, err := strconv.ParseFloat(in.weight, 64)
	if err != nil {
		return domain.Stage{}, fmt.Errorf("invalid weight %q", in.weight)
	}
	st, err := domain.ParseStageStatus(in.status)
	if err != nil {
		return domain.Stage{}, err
	}
	start, err := domain.ParseOptionalDate(in.start)
	if err != nil {
		return domain.Stage{}, err
	}
	end, err := domain.ParseOptionalDate(in.end)
	if err != nil {
		return domain.Stage{}, err
	}
	return domain.Stage{Name: in.name, Weight: w, Status: st, StartDate: start, EndDate: end}, nil
}

type budgetInput struct {
	stage, category, description, planned, realized string
}

func runBudgetForm(p *domain.Project, in *budgetInput) error {
	options := []huh.Option[string]{huh.NewOption("(no stage)", "")}
	for _, s := range p.Stages {
		options = append(options, huh.NewOption(fmt.Sprintf("%d. %s", s.Number, s.Name), s.ID))
	}
	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Stage").Options(options...).Value(&in.stage),
			huh.NewInput().Title("Category").Placeholder("Material").Value(&in.category),
			huh.NewInput().Title("Description").Value(&in.description).Validate(validateRequired),
			huh.NewInput().Title("Planned (Rp)").Value(&in.planned).Validate(validateOptionalMoney),
			huh.NewInput().Title("Realized (Rp)").Value(&in.realized).Validate(validateOptionalMoney),
		),
	)
	return form.Run()
}

func (in budgetInput) line() (domain.BudgetLine, error) {
	b := domain.BudgetLine{StageID: in.stage, Category: in.category, Description: in.description}
	var err error
	if in.planned != "" {
		if b.Planned, err = parseMoney(in.planned); err != nil {
			return b, err
		}
	}
	if in.realized != "" {
		if b.Realized, err = parseMoney(in.realized); err != nil {
			return b, err
		}
	}
	return b, nil
}

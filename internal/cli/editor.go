package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/proyek/internal/cli/formatter"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type editorKeyMap struct {
	Up, Down         key.Binding
	MoveUp, MoveDown key.Binding
	CycleStatus      key.Binding
	CyclePayment     key.Binding
	Remove           key.Binding
	Undo             key.Binding
	Write            key.Binding
	Quit             key.Binding
	Help             key.Binding
}

func newEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveUp:       key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:     key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		CycleStatus:  key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "cycle status")),
		CyclePayment: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle payment")),
		Remove:       key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Undo:         key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Write:        key.NewBinding(key.WithKeys("w", "ctrl+s"), key.WithHelp("w", "write")),
		Quit:         key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleStatus, k.MoveUp, k.MoveDown, k.Remove, k.Write, k.Quit, k.Help}
}

func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.CycleStatus, k.CyclePayment, k.Remove, k.Undo},
		{k.Write, k.Quit, k.Help},
	}
}

// savedMsg reports the outcome of committing the pending intents.
type savedMsg struct {
	project *domain.Project
	err     error
}

// editModel edits the stage sequence of one project. Every key press is
// turned into a ledger intent and previewed through the reducer; nothing is
// stored until the pending intents are written as one session.
type editModel struct {
	app     *App
	reducer ledger.Reducer

	saved   domain.Project
	state   domain.Project
	pending []ledger.Intent

	cursor      int
	keys        editorKeyMap
	help        help.Model
	message     string
	err         error
	saving      bool
	confirmQuit bool
	quitting    bool
}

func newEditModel(app *App, p *domain.Project, orphans ledger.OrphanPolicy) editModel {
	return editModel{
		app:     app,
		reducer: ledger.NewReducer(orphans),
		saved:   p.Clone(),
		state:   p.Clone(),
		keys:    newEditorKeyMap(),
		help:    help.New(),
	}
}

func (m editModel) Init() tea.Cmd { return nil }

func (m editModel) stages() []domain.Stage {
	return ledger.Renumber(m.state.Stages)
}

func (m editModel) selected() (domain.Stage, bool) {
	stages := m.stages()
	if m.cursor < 0 || m.cursor >= len(stages) {
		return domain.Stage{}, false
	}
	return stages[m.cursor], true
}

// Dirty reports whether there are unwritten edits.
func (m editModel) Dirty() bool { return len(m.pending) > 0 }

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.saved = msg.project.Clone()
		m.state = msg.project.Clone()
		m.message = fmt.Sprintf("Wrote %d change(s)", len(m.pending))
		m.pending = nil
		m.err = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m editModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQuit = false
	}
	m.message = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.Dirty() && !m.confirmQuit {
			m.confirmQuit = true
			m.message = fmt.Sprintf("%d unsaved change(s). Press q again to discard, w to write.", len(m.pending))
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Stages)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.MoveUp):
		if s, ok := m.selected(); ok && m.cursor > 0 {
			if m.apply(ledger.MoveStageUpIntent{StageID: s.ID}) {
				m.cursor--
			}
		}

	case key.Matches(msg, m.keys.MoveDown):
		if s, ok := m.selected(); ok && m.cursor < len(m.state.Stages)-1 {
			if m.apply(ledger.MoveStageDownIntent{StageID: s.ID}) {
				m.cursor++
			}
		}

	case key.Matches(msg, m.keys.CycleStatus):
		if s, ok := m.selected(); ok {
			m.apply(ledger.SetStageStatus{StageID: s.ID, Status: s.Status.Next()})
		}

	case key.Matches(msg, m.keys.CyclePayment):
		if s, ok := m.selected(); ok {
			m.apply(ledger.SetStageInvoice{
				StageID:             s.ID,
				InvoiceDate:         s.InvoiceDate,
				ExpectedInvoiceDate: s.ExpectedInvoiceDate,
				Amount:              s.InvoiceAmount,
				PaymentStatus:       nextPayment(s.EffectivePaymentStatus()),
			})
		}

	case key.Matches(msg, m.keys.Remove):
		if s, ok := m.selected(); ok {
			if m.apply(ledger.RemoveStageIntent{StageID: s.ID}) && m.cursor >= len(m.state.Stages) {
				m.cursor = max(len(m.state.Stages)-1, 0)
			}
		}

	case key.Matches(msg, m.keys.Undo):
		m.undo()

	case key.Matches(msg, m.keys.Write):
		if !m.Dirty() {
			m.message = "Nothing to write"
			return m, nil
		}
		m.saving = true
		return m, m.write()
	}
	return m, nil
}

// apply previews one intent. A rejected intent leaves the state untouched.
func (m *editModel) apply(in ledger.Intent) bool {
	next, err := m.reducer.Reduce(m.state, in)
	if err != nil {
		m.err = err
		return false
	}
	m.err = nil
	m.state = next
	m.pending = append(m.pending, in)
	return true
}

// undo drops the last pending intent and replays the rest from the saved state.
func (m *editModel) undo() {
	if len(m.pending) == 0 {
		m.message = "Nothing to undo"
		return
	}
	pending := m.pending[:len(m.pending)-1]
	state, err := m.reducer.ReduceAll(m.saved, pending...)
	if err != nil {
		m.err = err
		return
	}
	m.state = state
	m.pending = pending
	m.err = nil
	if m.cursor >= len(m.state.Stages) {
		m.cursor = max(len(m.state.Stages)-1, 0)
	}
}

func (m editModel) write() tea.Cmd {
	ledgerSvc := m.app.Ledger
	id := m.saved.ID
	intents := append([]ledger.Intent(nil), m.pending...)
	return func() tea.Msg {
		p, err := ledgerSvc.Apply(context.Background(), id, intents...)
		return savedMsg{project: p, err: err}
	}
}

func nextPayment(s domain.PaymentStatus) domain.PaymentStatus {
	switch s {
	case domain.PaymentPending:
		return domain.PaymentPaid
	case domain.PaymentPaid:
		return domain.PaymentOverdue
	default:
		return domain.PaymentPending
	}
}

func (m editModel) View() string {
	if m.quitting {
		return ""
	}
	now := m.app.now()
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n  %s  %s\n\n", formatter.StyleGreen.Render(m.state.DisplayID()), formatter.Bold(m.state.Name)))

	stages := m.stages()
	if len(stages) == 0 {
		b.WriteString("  " + formatter.Dim("No stages.") + "\n")
	}
	for i, s := range stages {
		cursor := "  "
		label := fmt.Sprintf("%-28s", s.Name)
		name := formatter.StyleFg.Render(label)
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			name = formatter.StyleBold.Render(label)
		}
		payment := ""
		if s.HasInvoiceData() {
			payment = "  " + formatter.PaymentPill(s.PaymentStatus)
		}
		b.WriteString(fmt.Sprintf("%s%2d. %s %6s  %s%s\n",
			cursor, s.Number, name, formatter.Percent(s.Weight),
			formatter.StageStatusPill(s.DisplayStatus(now)), payment))
	}

	b.WriteString("\n  " + formatter.RenderProgress(ledger.WeightedProgress(m.state.Stages), 20))
	b.WriteString(formatter.Dim(fmt.Sprintf("  %s allocated", formatter.Percent(ledger.TotalWeight(m.state.Stages)))) + "\n")

	if m.Dirty() {
		b.WriteString("  " + formatter.StyleYellow.Render(fmt.Sprintf("%d unsaved change(s)", len(m.pending))) + "\n")
	}
	if m.saving {
		b.WriteString("  " + formatter.Dim("Writing...") + "\n")
	}
	if m.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	if m.message != "" {
		b.WriteString("  " + formatter.Dim(m.message) + "\n")
	}

	b.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return b.String()
}

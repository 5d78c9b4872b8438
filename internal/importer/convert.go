package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/google/uuid"
)

// Converted is the outcome of Convert.
type Converted struct {
	Projects []*domain.Project
	// Warnings lists tolerated problems, such as budget lines whose stage no
	// longer exists and were detached.
	Warnings []string
}

// Convert transforms a validated StoreDump into domain projects ready for
// persistence. Stages and budget lines are replayed through the ledger
// reducer, so every stored project satisfies the weight and numbering rules.
// Stage and budget line ids are only unique within one record in a dump, so
// both get fresh ids and budget references are remapped.
// Call ValidateStoreDump first; Convert assumes the dump is valid.
func Convert(dump *StoreDump, now time.Time) (*Converted, error) {
	out := &Converted{}
	reducer := ledger.NewReducer(ledger.OrphanDetach)

	for _, id := range dump.IDs() {
		rec := dump.Projects[id]

		header, err := convertHeader(id, &rec, now)
		if err != nil {
			return nil, err
		}

		stageIDs := make(map[string]string, len(rec.Stages))
		intents := make([]ledger.Intent, 0, len(rec.Stages)+len(rec.Budget))
		for _, s := range sortedStages(rec.Stages) {
			stage, err := convertStage(s)
			if err != nil {
				return nil, fmt.Errorf("project %q: %w", id, err)
			}
			fresh := uuid.New().String()
			if stage.ID != "" {
				stageIDs[stage.ID] = fresh
			}
			stage.ID = fresh
			intents = append(intents, ledger.AddStage{Stage: stage})
		}
		for _, b := range rec.Budget {
			line := convertBudget(b)
			line.ID = uuid.New().String()
			if line.StageID != "" {
				mapped, ok := stageIDs[line.StageID]
				if !ok {
					out.Warnings = append(out.Warnings,
						fmt.Sprintf("project %q: budget line %q referenced missing stage %q and was detached", id, b.Description, b.StageID))
				}
				line.StageID = mapped
			}
			intents = append(intents, ledger.AddBudgetLine{Line: line})
		}

		p, err := reducer.ReduceAll(*header, intents...)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", id, err)
		}
		out.Projects = append(out.Projects, &p)
	}
	return out, nil
}

func convertHeader(id string, rec *ProjectRecord, now time.Time) (*domain.Project, error) {
	start, err := domain.ParseDate(rec.StartDate)
	if err != nil {
		return nil, fmt.Errorf("project %q: tanggalMulai: %w", id, err)
	}
	end, err := domain.ParseOptionalDate(rec.EndDate)
	if err != nil {
		return nil, fmt.Errorf("project %q: tanggalSelesai: %w", id, err)
	}
	status := domain.ProjectStatus(rec.Status)
	if status == "" {
		status = domain.ProjectPreparation
	}
	source, err := domain.ParseTenderSource(rec.TenderSource)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", id, err)
	}

	p := &domain.Project{
		ID:             id,
		Code:           strings.ToUpper(rec.Code),
		Name:           rec.Name,
		Client:         rec.Client,
		JobType:        rec.JobType,
		ContractNumber: rec.ContractNumber,
		ContractValue:  domain.Money(rec.ContractValue),
		Location:       rec.Location,
		StartDate:      start,
		EndDate:        end,
		Status:         status,
		Tender: domain.Tender{
			Source: source,
			Number: rec.TenderNumber,
			Agency: rec.TenderAgency,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if rec.Archived {
		archived := now
		p.ArchivedAt = &archived
	}
	return p, nil
}

// sortedStages orders records by nomor. Records without a number keep their
// file order after the numbered ones.
func sortedStages(stages []StageRecord) []StageRecord {
	out := append([]StageRecord(nil), stages...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Number, out[j].Number
		if (a <= 0) != (b <= 0) {
			return a > 0
		}
		return a < b
	})
	return out
}

func convertStage(s StageRecord) (domain.Stage, error) {
	st := domain.Stage{
		ID:            s.ID,
		Name:          s.Name,
		Weight:        s.Weight,
		Status:        domain.StageStatus(s.Status),
		PaymentStatus: domain.PaymentStatus(s.PaymentStatus),
		Files:         s.Files,
	}
	var err error
	for _, f := range []struct {
		dst **time.Time
		raw string
	}{
		{&st.StartDate, s.StartDate},
		{&st.EndDate, s.EndDate},
		{&st.InvoiceDate, s.InvoiceDate},
		{&st.ExpectedInvoiceDate, s.ExpectedInvoiceDate},
	} {
		if *f.dst, err = domain.ParseOptionalDate(f.raw); err != nil {
			return st, fmt.Errorf("stage %q: %w", s.Name, err)
		}
	}
	if s.InvoiceAmount != nil {
		m := domain.Money(*s.InvoiceAmount)
		st.InvoiceAmount = &m
	}
	return st, nil
}

func convertBudget(b BudgetRecord) domain.BudgetLine {
	return domain.BudgetLine{
		StageID:     b.StageID,
		Category:    b.Category,
		Description: b.Description,
		Planned:     domain.Money(b.Planned),
		Realized:    domain.Money(b.Realized),
		Files:       b.Files,
	}
}

// Package snapshot fabricates illustrative stage and budget records for
// finished projects that were archived without any. Generated projects are
// flagged Synthetic: the reducer refuses to edit them and the repositories
// refuse to store them.
package snapshot

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
)

// template is the stage breakdown every snapshot follows. Weights sum to 100.
var template = []struct {
	name     string
	weight   float64
	category string
}{
	{"Persiapan & Mobilisasi", 10, "Operasional"},
	{"Pekerjaan Tanah", 20, "Material"},
	{"Pekerjaan Struktur", 35, "Material"},
	{"Finishing", 25, "Upah"},
	{"Serah Terima", 10, "Administrasi"},
}

// defaultDuration is used when the project has no end date.
const defaultDuration = 180 * 24 * time.Hour

// Eligible reports whether a snapshot may be generated for p.
func Eligible(p domain.Project) bool {
	return p.Status.Finished() && len(p.Stages) == 0
}

// Generate returns a synthetic copy of p with stages, invoices and budget
// lines spread over its schedule. The output depends only on p, so repeated
// calls for the same project agree. ok is false when p is not Eligible.
func Generate(p domain.Project) (out domain.Project, ok bool) {
	if !Eligible(p) {
		return p, false
	}
	rng := rand.New(rand.NewSource(seed(p)))

	out = p.Clone()
	out.Synthetic = true
	out.Stages = make([]domain.Stage, 0, len(template))
	out.BudgetLines = nil

	start := domain.DateOnly(p.StartDate)
	end := start.Add(defaultDuration)
	if p.EndDate != nil && p.EndDate.After(start) {
		end = domain.DateOnly(*p.EndDate)
	}
	span := end.Sub(start)

	var elapsed float64
	for i, t := range template {
		n := i + 1
		stageStart := start.Add(time.Duration(elapsed / 100 * float64(span))).Truncate(24 * time.Hour)
		elapsed += t.weight
		stageEnd := start.Add(time.Duration(elapsed / 100 * float64(span))).Truncate(24 * time.Hour)
		invoiced := stageEnd.AddDate(0, 0, 3+rng.Intn(12))
		expected := stageEnd.AddDate(0, 0, 7)
		amount := domain.Money(float64(p.ContractValue) * t.weight / 100)

		stageID := fmt.Sprintf("snap-%s-%d", shortID(p.ID), n)
		out.Stages = append(out.Stages, domain.Stage{
			ID:                  stageID,
			Number:              n,
			Name:                t.name,
			Weight:              t.weight,
			Status:              domain.StageDone,
			StartDate:           &stageStart,
			EndDate:             &stageEnd,
			InvoiceDate:         &invoiced,
			ExpectedInvoiceDate: &expected,
			InvoiceAmount:       &amount,
			PaymentStatus:       domain.PaymentPaid,
			Files: []string{
				fmt.Sprintf("arsip/%s/tahap-%02d-bast.pdf", p.DisplayID(), n),
				fmt.Sprintf("arsip/%s/tahap-%02d-invoice.pdf", p.DisplayID(), n),
			},
		})

		// Cost lands between 65% and 80% of the billed amount.
		planned := domain.Money(float64(amount) * (0.65 + rng.Float64()*0.15))
		realized := domain.Money(float64(planned) * (0.9 + rng.Float64()*0.15))
		out.BudgetLines = append(out.BudgetLines, domain.BudgetLine{
			ID:          fmt.Sprintf("%s-b", stageID),
			StageID:     stageID,
			Category:    t.category,
			Description: t.name,
			Planned:     planned,
			Realized:    realized,
		})
	}
	out.Progress = ledger.WeightedProgress(out.Stages)
	return out, true
}

func seed(p domain.Project) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(p.ID))
	_, _ = h.Write([]byte(p.Code))
	return int64(h.Sum64())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

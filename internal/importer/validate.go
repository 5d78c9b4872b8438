package importer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
)

// ValidateStoreDump checks the dump for errors before conversion.
// Returns a slice of all validation errors found. Budget lines that point at
// a missing stage are not errors; Convert detaches them.
func ValidateStoreDump(dump *StoreDump) []error {
	var errs []error
	if len(dump.Projects) == 0 {
		return []error{fmt.Errorf("projects: no records found")}
	}

	codes := make(map[string]string)
	for _, id := range dump.IDs() {
		rec := dump.Projects[id]
		prefix := fmt.Sprintf("projects[%q]", id)

		if rec.Code != "" {
			if owner, dup := codes[rec.Code]; dup {
				errs = append(errs, fmt.Errorf("%s.kode: %q already used by %q", prefix, rec.Code, owner))
			} else {
				codes[rec.Code] = id
			}
			p := domain.Project{Code: rec.Code}
			if err := p.ValidateCode(); err != nil {
				errs = append(errs, fmt.Errorf("%s.kode: %v", prefix, err))
			}
		}
		errs = append(errs, validateProject(prefix, &rec)...)
		errs = append(errs, validateStages(prefix, rec.Stages)...)
		errs = append(errs, validateBudget(prefix, rec.Budget)...)
	}
	return errs
}

func validateProject(prefix string, rec *ProjectRecord) []error {
	var errs []error

	if rec.Name == "" {
		errs = append(errs, fmt.Errorf("%s.nama is required", prefix))
	}
	if rec.StartDate == "" {
		errs = append(errs, fmt.Errorf("%s.tanggalMulai is required", prefix))
	}
	errs = append(errs, validateDateOrder(prefix, rec.StartDate, rec.EndDate)...)

	if rec.Status != "" {
		if _, err := domain.ParseProjectStatus(rec.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %v", prefix, err))
		}
	}
	if _, err := domain.ParseTenderSource(rec.TenderSource); err != nil {
		errs = append(errs, fmt.Errorf("%s.sumber: %v", prefix, err))
	}
	if rec.ContractValue < 0 {
		errs = append(errs, fmt.Errorf("%s.nilaiKontrak must not be negative", prefix))
	}
	return errs
}

func validateStages(prefix string, stages []StageRecord) []error {
	var errs []error
	ids := make(map[string]bool)
	var total float64

	for i, s := range stages {
		sp := fmt.Sprintf("%s.tahapan[%d]", prefix, i)

		if s.ID != "" {
			if ids[s.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", sp, s.ID))
			}
			ids[s.ID] = true
		}
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s.nama is required", sp))
		}
		if s.Weight < 0 || s.Weight > ledger.MaxTotalWeight {
			errs = append(errs, fmt.Errorf("%s.bobot: %.1f must be between 0 and 100", sp, s.Weight))
		}
		total += s.Weight
		if _, err := domain.ParseStageStatus(s.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %v", sp, err))
		}
		if _, err := domain.ParsePaymentStatus(s.PaymentStatus); err != nil {
			errs = append(errs, fmt.Errorf("%s.statusPembayaran: %v", sp, err))
		}
		if s.InvoiceAmount != nil && *s.InvoiceAmount < 0 {
			errs = append(errs, fmt.Errorf("%s.jumlahTagihanInvoice must not be negative", sp))
		}
		errs = append(errs, validateDateOrder(sp, s.StartDate, s.EndDate)...)
		errs = append(errs, validateOptionalDate(sp+".tanggalInvoice", s.InvoiceDate)...)
		errs = append(errs, validateOptionalDate(sp+".perkiraanInvoiceMasuk", s.ExpectedInvoiceDate)...)
	}

	if !ledger.WithinCeiling(total) {
		errs = append(errs, fmt.Errorf("%s.tahapan: total bobot %s exceeds 100", prefix, formatWeight(total)))
	}
	return errs
}

func validateBudget(prefix string, lines []BudgetRecord) []error {
	var errs []error
	for i, b := range lines {
		bp := fmt.Sprintf("%s.anggaran[%d]", prefix, i)
		if b.Description == "" {
			errs = append(errs, fmt.Errorf("%s.deskripsi is required", bp))
		}
		if b.Planned < 0 {
			errs = append(errs, fmt.Errorf("%s.jumlah must not be negative", bp))
		}
		if b.Realized < 0 {
			errs = append(errs, fmt.Errorf("%s.realisasi must not be negative", bp))
		}
	}
	return errs
}

func validateDateOrder(prefix, start, end string) []error {
	errs := validateOptionalDate(prefix+".tanggalMulai", start)
	errs = append(errs, validateOptionalDate(prefix+".tanggalSelesai", end)...)
	if len(errs) > 0 || start == "" || end == "" {
		return errs
	}
	s, _ := domain.ParseDate(start)
	e, _ := domain.ParseDate(end)
	if e.Before(s) {
		errs = append(errs, fmt.Errorf("%s.tanggalSelesai %q must not be before tanggalMulai %q", prefix, end, start))
	}
	return errs
}

func validateOptionalDate(field, s string) []error {
	if s == "" {
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return []error{fmt.Errorf("%s: %v", field, err)}
	}
	return nil
}

// formatWeight prints a weight sum with at most three decimals.
func formatWeight(w float64) string {
	return strconv.FormatFloat(math.Round(w*1000)/1000, 'f', -1, 64)
}

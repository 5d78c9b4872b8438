package domain

import "time"

// Stage is one weighted step of project execution (tahapan kerja). Number is
// the 1-based position within the project and is always dense.
type Stage struct {
	ID        string
	Number    int
	Name      string
	Weight    float64
	Status    StageStatus
	StartDate *time.Time
	EndDate   *time.Time

	InvoiceDate         *time.Time
	ExpectedInvoiceDate *time.Time
	InvoiceAmount       *Money
	PaymentStatus       PaymentStatus

	Files []string
}

// IsOverdue reports whether the stage is unfinished past its end date.
// Only the calendar dates are compared.
func (s Stage) IsOverdue(now time.Time) bool {
	if s.Status == StageDone || s.EndDate == nil {
		return false
	}
	return DateOnly(*s.EndDate).Before(DateOnly(now))
}

// DisplayStatus returns StageOverdue for overdue stages and the stored status
// otherwise.
func (s Stage) DisplayStatus(now time.Time) StageStatus {
	if s.IsOverdue(now) {
		return StageOverdue
	}
	return s.Status
}

// HasInvoiceData reports whether any invoice field is set.
func (s Stage) HasInvoiceData() bool {
	return s.InvoiceAmount != nil || s.InvoiceDate != nil || s.ExpectedInvoiceDate != nil
}

// EffectivePaymentStatus never returns the empty status.
func (s Stage) EffectivePaymentStatus() PaymentStatus {
	return s.PaymentStatus.OrDefault()
}

func (s Stage) clone() Stage {
	if s.Files != nil {
		s.Files = append([]string(nil), s.Files...)
	}
	return s
}

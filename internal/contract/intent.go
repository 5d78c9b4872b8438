package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
)

// ErrMalformedIntent wraps every decoding failure. Field-level rules are
// checked later by the reducer, not here.
var ErrMalformedIntent = errors.New("malformed intent")

// IntentEnvelope is the wire form of one edit intent.
type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type StagePayload struct {
	ID                  string   `json:"id,omitempty"`
	Name                string   `json:"name"`
	Weight              float64  `json:"weight"`
	Status              string   `json:"status,omitempty"`
	StartDate           string   `json:"start_date,omitempty"`
	EndDate             string   `json:"end_date,omitempty"`
	InvoiceDate         string   `json:"invoice_date,omitempty"`
	ExpectedInvoiceDate string   `json:"expected_invoice_date,omitempty"`
	InvoiceAmount       *int64   `json:"invoice_amount,omitempty"`
	PaymentStatus       string   `json:"payment_status,omitempty"`
	Files               []string `json:"files,omitempty"`
}

type UpdateStagePayload struct {
	StageID   string   `json:"stage_id"`
	Name      string   `json:"name"`
	Weight    float64  `json:"weight"`
	Status    string   `json:"status,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Files     []string `json:"files,omitempty"`
}

type StageRefPayload struct {
	StageID string `json:"stage_id"`
}

type StageStatusPayload struct {
	StageID string `json:"stage_id"`
	Status  string `json:"status"`
}

type StageInvoicePayload struct {
	StageID             string `json:"stage_id"`
	InvoiceDate         string `json:"invoice_date,omitempty"`
	ExpectedInvoiceDate string `json:"expected_invoice_date,omitempty"`
	Amount              *int64 `json:"amount,omitempty"`
	PaymentStatus       string `json:"payment_status,omitempty"`
}

type BudgetLinePayload struct {
	ID          string   `json:"id,omitempty"`
	StageID     string   `json:"stage_id,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description"`
	Planned     int64    `json:"planned"`
	Realized    int64    `json:"realized"`
	Files       []string `json:"files,omitempty"`
}

type BudgetLineRefPayload struct {
	LineID string `json:"line_id"`
}

type ProjectPayload struct {
	Name           string `json:"name"`
	Client         string `json:"client,omitempty"`
	JobType        string `json:"job_type,omitempty"`
	ContractNumber string `json:"contract_number,omitempty"`
	ContractValue  int64  `json:"contract_value"`
	Location       string `json:"location,omitempty"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date,omitempty"`
	Status         string `json:"status"`
	TenderSource   string `json:"tender_source,omitempty"`
	TenderNumber   string `json:"tender_number,omitempty"`
	TenderAgency   string `json:"tender_agency,omitempty"`
}

// DecodeIntents parses a JSON array of envelopes.
func DecodeIntents(data []byte) ([]ledger.Intent, error) {
	var envs []IntentEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedIntent, err)
	}
	out := make([]ledger.Intent, 0, len(envs))
	for i, env := range envs {
		in, err := DecodeIntent(env)
		if err != nil {
			return nil, fmt.Errorf("intents[%d]: %w", i, err)
		}
		out = append(out, in)
	}
	return out, nil
}

// DecodeIntent turns one envelope into a typed ledger intent.
func DecodeIntent(env IntentEnvelope) (ledger.Intent, error) {
	switch env.Type {
	case ledger.AddStage{}.Kind():
		var p StagePayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		s, err := p.stage()
		if err != nil {
			return nil, err
		}
		return ledger.AddStage{Stage: s}, nil

	case ledger.UpdateStage{}.Kind():
		var p UpdateStagePayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		var d dates
		in := ledger.UpdateStage{
			StageID:   p.StageID,
			Name:      p.Name,
			Weight:    p.Weight,
			Status:    domain.StageStatus(p.Status),
			StartDate: d.parse("start_date", p.StartDate),
			EndDate:   d.parse("end_date", p.EndDate),
			Files:     p.Files,
		}
		return d.result(in)

	case ledger.SetStageStatus{}.Kind():
		var p StageStatusPayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return ledger.SetStageStatus{StageID: p.StageID, Status: domain.StageStatus(p.Status)}, nil

	case ledger.SetStageInvoice{}.Kind():
		var p StageInvoicePayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		var d dates
		in := ledger.SetStageInvoice{
			StageID:             p.StageID,
			InvoiceDate:         d.parse("invoice_date", p.InvoiceDate),
			ExpectedInvoiceDate: d.parse("expected_invoice_date", p.ExpectedInvoiceDate),
			Amount:              moneyPtr(p.Amount),
			PaymentStatus:       domain.PaymentStatus(p.PaymentStatus),
		}
		return d.result(in)

	case ledger.MoveStageUpIntent{}.Kind():
		var p StageRefPayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return ledger.MoveStageUpIntent{StageID: p.StageID}, nil

	case ledger.MoveStageDownIntent{}.Kind():
		var p StageRefPayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return ledger.MoveStageDownIntent{StageID: p.StageID}, nil

	case ledger.RemoveStageIntent{}.Kind():
		var p StageRefPayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return ledger.RemoveStageIntent{StageID: p.StageID}, nil

	case ledger.AddBudgetLine{}.Kind():
		var p BudgetLinePayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return ledger.AddBudgetLine{Line: p.line()}, nil

	case ledger.UpdateBudgetLine{}.Kind():
		var p BudgetLinePayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return ledger.UpdateBudgetLine{Line: p.line()}, nil

	case ledger.RemoveBudgetLine{}.Kind():
		var p BudgetLineRefPayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return ledger.RemoveBudgetLine{LineID: p.LineID}, nil

	case ledger.UpdateProject{}.Kind():
		var p ProjectPayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return p.intent()
	}
	return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedIntent, env.Type)
}

func unmarshalPayload(env IntentEnvelope, v any) error {
	if len(bytes.TrimSpace(env.Payload)) == 0 {
		return fmt.Errorf("%w: %s: payload is required", ErrMalformedIntent, env.Type)
	}
	dec := json.NewDecoder(bytes.NewReader(env.Payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedIntent, env.Type, err)
	}
	return nil
}

// dates collects the first date parse failure so a payload can be converted
// in a single expression.
type dates struct {
	err error
}

func (d *dates) parse(field, s string) *time.Time {
	t, err := domain.ParseOptionalDate(s)
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%w: %s: %v", ErrMalformedIntent, field, err)
	}
	return t
}

func (d *dates) result(in ledger.Intent) (ledger.Intent, error) {
	if d.err != nil {
		return nil, d.err
	}
	return in, nil
}

func moneyPtr(v *int64) *domain.Money {
	if v == nil {
		return nil
	}
	m := domain.Money(*v)
	return &m
}

func (p StagePayload) stage() (domain.Stage, error) {
	var d dates
	s := domain.Stage{
		ID:                  p.ID,
		Name:                p.Name,
		Weight:              p.Weight,
		Status:              domain.StageStatus(p.Status),
		StartDate:           d.parse("start_date", p.StartDate),
		EndDate:             d.parse("end_date", p.EndDate),
		InvoiceDate:         d.parse("invoice_date", p.InvoiceDate),
		ExpectedInvoiceDate: d.parse("expected_invoice_date", p.ExpectedInvoiceDate),
		InvoiceAmount:       moneyPtr(p.InvoiceAmount),
		PaymentStatus:       domain.PaymentStatus(p.PaymentStatus),
		Files:               p.Files,
	}
	return s, d.err
}

func (p BudgetLinePayload) line() domain.BudgetLine {
	return domain.BudgetLine{
		ID:          p.ID,
		StageID:     p.StageID,
		Category:    p.Category,
		Description: p.Description,
		Planned:     domain.Money(p.Planned),
		Realized:    domain.Money(p.Realized),
		Files:       p.Files,
	}
}

func (p ProjectPayload) intent() (ledger.Intent, error) {
	var d dates
	in := ledger.UpdateProject{
		Name:           p.Name,
		Client:         p.Client,
		JobType:        p.JobType,
		ContractNumber: p.ContractNumber,
		ContractValue:  domain.Money(p.ContractValue),
		Location:       p.Location,
		EndDate:        d.parse("end_date", p.EndDate),
		Status:         domain.ProjectStatus(p.Status),
		Tender: domain.Tender{
			Source: domain.TenderSource(p.TenderSource),
			Number: p.TenderNumber,
			Agency: p.TenderAgency,
		},
	}
	if start := d.parse("start_date", p.StartDate); start != nil {
		in.StartDate = *start
	}
	return d.result(in)
}

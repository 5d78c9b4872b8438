package contract

import (
	"testing"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIntents_AllKinds(t *testing.T) {
	data := []byte(`[
		{"type": "add_stage", "payload": {"name": "Persiapan", "weight": 10, "end_date": "2026-03-01", "invoice_amount": 5000000}},
		{"type": "update_stage", "payload": {"stage_id": "s1", "name": "Galian", "weight": 20, "status": "progress"}},
		{"type": "set_stage_status", "payload": {"stage_id": "s1", "status": "done"}},
		{"type": "set_stage_invoice", "payload": {"stage_id": "s1", "invoice_date": "2026-04-02", "amount": 7500000, "payment_status": "lunas"}},
		{"type": "move_stage_up", "payload": {"stage_id": "s2"}},
		{"type": "move_stage_down", "payload": {"stage_id": "s2"}},
		{"type": "remove_stage", "payload": {"stage_id": "s3"}},
		{"type": "add_budget_line", "payload": {"stage_id": "s1", "description": "Semen", "planned": 1000}},
		{"type": "update_budget_line", "payload": {"id": "b1", "description": "Semen", "planned": 1000, "realized": 400}},
		{"type": "remove_budget_line", "payload": {"line_id": "b1"}},
		{"type": "update_project", "payload": {"name": "Jalan", "start_date": "2026-01-05", "status": "berjalan", "contract_value": 9}}
	]`)

	intents, err := DecodeIntents(data)
	require.NoError(t, err)
	require.Len(t, intents, 11)

	add, ok := intents[0].(ledger.AddStage)
	require.True(t, ok)
	assert.Equal(t, "Persiapan", add.Stage.Name)
	require.NotNil(t, add.Stage.EndDate)
	assert.Equal(t, "2026-03-01", add.Stage.EndDate.Format(domain.DateLayout))
	require.NotNil(t, add.Stage.InvoiceAmount)
	assert.Equal(t, domain.Money(5_000_000), *add.Stage.InvoiceAmount)

	upd := intents[1].(ledger.UpdateStage)
	assert.Equal(t, domain.StageInProgress, upd.Status)
	assert.Nil(t, upd.StartDate)

	assert.Equal(t, ledger.SetStageStatus{StageID: "s1", Status: domain.StageDone}, intents[2])

	inv := intents[3].(ledger.SetStageInvoice)
	assert.Equal(t, domain.PaymentPaid, inv.PaymentStatus)
	assert.Nil(t, inv.ExpectedInvoiceDate)
	require.NotNil(t, inv.Amount)
	assert.Equal(t, domain.Money(7_500_000), *inv.Amount)

	assert.Equal(t, ledger.MoveStageUpIntent{StageID: "s2"}, intents[4])
	assert.Equal(t, ledger.MoveStageDownIntent{StageID: "s2"}, intents[5])
	assert.Equal(t, ledger.RemoveStageIntent{StageID: "s3"}, intents[6])
	assert.Equal(t, "s1", intents[7].(ledger.AddBudgetLine).Line.StageID)
	assert.Equal(t, domain.Money(400), intents[8].(ledger.UpdateBudgetLine).Line.Realized)
	assert.Equal(t, ledger.RemoveBudgetLine{LineID: "b1"}, intents[9])

	proj := intents[10].(ledger.UpdateProject)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), proj.StartDate)
	assert.Equal(t, domain.ProjectRunning, proj.Status)
	assert.Equal(t, domain.Money(9), proj.ContractValue)
}

func TestDecodeIntent_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  IntentEnvelope
		want string
	}{
		{"unknown type", IntentEnvelope{Type: "explode"}, `unknown type "explode"`},
		{"missing payload", IntentEnvelope{Type: "remove_stage"}, "payload is required"},
		{"bad date", IntentEnvelope{Type: "add_stage", Payload: []byte(`{"name":"A","end_date":"01/02/2026"}`)}, "end_date"},
		{"unknown field", IntentEnvelope{Type: "remove_stage", Payload: []byte(`{"stageId":"x"}`)}, "unknown field"},
		{"wrong type", IntentEnvelope{Type: "add_budget_line", Payload: []byte(`{"planned":"lots"}`)}, "add_budget_line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := DecodeIntent(tt.env)
			require.Error(t, err)
			assert.Nil(t, in)
			assert.ErrorIs(t, err, ErrMalformedIntent)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeIntents_NamesFailingIndex(t *testing.T) {
	_, err := DecodeIntents([]byte(`[{"type":"remove_stage","payload":{"stage_id":"a"}},{"type":"nope","payload":{}}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intents[1]")

	_, err = DecodeIntents([]byte(`{"type":"remove_stage"}`))
	assert.ErrorIs(t, err, ErrMalformedIntent)
}

func TestDecodedIntentsApplyThroughReducer(t *testing.T) {
	intents, err := DecodeIntents([]byte(`[
		{"type": "add_stage", "payload": {"id": "a", "name": "Persiapan", "weight": 30, "status": "done"}},
		{"type": "add_stage", "payload": {"id": "b", "name": "Struktur", "weight": 70}},
		{"type": "add_budget_line", "payload": {"stage_id": "b", "description": "Besi", "planned": 100}}
	]`))
	require.NoError(t, err)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out, err := ledger.NewReducer(ledger.OrphanDetach).ReduceAll(domain.Project{ID: "p", Name: "X", StartDate: start}, intents...)
	require.NoError(t, err)
	assert.Len(t, out.Stages, 2)
	assert.InDelta(t, 30.0, out.Progress, 0.001)
	assert.Len(t, out.BudgetLines, 1)
}

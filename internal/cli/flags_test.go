package cli

import (
	"testing"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr string
	}{
		{in: "3", want: 3},
		{in: "Maret", want: 3},
		{in: "agustus", want: 8},
		{in: "Dec", want: 12},
		{in: "0", wantErr: "month must be between 1 and 12"},
		{in: "13", wantErr: "month must be between 1 and 12"},
		{in: "smarch", wantErr: `unknown month "smarch"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var m monthFlag
			err := m.Set(tt.in)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, int(m))
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Money
	}{
		{"1250000", 1_250_000},
		{"Rp 1.250.000", 1_250_000},
		{"rp1,250,000", 1_250_000},
		{"1_000", 1_000},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := parseMoney(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseMoney("sepuluh")
	assert.EqualError(t, err, `invalid amount "sepuluh"`)
	_, err = parseMoney("-10")
	assert.EqualError(t, err, "amount cannot be negative")
}

func TestDateFlag(t *testing.T) {
	var d dateFlag
	require.NoError(t, d.Set("2026-10-19"))
	require.NotNil(t, d.t)
	assert.Equal(t, testutil.Date(2026, 10, 19), *d.t)
	assert.Equal(t, "2026-10-19", d.String())

	require.NoError(t, d.Set("none"))
	assert.Nil(t, d.t)

	assert.Error(t, d.Set("19/10/2026"))
}

func TestPaymentStatusAndSortFlags(t *testing.T) {
	var p paymentStatusFlag
	require.NoError(t, p.Set("LUNAS"))
	assert.Equal(t, domain.PaymentPaid, domain.PaymentStatus(p))
	assert.Error(t, p.Set("maybe"))

	var s sortFlag
	require.NoError(t, s.Set("jenis"))
	assert.Equal(t, "jenis", s.String())
	assert.Error(t, s.Set("amount"))
}

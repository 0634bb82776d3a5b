package calculations

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
)

func TestAmortize(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		annualRate    float64
		termYears     int
		extra         float64
		wantLen       int
		checkSchedule func(*testing.T, *AmortizationSchedule)
	}{
		{
			name:       "30 year mortgage",
			principal:  800000,
			annualRate: 0.055,
			termYears:  30,
			wantLen:    360,
			checkSchedule: func(t *testing.T, s *AmortizationSchedule) {
				assert.InDelta(t, 4542.31, s.MonthlyPayment, 0.01)
				first := s.Entries[0]
				assert.InDelta(t, 800000*0.055/12, first.Interest, 1e-9)
				assert.Equal(t, 1, first.Year)
				assert.Equal(t, 30, s.Entries[359].Year)
				assert.Greater(t, s.TotalInterest, 0.0)
			},
		},
		{
			name:       "100k at 5 percent",
			principal:  100000,
			annualRate: 0.05,
			termYears:  30,
			wantLen:    360,
			checkSchedule: func(t *testing.T, s *AmortizationSchedule) {
				assert.InDelta(t, 536.82, s.MonthlyPayment, 0.01)
			},
		},
		{
			name:       "zero rate",
			principal:  120000,
			annualRate: 0,
			termYears:  10,
			wantLen:    120,
			checkSchedule: func(t *testing.T, s *AmortizationSchedule) {
				assert.Equal(t, 1000.0, s.MonthlyPayment)
				for _, e := range s.Entries {
					assert.Equal(t, 0.0, e.Interest)
					assert.Equal(t, s.MonthlyPayment, e.Principal)
				}
				assert.Equal(t, 0.0, s.TotalInterest)
			},
		},
		{
			name:       "extra payment shortens schedule",
			principal:  100000,
			annualRate: 0.05,
			termYears:  30,
			extra:      200,
			wantLen:    201,
			checkSchedule: func(t *testing.T, s *AmortizationSchedule) {
				last := s.Entries[len(s.Entries)-1]
				assert.LessOrEqual(t, last.Principal, s.MonthlyPayment+200)
				assert.Equal(t, 201, s.PayoffMonth)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Amortize(tt.principal, tt.annualRate, tt.termYears, tt.extra)
			require.NoError(t, err)
			require.Len(t, s.Entries, tt.wantLen)

			last := s.Entries[len(s.Entries)-1]
			assert.Equal(t, 0.0, last.Balance, "final balance must be exactly zero")
			assert.LessOrEqual(t, len(s.Entries), tt.termYears*12)

			prev := tt.principal
			sumPrincipal := 0.0
			for _, e := range s.Entries {
				assert.LessOrEqual(t, e.Balance, prev)
				assert.GreaterOrEqual(t, e.Balance, 0.0)
				assert.GreaterOrEqual(t, e.Principal, 0.0)
				assert.Equal(t, int(math.Ceil(float64(e.Month)/12)), e.Year)
				prev = e.Balance
				sumPrincipal += e.Principal
			}
			assert.InDelta(t, tt.principal, sumPrincipal, 1e-6, "principal portions must add up to the loan")

			if tt.checkSchedule != nil {
				tt.checkSchedule(t, s)
			}
		})
	}
}

func TestAmortize_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		termYears  int
		extra      float64
	}{
		{"zero principal", 0, 0.05, 30, 0},
		{"negative principal", -1000, 0.05, 30, 0},
		{"negative rate", 100000, -0.01, 30, 0},
		{"zero term", 100000, 0.05, 0, 0},
		{"negative extra", 100000, 0.05, 30, -1},
		{"NaN rate", 100000, math.NaN(), 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Amortize(tt.principal, tt.annualRate, tt.termYears, tt.extra)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestAnnualAggregates(t *testing.T) {
	s, err := Amortize(12000, 0, 1, 0)
	require.NoError(t, err)

	aggs := AnnualAggregates(s, 3)
	require.Len(t, aggs, 3)

	assert.Equal(t, 1, aggs[0].Year)
	assert.InDelta(t, 12000, aggs[0].Principal, 1e-9)
	assert.Equal(t, 0.0, aggs[0].EndBalance)

	for _, a := range aggs[1:] {
		assert.Equal(t, 0.0, a.Interest)
		assert.Equal(t, 0.0, a.Principal)
		assert.Equal(t, 0.0, a.EndBalance)
	}

	long, err := Amortize(100000, 0.05, 30, 0)
	require.NoError(t, err)
	truncated := AnnualAggregates(long, 5)
	require.Len(t, truncated, 5)
	assert.Greater(t, truncated[4].EndBalance, 0.0)
	assert.Less(t, truncated[4].EndBalance, truncated[3].EndBalance)
}

package models

import (
	"testing"

	e "github.com/gartstein/holdings/internal/holdings/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlans(t *testing.T) {
	plans := Plans()
	require.Len(t, plans, 5)

	expected := []struct {
		key      PlanKey
		duration string
		price    int64
	}{
		{PlanTwoMonths, "2 Months", 3000},
		{PlanFourMonths, "4 Months", 5000},
		{PlanSixMonths, "6 Months", 7000},
		{PlanEightMonths, "8 Months", 10000},
		{PlanOneYear, "1 Year", 12000},
	}
	for i, want := range expected {
		assert.Equal(t, want.key, plans[i].Key)
		assert.Equal(t, want.duration, plans[i].Duration)
		assert.Equal(t, want.price, plans[i].Price)
	}

	plans[0].Price = 1
	assert.Equal(t, int64(3000), Plans()[0].Price, "catalog must not be mutable through Plans")
}

func TestParsePlanKey(t *testing.T) {
	tests := []struct {
		in      string
		want    PlanKey
		wantErr bool
	}{
		{"2months", PlanTwoMonths, false},
		{"1year", PlanOneYear, false},
		{"", "", true},
		{"2Months", "", true},
		{"12months", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlanKey(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, e.ErrInvalidPlan)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanKey_Plan(t *testing.T) {
	assert.Equal(t, int64(5000), PlanFourMonths.Plan().Price)
	assert.Equal(t, DefaultPlan.Plan(), PlanKey("bogus").Plan())
}

func TestPlan_Display(t *testing.T) {
	assert.Equal(t, "₹3,000.00", PlanTwoMonths.Plan().Display())
	assert.Equal(t, int64(1200000), PlanOneYear.Plan().Money().Amount())
}

func TestCoreServices(t *testing.T) {
	services := CoreServices()
	require.Len(t, services, 10)
	assert.Equal(t, "Stock Market Advisory", services[0])
	assert.Equal(t, "Insurance Advisory (Life, Health, General)", services[9])
}

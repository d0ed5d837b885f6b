package models

import (
	"encoding/json"
	"testing"

	e "github.com/gartstein/holdings/internal/holdings/errors"
	"github.com/gartstein/holdings/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradient(t *testing.T) {
	assert.Equal(t, "linear-gradient(135deg, #90CAF9 0%, #90CAF9dd 100%)", Gradient(DefaultColor))
}

func TestNewDraft(t *testing.T) {
	d := NewDraft()
	assert.Empty(t, d.Name)
	assert.Empty(t, d.Services)
	assert.Equal(t, DefaultColor, d.Color)
	assert.Equal(t, DefaultTextColor, d.TextColor)
	assert.Equal(t, PlanTwoMonths, d.ConsultancyPlan)
}

func TestDraft_ToggleService(t *testing.T) {
	d := NewDraft().
		ToggleService("Wealth Management").
		ToggleService("Retirement Planning")
	assert.Equal(t, []string{"Wealth Management", "Retirement Planning"}, d.Services)

	d = d.ToggleService("Wealth Management")
	assert.Equal(t, []string{"Retirement Planning"}, d.Services)
}

func TestDraft_ToggleServiceDoesNotAlias(t *testing.T) {
	original := Draft{Services: []string{"A", "B"}}
	_ = original.ToggleService("A")
	assert.Equal(t, []string{"A", "B"}, original.Services)
}

func TestDraft_Normalized(t *testing.T) {
	d := Draft{
		Name:     "  Acme Capital ",
		Services: []string{" Wealth Management ", "", "   "},
	}.Normalized()

	assert.Equal(t, "Acme Capital", d.Name)
	assert.Equal(t, []string{"Wealth Management"}, d.Services)
	assert.Equal(t, DefaultColor, d.Color)
	assert.Equal(t, DefaultTextColor, d.TextColor)
	assert.Equal(t, DefaultPlan, d.ConsultancyPlan)
}

func TestDraft_Apply(t *testing.T) {
	d := NewDraft().Apply(DraftPatch{
		Name:            utils.Ptr("Acme"),
		ConsultancyPlan: utils.Ptr(PlanOneYear),
	})
	assert.Equal(t, "Acme", d.Name)
	assert.Equal(t, PlanOneYear, d.ConsultancyPlan)
	assert.Equal(t, DefaultColor, d.Color, "untouched fields keep their value")

	d = d.Apply(DraftPatch{Services: []string{"Wealth Management"}})
	assert.Equal(t, []string{"Wealth Management"}, d.Services)
	assert.Equal(t, "Acme", d.Name)
}

func TestDraft_RecordRoundTrip(t *testing.T) {
	c := Company{
		ID:              uuid.New(),
		Name:            "Acme",
		Services:        []string{"Wealth Management"},
		Color:           "#FFFFFF",
		TextColor:       "#000000",
		ConsultancyPlan: PlanSixMonths,
		Gradient:        Gradient("#FFFFFF"),
	}
	assert.Equal(t, c, DraftFrom(c).Record(c.ID))
}

func TestCompany_JSONRejectsUnknownPlan(t *testing.T) {
	var c Company
	err := json.Unmarshal([]byte(`{"name":"x","consultancyPlan":"3weeks"}`), &c)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrInvalidPlan)
}

func TestCompany_Clone(t *testing.T) {
	c := Company{Services: []string{"A"}}
	clone := c.Clone()
	clone.Services[0] = "B"
	assert.Equal(t, "A", c.Services[0])
}

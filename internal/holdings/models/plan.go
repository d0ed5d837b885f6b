package models

import (
	"fmt"

	"github.com/Rhymond/go-money"
	e "github.com/gartstein/holdings/internal/holdings/errors"
)

// Currency is the ISO code every plan is priced in.
const Currency = "INR"

// PlanKey selects one entry of the fixed consultancy plan catalog.
type PlanKey string

const (
	PlanTwoMonths   PlanKey = "2months"
	PlanFourMonths  PlanKey = "4months"
	PlanSixMonths   PlanKey = "6months"
	PlanEightMonths PlanKey = "8months"
	PlanOneYear     PlanKey = "1year"
)

// DefaultPlan is assigned to drafts that do not pick a plan.
const DefaultPlan = PlanTwoMonths

// Plan is a duration/price pair. Price is in whole currency units.
type Plan struct {
	Key      PlanKey `json:"key"`
	Duration string  `json:"duration"`
	Price    int64   `json:"price"`
}

var planCatalog = [...]Plan{
	{Key: PlanTwoMonths, Duration: "2 Months", Price: 3000},
	{Key: PlanFourMonths, Duration: "4 Months", Price: 5000},
	{Key: PlanSixMonths, Duration: "6 Months", Price: 7000},
	{Key: PlanEightMonths, Duration: "8 Months", Price: 10000},
	{Key: PlanOneYear, Duration: "1 Year", Price: 12000},
}

// Plans returns the catalog in presentation order.
func Plans() []Plan {
	plans := make([]Plan, len(planCatalog))
	copy(plans, planCatalog[:])
	return plans
}

// ParsePlanKey returns the key named by s, or ErrInvalidPlan.
func ParsePlanKey(s string) (PlanKey, error) {
	k := PlanKey(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", e.ErrInvalidPlan, s)
	}
	return k, nil
}

// Valid reports whether k is one of the catalog keys.
func (k PlanKey) Valid() bool {
	for _, p := range planCatalog {
		if p.Key == k {
			return true
		}
	}
	return false
}

// Plan resolves k in the catalog. Unknown keys resolve to the default plan.
func (k PlanKey) Plan() Plan {
	for _, p := range planCatalog {
		if p.Key == k {
			return p
		}
	}
	return DefaultPlan.Plan()
}

// UnmarshalText rejects keys outside the catalog, so decoded records never carry one.
func (k *PlanKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePlanKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Money returns the plan price as a money value.
func (p Plan) Money() *money.Money {
	cur := money.GetCurrency(Currency)
	minor := p.Price
	for i := 0; i < cur.Fraction; i++ {
		minor *= 10
	}
	return money.New(minor, Currency)
}

// Display formats the price for humans, e.g. "₹3,000.00".
func (p Plan) Display() string {
	return p.Money().Display()
}

// Package payment builds UPI deep links for consultancy plans and hands them to
// an external handler. The handler never reports back: there is no completion
// signal, so nothing here models success or failure of the payment itself.
package payment

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gartstein/holdings/internal/holdings/models"
)

const (
	Scheme       = "upi"
	RecipientID  = "ankitjha08400-2@okhdfcbank"
	MerchantName = "Money Holdings"
)

// Intent is a payment request ready to hand off.
type Intent struct {
	URI      string `json:"uri"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Note     string `json:"note"`
}

// Describe names what is being paid for.
func Describe(plan models.Plan, company *models.Company) string {
	if company != nil {
		return fmt.Sprintf("%s - %s Plan", company.Name, plan.Duration)
	}
	return fmt.Sprintf("%s Consultancy Plan", plan.Duration)
}

// BuildIntent returns the deep link paying plan, optionally on behalf of company.
func BuildIntent(plan models.Plan, company *models.Company) string {
	return NewIntent(plan, company).URI
}

func NewIntent(plan models.Plan, company *models.Company) Intent {
	note := Describe(plan, company)
	uri := fmt.Sprintf("%s://pay?pa=%s&pn=%s&am=%d&cu=%s&tn=%s",
		Scheme,
		RecipientID,
		encodeComponent(MerchantName),
		plan.Price,
		models.Currency,
		encodeComponent(note),
	)
	return Intent{
		URI:      uri,
		Amount:   plan.Price,
		Currency: models.Currency,
		Note:     note,
	}
}

// encodeComponent percent-encodes s for use inside a query value, with spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

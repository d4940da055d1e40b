// Package currency converts and presents monetary amounts under the
// configured single- or dual-currency mode. A missing rate is always surfaced
// as such; no code path substitutes a default rate of 1.
package currency

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"salespipe/internal/models"
)

var (
	ErrRateNotFound = errors.New("exchange rate not found")

	// ErrAmbiguousCurrency: dual mode requires the stored currency to be
	// either the home or the local currency; anything else is rejected
	// rather than guessed at.
	ErrAmbiguousCurrency = errors.New("currency is neither home nor local")
)

// Converter resolves rates against an in-memory snapshot of the rate table.
// Snapshots are safe to reuse within one aggregation pass but must not
// outlive admin edits to the rates or the mode settings.
type Converter struct {
	settings models.Settings
	rates    []models.ExchangeRate
}

func NewConverter(settings models.Settings, rates []models.ExchangeRate) *Converter {
	return &Converter{settings: settings, rates: rates}
}

// Conversion records the applied rate and its provenance. Inverted is set
// when no explicit rate existed for the pair and the reciprocal of the
// reverse pair was used instead.
type Conversion struct {
	Amount   decimal.Decimal `json:"amount"`
	Rate     decimal.Decimal `json:"rate"`
	RateDate time.Time       `json:"rate_date"`
	Inverted bool            `json:"inverted,omitempty"`
}

// Convert converts amount from one currency to another as of the given date.
// Identity conversions return the amount unchanged with a unit rate. The
// latest active rate dated on or before asOf wins; an explicit rate for the
// pair is preferred over the reciprocal of the reverse pair.
func (c *Converter) Convert(amount decimal.Decimal, from, to string, asOf time.Time) (Conversion, error) {
	if from == to {
		return Conversion{Amount: amount, Rate: decimal.NewFromInt(1), RateDate: asOf}, nil
	}

	if r, ok := c.lookup(from, to, asOf); ok {
		return Conversion{
			Amount:   amount.Mul(r.Rate),
			Rate:     r.Rate,
			RateDate: r.EffectiveDate,
		}, nil
	}
	if r, ok := c.lookup(to, from, asOf); ok && !r.Rate.IsZero() {
		inv := decimal.NewFromInt(1).Div(r.Rate)
		return Conversion{
			Amount:   amount.Mul(inv),
			Rate:     inv,
			RateDate: r.EffectiveDate,
			Inverted: true,
		}, nil
	}
	return Conversion{}, fmt.Errorf("%w: %s->%s as of %s", ErrRateNotFound, from, to, asOf.Format("2006-01-02"))
}

// lookup picks the latest active rate for the pair dated <= asOf.
func (c *Converter) lookup(from, to string, asOf time.Time) (models.ExchangeRate, bool) {
	var best models.ExchangeRate
	found := false
	for _, r := range c.rates {
		if !r.IsActive || r.FromCurrency != from || r.ToCurrency != to {
			continue
		}
		if r.EffectiveDate.After(asOf) {
			continue
		}
		if !found || r.EffectiveDate.After(best.EffectiveDate) {
			best = r
			found = true
		}
	}
	return best, found
}

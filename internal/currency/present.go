package currency

import (
	"time"

	"github.com/shopspring/decimal"

	"salespipe/internal/models"
)

// Leg is one currency-denominated view of an amount. Unavailable marks a
// failed rate lookup; the figure must then be treated as missing, never as
// zero or as the raw amount.
type Leg struct {
	Currency    string           `json:"currency"`
	Amount      decimal.Decimal  `json:"amount"`
	Rate        *decimal.Decimal `json:"rate,omitempty"`
	RateDate    *time.Time       `json:"rate_date,omitempty"`
	Inverted    bool             `json:"inverted,omitempty"`
	Unavailable bool             `json:"conversion_unavailable,omitempty"`
}

// Presentation is the mode-shaped view of one stored amount. Local is nil in
// single-currency mode.
type Presentation struct {
	Home  Leg  `json:"home"`
	Local *Leg `json:"local,omitempty"`
}

// PresentAmount renders a stored amount for display. Single mode: one home
// currency figure, converted when the stored currency differs. Dual mode:
// home and local legs with the rate and effective date attached for
// provenance. A failed lookup marks that leg unavailable instead of aborting
// the presentation. In dual mode a stored currency that is neither home nor
// local is ErrAmbiguousCurrency: the direction would have to be guessed.
func (c *Converter) PresentAmount(amount decimal.Decimal, cur string, asOf time.Time) (Presentation, error) {
	home := c.settings.HomeCurrency

	if c.settings.CurrencyMode != models.CurrencyModeDual {
		return Presentation{Home: c.leg(amount, cur, home, asOf)}, nil
	}

	local := c.settings.LocalCurrency
	if cur != home && cur != local {
		return Presentation{}, ErrAmbiguousCurrency
	}

	localLeg := c.leg(amount, cur, local, asOf)
	return Presentation{
		Home:  c.leg(amount, cur, home, asOf),
		Local: &localLeg,
	}, nil
}

func (c *Converter) leg(amount decimal.Decimal, from, to string, asOf time.Time) Leg {
	conv, err := c.Convert(amount, from, to, asOf)
	if err != nil {
		return Leg{Currency: to, Unavailable: true}
	}
	l := Leg{Currency: to, Amount: conv.Amount, Inverted: conv.Inverted}
	if from != to {
		rate := conv.Rate
		date := conv.RateDate
		l.Rate = &rate
		l.RateDate = &date
	}
	return l
}

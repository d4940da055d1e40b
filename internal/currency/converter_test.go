package currency

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salespipe/internal/models"
)

var (
	jan1 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mar1 = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	jun1 = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

func dualSettings() models.Settings {
	return models.Settings{
		EntityMode:    models.EntityModeSingle,
		CurrencyMode:  models.CurrencyModeDual,
		HomeCurrency:  "USD",
		LocalCurrency: "IDR",
	}
}

func idrRates() []models.ExchangeRate {
	return []models.ExchangeRate{
		{ID: 1, FromCurrency: "IDR", ToCurrency: "USD", Rate: decimal.RequireFromString("0.000065"), EffectiveDate: jan1, IsActive: true},
		{ID: 2, FromCurrency: "IDR", ToCurrency: "USD", Rate: decimal.RequireFromString("0.000070"), EffectiveDate: mar1, IsActive: true},
	}
}

func TestConvertIdentity(t *testing.T) {
	c := NewConverter(dualSettings(), nil)
	for _, cur := range []string{"USD", "IDR", "EUR"} {
		amount := decimal.RequireFromString("123.45")
		got, err := c.Convert(amount, cur, cur, jun1)
		if err != nil {
			t.Fatalf("identity convert %s: %v", cur, err)
		}
		if !got.Amount.Equal(amount) {
			t.Errorf("convert(%s, %s, %s) = %s, want unchanged", amount, cur, cur, got.Amount)
		}
	}
}

func TestConvertPicksLatestRateOnOrBeforeDate(t *testing.T) {
	c := NewConverter(dualSettings(), idrRates())
	amount := decimal.NewFromInt(1000000)

	// as of June the March rate is the latest
	got, err := c.Convert(amount, "IDR", "USD", jun1)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !got.Amount.Equal(decimal.NewFromInt(70)) {
		t.Errorf("amount = %s, want 70", got.Amount)
	}
	if !got.RateDate.Equal(mar1) {
		t.Errorf("rate date = %s, want %s", got.RateDate, mar1)
	}

	// as of February only the January rate qualifies
	got, err = c.Convert(amount, "IDR", "USD", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !got.Amount.Equal(decimal.NewFromInt(65)) {
		t.Errorf("amount = %s, want 65", got.Amount)
	}
}

func TestConvertInverseIsMarked(t *testing.T) {
	c := NewConverter(dualSettings(), idrRates())

	got, err := c.Convert(decimal.NewFromInt(70), "USD", "IDR", jun1)
	if err != nil {
		t.Fatalf("inverse convert: %v", err)
	}
	if !got.Inverted {
		t.Error("inverse conversion not marked")
	}

	// an explicit rate for the pair is preferred over the reciprocal
	rates := append(idrRates(), models.ExchangeRate{
		ID: 3, FromCurrency: "USD", ToCurrency: "IDR",
		Rate: decimal.NewFromInt(15000), EffectiveDate: jan1, IsActive: true,
	})
	c = NewConverter(dualSettings(), rates)
	got, err = c.Convert(decimal.NewFromInt(1), "USD", "IDR", jun1)
	if err != nil {
		t.Fatalf("explicit convert: %v", err)
	}
	if got.Inverted {
		t.Error("explicit rate reported as inverted")
	}
	if !got.Amount.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("amount = %s, want 15000", got.Amount)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	c := NewConverter(dualSettings(), idrRates())
	x := decimal.NewFromInt(1234567)

	ab, err := c.Convert(x, "IDR", "USD", jun1)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	back, err := c.Convert(ab.Amount, "USD", "IDR", jun1)
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	diff := back.Amount.Sub(x).Abs()
	tolerance := x.Mul(decimal.RequireFromString("0.0000001"))
	if diff.GreaterThan(tolerance) {
		t.Errorf("round trip drifted: %s -> %s -> %s", x, ab.Amount, back.Amount)
	}
}

func TestConvertRateNotFound(t *testing.T) {
	c := NewConverter(dualSettings(), idrRates())
	_, err := c.Convert(decimal.NewFromInt(100), "EUR", "USD", jun1)
	if !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("err = %v, want ErrRateNotFound", err)
	}

	// inactive rates never apply
	rates := []models.ExchangeRate{
		{ID: 1, FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.NewFromInt(1), EffectiveDate: jan1, IsActive: false},
	}
	c = NewConverter(dualSettings(), rates)
	if _, err := c.Convert(decimal.NewFromInt(1), "EUR", "USD", jun1); !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("inactive rate applied: %v", err)
	}

	// rates dated after asOf never apply
	c = NewConverter(dualSettings(), idrRates())
	if _, err := c.Convert(decimal.NewFromInt(1), "IDR", "USD", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)); !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("future-dated rate applied: %v", err)
	}
}

func TestPresentAmountDualMode(t *testing.T) {
	rates := []models.ExchangeRate{
		{ID: 1, FromCurrency: "IDR", ToCurrency: "USD", Rate: decimal.RequireFromString("0.000065"), EffectiveDate: jan1, IsActive: true},
	}
	c := NewConverter(dualSettings(), rates)

	p, err := c.PresentAmount(decimal.NewFromInt(1000000), "IDR", jan1)
	if err != nil {
		t.Fatalf("PresentAmount: %v", err)
	}
	if p.Home.Currency != "USD" || !p.Home.Amount.Equal(decimal.NewFromInt(65)) {
		t.Errorf("home leg = %s %s, want 65 USD", p.Home.Amount, p.Home.Currency)
	}
	if p.Home.Rate == nil || !p.Home.Rate.Equal(decimal.RequireFromString("0.000065")) {
		t.Errorf("home rate provenance missing: %v", p.Home.Rate)
	}
	if p.Home.RateDate == nil || !p.Home.RateDate.Equal(jan1) {
		t.Errorf("home rate date provenance missing: %v", p.Home.RateDate)
	}
	if p.Local == nil || p.Local.Currency != "IDR" || !p.Local.Amount.Equal(decimal.NewFromInt(1000000)) {
		t.Errorf("local leg = %+v, want 1000000 IDR", p.Local)
	}
}

func TestPresentAmountUnavailableLegDoesNotAbort(t *testing.T) {
	// no rates at all: the USD-stored amount still presents, the IDR leg
	// is marked unavailable instead of failing the whole presentation
	c := NewConverter(dualSettings(), nil)
	p, err := c.PresentAmount(decimal.NewFromInt(100), "USD", jun1)
	if err != nil {
		t.Fatalf("PresentAmount: %v", err)
	}
	if p.Home.Unavailable {
		t.Error("home leg should be an identity conversion")
	}
	if p.Local == nil || !p.Local.Unavailable {
		t.Errorf("local leg should be marked unavailable: %+v", p.Local)
	}
	if p.Local != nil && !p.Local.Amount.IsZero() {
		t.Error("unavailable leg must not carry a number")
	}
}

func TestPresentAmountAmbiguousCurrency(t *testing.T) {
	c := NewConverter(dualSettings(), idrRates())
	_, err := c.PresentAmount(decimal.NewFromInt(100), "EUR", jun1)
	if !errors.Is(err, ErrAmbiguousCurrency) {
		t.Fatalf("err = %v, want ErrAmbiguousCurrency", err)
	}
}

func TestPresentAmountSingleMode(t *testing.T) {
	settings := models.Settings{CurrencyMode: models.CurrencyModeSingle, HomeCurrency: "USD"}
	c := NewConverter(settings, idrRates())

	p, err := c.PresentAmount(decimal.NewFromInt(1000000), "IDR", jan1)
	if err != nil {
		t.Fatalf("PresentAmount: %v", err)
	}
	if p.Local != nil {
		t.Error("single mode must not produce a local leg")
	}
	if !p.Home.Amount.Equal(decimal.NewFromInt(65)) {
		t.Errorf("home amount = %s, want 65", p.Home.Amount)
	}

	// single mode accepts any stored currency, including unknown pairs:
	// the failure shows up as an unavailable marker, never a wrong number
	p, err = c.PresentAmount(decimal.NewFromInt(5), "EUR", jun1)
	if err != nil {
		t.Fatalf("PresentAmount: %v", err)
	}
	if !p.Home.Unavailable {
		t.Error("missing rate should mark the home leg unavailable")
	}
}

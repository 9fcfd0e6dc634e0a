package rates

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ToKRW converts a USD amount at rate, rounded to the whole won.
func ToKRW(usd, rate float64) decimal.Decimal {
	return decimal.NewFromFloat(usd).Mul(decimal.NewFromFloat(rate)).Round(0)
}

// FormatUSD renders a dollar amount, e.g. "$1,234.50".
func FormatUSD(usd float64) string {
	return format(decimal.NewFromFloat(usd), money.USD)
}

// FormatKRW renders a won amount, e.g. "₩10,400".
func FormatKRW(krw decimal.Decimal) string {
	return format(krw, money.KRW)
}

// Dual renders a dollar amount followed by its won equivalent.
func Dual(usd, rate float64) string {
	return FormatUSD(usd) + " (" + FormatKRW(ToKRW(usd, rate)) + ")"
}

func format(amount decimal.Decimal, code string) string {
	// money.New never returns a nil currency, unlike a registry lookup.
	cur := money.New(0, code).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

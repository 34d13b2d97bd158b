package domain

import "github.com/shopspring/decimal"

// Stored precision, matching the NUMERIC columns in the postgres schema
const (
	MoneyScale     = 2
	ThresholdScale = 4
)

// maxMoney is the first magnitude NUMERIC(14,2) cannot hold
var maxMoney = decimal.New(1, 12)

// fitsScale reports whether d has at most scale significant fractional digits
func fitsScale(d decimal.Decimal, scale int32) bool {
	return d.Equal(d.Round(scale))
}

// validMoney reports whether d can be stored as an amount without rounding
func validMoney(d decimal.Decimal) bool {
	return fitsScale(d, MoneyScale) && d.Abs().LessThan(maxMoney)
}

package payroll

import "github.com/shopspring/decimal"

var (
	twelve            = decimal.NewFromInt(12)
	craRate           = decimal.RequireFromString("0.20")
	craFloorRate      = decimal.RequireFromString("0.01")
	annualReliefFloor = decimal.NewFromInt(200000)
)

// TaxBand is a slice of annual income taxed at Rate. A zero Width means the
// band is unbounded.
type TaxBand struct {
	Width decimal.Decimal
	Rate  decimal.Decimal
}

// PAYEBands are applied in order to annualised taxable pay.
var PAYEBands = []TaxBand{
	{Width: decimal.NewFromInt(300000), Rate: decimal.RequireFromString("0.07")},
	{Width: decimal.NewFromInt(300000), Rate: decimal.RequireFromString("0.11")},
	{Width: decimal.NewFromInt(500000), Rate: decimal.RequireFromString("0.15")},
	{Width: decimal.NewFromInt(500000), Rate: decimal.RequireFromString("0.19")},
	{Width: decimal.NewFromInt(1600000), Rate: decimal.RequireFromString("0.21")},
	{Rate: decimal.RequireFromString("0.24")},
}

func (b TaxBand) unbounded() bool {
	return b.Width.IsZero()
}

// CRA is the consolidated relief allowance on monthly gross after pension:
// round(20% g) + round(max(1% g, 200000/12)), rounded again.
func CRA(grossAfterPension decimal.Decimal) decimal.Decimal {
	percentagePart := grossAfterPension.Mul(craRate).Round(2)
	minimumRelief := decimal.Max(
		grossAfterPension.Mul(craFloorRate),
		annualReliefFloor.Div(twelve),
	).Round(2)
	return percentagePart.Add(minimumRelief).Round(2)
}

// TaxablePay may be negative for low earners; it is not clamped.
func TaxablePay(grossAfterPension, cra decimal.Decimal) decimal.Decimal {
	return grossAfterPension.Sub(cra).Round(2)
}

// PAYE annualises monthly taxable pay, runs it through the bands and
// returns the monthly share rounded to 2 places. Non-positive income stops
// before the first band, so it yields zero.
func PAYE(taxablePay decimal.Decimal) decimal.Decimal {
	remaining := taxablePay.Mul(twelve)
	total := decimal.Zero

	for _, band := range PAYEBands {
		if !remaining.IsPositive() {
			break
		}
		inBand := remaining
		if !band.unbounded() {
			inBand = decimal.Min(band.Width, remaining)
		}
		total = total.Add(inBand.Mul(band.Rate))
		if band.unbounded() {
			break
		}
		remaining = remaining.Sub(band.Width)
	}

	return total.Div(twelve).Round(2)
}

// TaxRelief is informational: CRA plus the pension that reduced taxable pay.
func TaxRelief(cra decimal.Decimal, pension Pension) decimal.Decimal {
	return cra.Add(pension.Employee).Add(pension.Voluntary).Round(2)
}

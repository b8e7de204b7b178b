package payroll

import "github.com/shopspring/decimal"

// SplitComponents prorates each configured category:
// round(monthlyGross × pct/100 × ratio, 2). The amounts may drift from the
// prorated gross by a cent per category; that drift is kept.
func SplitComponents(monthlyGross, ratio decimal.Decimal, cfg ComponentConfig) []ComponentAmount {
	out := make([]ComponentAmount, 0, len(cfg.components))
	for _, c := range cfg.components {
		amount := monthlyGross.Mul(c.Percentage.Div(hundred)).Mul(ratio).Round(2)
		out = append(out, ComponentAmount{Name: c.Name, Amount: amount})
	}
	return out
}

package payroll

import "github.com/shopspring/decimal"

var (
	pensionThreshold    = decimal.NewFromInt(30000)
	employeePensionRate = decimal.RequireFromString("0.08")
	employerPensionRate = decimal.RequireFromString("0.10")
)

type PensionInput struct {
	Basic                decimal.Decimal
	Transport            decimal.Decimal
	Housing              decimal.Decimal
	ContractType         ContractType
	ProratedMonthlyGross decimal.Decimal
	VoluntaryPension     decimal.Decimal
}

type Pension struct {
	Employee  decimal.Decimal
	Employer  decimal.Decimal
	Voluntary decimal.Decimal
	Total     decimal.Decimal
}

// Eligible reports whether contributions apply at all. Contract staff and
// anyone earning under 30,000 for the month are exempt.
func (in PensionInput) Eligible() bool {
	return in.ContractType != ContractContract && !in.ProratedMonthlyGross.LessThan(pensionThreshold)
}

// ComputePension returns zero for every field, voluntary included, when the
// employee is not eligible. The voluntary ceiling is enforced upstream.
func ComputePension(in PensionInput) Pension {
	if !in.Eligible() {
		return Pension{
			Employee:  decimal.Zero,
			Employer:  decimal.Zero,
			Voluntary: decimal.Zero,
			Total:     decimal.Zero,
		}
	}

	base := in.Basic.Add(in.Transport).Add(in.Housing)
	employee := base.Mul(employeePensionRate).Round(2)
	employer := base.Mul(employerPensionRate).Round(2)
	voluntary := in.VoluntaryPension.Round(2)

	return Pension{
		Employee:  employee,
		Employer:  employer,
		Voluntary: voluntary,
		Total:     employee.Add(employer).Add(voluntary),
	}
}

package payroll

import (
	"strings"
	"time"

	payrollerrors "go-paye/internal/payroll/errors"

	"github.com/shopspring/decimal"
)

type ContractType string

const (
	ContractFullTime ContractType = "Full Time"
	ContractContract ContractType = "Contract"
)

// ParseContractType accepts "Full Time", "FullTime" and "Contract" in any
// case, ignoring surrounding whitespace.
func ParseContractType(v string) (ContractType, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(v), ""))
	switch normalized {
	case "FULLTIME":
		return ContractFullTime, nil
	case "CONTRACT":
		return ContractContract, nil
	default:
		return "", payrollerrors.ErrInvalidContractType.WithReason("got %q", v)
	}
}

func (c ContractType) Valid() bool {
	return c == ContractFullTime || c == ContractContract
}

const (
	ComponentBasic     = "BASIC"
	ComponentTransport = "TRANSPORT"
	ComponentHousing   = "HOUSING"
	ComponentUtility   = "UTILITY"
)

// Identity is passed through the engine untouched.
type Identity struct {
	AccountNumber string
	StaffID       string
	Email         string
	Name          string
	Department    string
	JobTitle      string
}

type EmployeeInput struct {
	Identity

	AnnualGrossPay   decimal.Decimal
	ContractType     ContractType
	StartDate        time.Time
	EndDate          time.Time
	Reimbursements   decimal.Decimal
	OtherDeductions  decimal.Decimal
	VoluntaryPension decimal.Decimal
}

// ComponentAmount is one prorated slice of gross pay.
type ComponentAmount struct {
	Name   string
	Amount decimal.Decimal
}

type PayrollResult struct {
	Identity

	ContractType ContractType
	StartDate    time.Time
	EndDate      time.Time

	AnnualGrossPay       decimal.Decimal
	MonthlyGross         decimal.Decimal
	WorkingDaysRatio     decimal.Decimal
	ProratedMonthlyGross decimal.Decimal

	// Components follow the order of the engine's ComponentConfig.
	Components []ComponentAmount

	EmployeePension  decimal.Decimal
	EmployerPension  decimal.Decimal
	VoluntaryPension decimal.Decimal
	TotalPension     decimal.Decimal

	CRA             decimal.Decimal
	TaxablePay      decimal.Decimal
	PAYETax         decimal.Decimal
	TaxRelief       decimal.Decimal
	OtherDeductions decimal.Decimal
	Reimbursements  decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
}

// Component returns the prorated amount for a category, zero when the
// category is not configured.
func (r PayrollResult) Component(name string) decimal.Decimal {
	for _, c := range r.Components {
		if c.Name == name {
			return c.Amount
		}
	}
	return decimal.Zero
}

// BatchOutcome is one slot of an order-preserving batch: exactly one of
// Result or Err is meaningful.
type BatchOutcome struct {
	Index  int
	Result PayrollResult
	Err    error
}

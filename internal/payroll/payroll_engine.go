package payroll

import (
	"context"

	payrollerrors "go-paye/internal/payroll/errors"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Engine computes payroll results against one ComponentConfig. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	cfg     ComponentConfig
	workers int
}

type Option func(*Engine)

// WithWorkers bounds the parallelism of ProcessBatch. Values below 1 mean
// sequential processing.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// Configure validates the percentages and binds them to a new engine.
func Configure(percentages map[string]decimal.Decimal, opts ...Option) (*Engine, error) {
	cfg, err := NewComponentConfig(percentages)
	if err != nil {
		return nil, err
	}
	return NewEngine(cfg, opts...), nil
}

// NewEngine binds an already validated config.
func NewEngine(cfg ComponentConfig, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Config() ComponentConfig {
	return e.cfg
}

// Process runs proration, component split, pension and tax for one
// employee. Either the full result is returned or an error naming the
// violated constraint; nothing is partially applied.
func (e *Engine) Process(in EmployeeInput) (PayrollResult, error) {
	if err := validateInput(in); err != nil {
		return PayrollResult{}, err
	}

	ratio, err := WorkingDaysRatio(in.StartDate, in.EndDate)
	if err != nil {
		return PayrollResult{}, err
	}

	monthlyGross := in.AnnualGrossPay.Div(twelve).Round(2)
	prorated := monthlyGross.Mul(ratio).Round(2)
	components := SplitComponents(monthlyGross, ratio, e.cfg)

	result := PayrollResult{
		Identity:             in.Identity,
		ContractType:         in.ContractType,
		StartDate:            in.StartDate,
		EndDate:              in.EndDate,
		AnnualGrossPay:       in.AnnualGrossPay,
		MonthlyGross:         monthlyGross,
		WorkingDaysRatio:     ratio,
		ProratedMonthlyGross: prorated,
		Components:           components,
	}

	pension := ComputePension(PensionInput{
		Basic:                result.Component(ComponentBasic),
		Transport:            result.Component(ComponentTransport),
		Housing:              result.Component(ComponentHousing),
		ContractType:         in.ContractType,
		ProratedMonthlyGross: prorated,
		VoluntaryPension:     in.VoluntaryPension,
	})

	grossAfterPension := prorated.Sub(pension.Employee.Add(pension.Voluntary))
	cra := CRA(grossAfterPension)
	taxable := TaxablePay(grossAfterPension, cra)
	paye := PAYE(taxable)

	other := in.OtherDeductions.Round(2)
	reimbursements := in.Reimbursements.Round(2)
	totalDeductions := paye.Add(pension.Employee).Add(pension.Voluntary).Add(other).Round(2)

	result.EmployeePension = pension.Employee
	result.EmployerPension = pension.Employer
	result.VoluntaryPension = pension.Voluntary
	result.TotalPension = pension.Total
	result.CRA = cra
	result.TaxablePay = taxable
	result.PAYETax = paye
	result.TaxRelief = TaxRelief(cra, pension)
	result.OtherDeductions = other
	result.Reimbursements = reimbursements
	result.TotalDeductions = totalDeductions
	result.NetPay = prorated.Sub(totalDeductions).Add(reimbursements).Round(2)

	return result, nil
}

// ProcessBatch maps Process over inputs. The returned slice has one outcome
// per input in the same order; a failing record never affects the others.
// ctx only stops records that have not started yet.
func (e *Engine) ProcessBatch(ctx context.Context, inputs []EmployeeInput) []BatchOutcome {
	outcomes := make([]BatchOutcome, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range inputs {
		i := i
		g.Go(func() error {
			outcomes[i].Index = i
			if err := gctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Result, outcomes[i].Err = e.Process(inputs[i])
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func validateInput(in EmployeeInput) error {
	if !in.ContractType.Valid() {
		return payrollerrors.ErrInvalidContractType.WithReason("got %q", string(in.ContractType))
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"annual_gross_pay", in.AnnualGrossPay},
		{"reimbursements", in.Reimbursements},
		{"other_deductions", in.OtherDeductions},
		{"voluntary_pension", in.VoluntaryPension},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return payrollerrors.ErrNegativeAmount.WithReason("%s is %s", a.field, a.value.String())
		}
	}

	return nil
}

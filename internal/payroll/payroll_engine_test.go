package payroll_test

import (
	"context"
	"testing"
	"time"

	"go-paye/internal/payroll"
	payrollerrors "go-paye/internal/payroll/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), append([]any{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func equalSplitEngine(t *testing.T, opts ...payroll.Option) *payroll.Engine {
	t.Helper()
	engine, err := payroll.Configure(map[string]decimal.Decimal{
		"BASIC":     dec("40"),
		"TRANSPORT": dec("20"),
		"HOUSING":   dec("20"),
		"UTILITY":   dec("20"),
	}, opts...)
	assert.NoError(t, err)
	return engine
}

func fullMarch(annual string, contract payroll.ContractType) payroll.EmployeeInput {
	return payroll.EmployeeInput{
		Identity: payroll.Identity{
			AccountNumber: "1234567890",
			StaffID:       "EMP001",
			Email:         "ada@example.com",
			Name:          "Ada Obi",
			Department:    "Engineering",
			JobTitle:      "Engineer",
		},
		AnnualGrossPay: dec(annual),
		ContractType:   contract,
		StartDate:      date(2024, time.March, 1),
		EndDate:        date(2024, time.March, 31),
	}
}

func TestConfigure(t *testing.T) {
	cases := []struct {
		name    string
		utility string
		wantErr bool
	}{
		{name: "exact", utility: "20", wantErr: false},
		{name: "lower tolerance", utility: "19.99", wantErr: false},
		{name: "upper tolerance", utility: "20.01", wantErr: false},
		{name: "below tolerance", utility: "19.98", wantErr: true},
		{name: "above tolerance", utility: "20.02", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := payroll.Configure(map[string]decimal.Decimal{
				"BASIC":     dec("40"),
				"TRANSPORT": dec("20"),
				"HOUSING":   dec("20"),
				"UTILITY":   dec(tc.utility),
			})
			if tc.wantErr {
				assert.ErrorIs(t, err, payrollerrors.ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("negative percentage", func(t *testing.T) {
		_, err := payroll.Configure(map[string]decimal.Decimal{
			"BASIC": dec("110"), "TRANSPORT": dec("-10"), "HOUSING": dec("0"),
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "TRANSPORT")
	})

	t.Run("missing pensionable component", func(t *testing.T) {
		_, err := payroll.Configure(map[string]decimal.Decimal{
			"BASIC": dec("50"), "TRANSPORT": dec("50"),
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "HOUSING")
	})
}

func TestParseComponentSpec(t *testing.T) {
	cfg, err := payroll.ParseComponentSpec(payroll.DefaultComponentSpec)
	assert.NoError(t, err)

	names := make([]string, 0)
	for _, c := range cfg.Components() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"BASIC", "TRANSPORT", "HOUSING", "UTILITY", "CLOTHING", "MEAL"}, names)

	_, err = payroll.ParseComponentSpec("basic=50, transport=30 ,housing=20")
	assert.NoError(t, err)

	_, err = payroll.ParseComponentSpec("BASIC:abc,TRANSPORT:50,HOUSING:50")
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidConfig)

	_, err = payroll.ParseComponentSpec("BASIC 100")
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidConfig)
}

func TestEngine_Process_FullMonthFullTime(t *testing.T) {
	engine := equalSplitEngine(t)

	res, err := engine.Process(fullMarch("1200000", payroll.ContractFullTime))

	assert.NoError(t, err)
	assert.Equal(t, "EMP001", res.StaffID)
	assertDecimal(t, "100000.00", res.MonthlyGross)
	assertDecimal(t, "1.00", res.WorkingDaysRatio)
	assertDecimal(t, "100000.00", res.ProratedMonthlyGross)
	assertDecimal(t, "40000.00", res.Component("BASIC"))
	assertDecimal(t, "20000.00", res.Component("UTILITY"))
	assertDecimal(t, "6400.00", res.EmployeePension)
	assertDecimal(t, "8000.00", res.EmployerPension)
	assertDecimal(t, "0", res.VoluntaryPension)
	assertDecimal(t, "14400.00", res.TotalPension)
	assertDecimal(t, "35386.67", res.CRA)
	assertDecimal(t, "58213.33", res.TaxablePay)
	assertDecimal(t, "5732.00", res.PAYETax)
	assertDecimal(t, "41786.67", res.TaxRelief)
	assertDecimal(t, "12132.00", res.TotalDeductions)
	assertDecimal(t, "87868.00", res.NetPay)
}

func TestEngine_Process_WithExtras(t *testing.T) {
	engine := equalSplitEngine(t)
	in := fullMarch("1200000", payroll.ContractFullTime)
	in.Reimbursements = dec("5000")
	in.OtherDeductions = dec("1000")
	in.VoluntaryPension = dec("2000")

	res, err := engine.Process(in)

	assert.NoError(t, err)
	assertDecimal(t, "2000.00", res.VoluntaryPension)
	assertDecimal(t, "34986.67", res.CRA)
	assertDecimal(t, "56613.33", res.TaxablePay)
	assertDecimal(t, "5492.00", res.PAYETax)
	assertDecimal(t, "43386.67", res.TaxRelief)
	assertDecimal(t, "14892.00", res.TotalDeductions)
	assertDecimal(t, "90108.00", res.NetPay)
}

func TestEngine_Process_ContractWaivesPension(t *testing.T) {
	engine := equalSplitEngine(t)
	in := fullMarch("1200000", payroll.ContractContract)
	in.VoluntaryPension = dec("2000")

	res, err := engine.Process(in)

	assert.NoError(t, err)
	assert.True(t, res.EmployeePension.IsZero())
	assert.True(t, res.EmployerPension.IsZero())
	assert.True(t, res.VoluntaryPension.IsZero())
	assert.True(t, res.TotalPension.IsZero())
	assertDecimal(t, "36666.67", res.CRA)
	assertDecimal(t, "63333.33", res.TaxablePay)
	assertDecimal(t, "6500.00", res.PAYETax)
	assertDecimal(t, "93500.00", res.NetPay)
}

func TestEngine_Process_BelowPensionThreshold(t *testing.T) {
	engine := equalSplitEngine(t)

	res, err := engine.Process(fullMarch("240000", payroll.ContractFullTime))

	assert.NoError(t, err)
	assertDecimal(t, "20000.00", res.ProratedMonthlyGross)
	assert.True(t, res.TotalPension.IsZero())
	assertDecimal(t, "20666.67", res.CRA)
	assertDecimal(t, "-666.67", res.TaxablePay)
	assert.True(t, res.PAYETax.IsZero())
	assertDecimal(t, "20000.00", res.NetPay)
}

func TestEngine_Process_SingleWeekday(t *testing.T) {
	engine := equalSplitEngine(t)
	in := fullMarch("1200000", payroll.ContractFullTime)
	in.StartDate = date(2024, time.March, 15)
	in.EndDate = date(2024, time.March, 15)

	res, err := engine.Process(in)

	assert.NoError(t, err)
	// 1 of 21 weekdays
	assertDecimal(t, "0.05", res.WorkingDaysRatio)
	assertDecimal(t, "5000.00", res.ProratedMonthlyGross)
	assertDecimal(t, "2000.00", res.Component("BASIC"))
	assertDecimal(t, "1000.00", res.Component("TRANSPORT"))
	assertDecimal(t, "1000.00", res.Component("HOUSING"))
	// prorated gross is under the threshold
	assert.True(t, res.EmployeePension.IsZero())
}

func TestEngine_Process_PensionableBaseUsesProratedComponents(t *testing.T) {
	engine := equalSplitEngine(t)
	in := fullMarch("2400000", payroll.ContractFullTime)
	in.StartDate = date(2024, time.March, 18)

	res, err := engine.Process(in)

	assert.NoError(t, err)
	// Mar 18-29: 10 of 21 weekdays
	assertDecimal(t, "0.48", res.WorkingDaysRatio)
	assertDecimal(t, "96000.00", res.ProratedMonthlyGross)
	base := res.Component("BASIC").Add(res.Component("TRANSPORT")).Add(res.Component("HOUSING"))
	assertDecimal(t, "76800.00", base)
	assertDecimal(t, "6144.00", res.EmployeePension)
	assertDecimal(t, "7680.00", res.EmployerPension)
}

func TestEngine_Process_InvalidInput(t *testing.T) {
	engine := equalSplitEngine(t)

	t.Run("start after end", func(t *testing.T) {
		in := fullMarch("1200000", payroll.ContractFullTime)
		in.StartDate = date(2024, time.April, 2)

		_, err := engine.Process(in)

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidDateRange)
	})

	t.Run("missing date", func(t *testing.T) {
		in := fullMarch("1200000", payroll.ContractFullTime)
		in.StartDate = time.Time{}

		_, err := engine.Process(in)

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidDate)
	})

	t.Run("negative amount", func(t *testing.T) {
		in := fullMarch("1200000", payroll.ContractFullTime)
		in.OtherDeductions = dec("-1")

		_, err := engine.Process(in)

		assert.ErrorIs(t, err, payrollerrors.ErrNegativeAmount)
		assert.Contains(t, err.Error(), "other_deductions")
	})

	t.Run("unknown contract type", func(t *testing.T) {
		in := fullMarch("1200000", payroll.ContractType("Intern"))

		_, err := engine.Process(in)

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidContractType)
	})
}

func TestEngine_Process_Deterministic(t *testing.T) {
	engine := equalSplitEngine(t)
	in := fullMarch("3650000", payroll.ContractFullTime)
	in.StartDate = date(2024, time.March, 7)

	first, err := engine.Process(in)
	assert.NoError(t, err)
	second, err := engine.Process(in)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_ProcessBatch(t *testing.T) {
	inputs := []payroll.EmployeeInput{
		fullMarch("1200000", payroll.ContractFullTime),
		fullMarch("240000", payroll.ContractFullTime),
		fullMarch("1200000", payroll.ContractContract),
		fullMarch("5000000", payroll.ContractFullTime),
	}
	inputs[1].StartDate = date(2024, time.April, 1) // invalid range
	inputs[3].StartDate = date(2024, time.March, 11)

	for _, workers := range []int{1, 3} {
		engine := equalSplitEngine(t, payroll.WithWorkers(workers))

		outcomes := engine.ProcessBatch(context.Background(), inputs)

		assert.Len(t, outcomes, len(inputs))
		for i, outcome := range outcomes {
			assert.Equal(t, i, outcome.Index)
			expected, expectedErr := engine.Process(inputs[i])
			if expectedErr != nil {
				assert.ErrorIs(t, outcome.Err, payrollerrors.ErrInvalidDateRange)
				continue
			}
			assert.NoError(t, outcome.Err)
			assert.Equal(t, expected, outcome.Result)
		}
	}
}

func TestEngine_ProcessBatch_CancelledContext(t *testing.T) {
	engine := equalSplitEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := engine.ProcessBatch(ctx, []payroll.EmployeeInput{fullMarch("1200000", payroll.ContractFullTime)})

	assert.ErrorIs(t, outcomes[0].Err, context.Canceled)
}

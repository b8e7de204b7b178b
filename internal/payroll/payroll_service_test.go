package payroll_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go-paye/internal/payroll"
	payrollerrors "go-paye/internal/payroll/errors"
	"go-paye/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func marchRequest(annual string) payroll.EmployeeRequest {
	return payroll.EmployeeRequest{
		AccountNumber:  "1234567890",
		StaffID:        "EMP001",
		Email:          "ada@example.com",
		Name:           "Ada Obi",
		Department:     "Engineering",
		JobTitle:       "Engineer",
		AnnualGrossPay: dec(annual),
		ContractType:   "Full Time",
		StartDate:      "2024-03-01",
		EndDate:        "2024-03-31",
	}
}

func newService(t *testing.T) payroll.Service {
	t.Helper()
	return payroll.NewService(equalSplitEngine(t, payroll.WithWorkers(2)), 2)
}

func TestService_Calculate(t *testing.T) {
	ctx := context.Background()

	t.Run("full month", func(t *testing.T) {
		resp, err := newService(t).Calculate(ctx, payroll.CalculatePayrollRequest{EmployeeRequest: marchRequest("1200000")})

		assert.NoError(t, err)
		assert.Equal(t, "EMP001", resp.StaffID)
		assert.Equal(t, "Full Time", resp.ContractType)
		assert.Equal(t, "2024-03-01", resp.StartDate)
		assert.Equal(t, json.Number("1.00"), resp.WorkingDaysRatio)
		assert.Equal(t, json.Number("100000.00"), resp.MonthlyGross)
		assert.Equal(t, json.Number("6400.00"), resp.EmployeePension)
		assert.Equal(t, json.Number("8000.00"), resp.EmployerPension)
		assert.Equal(t, json.Number("35386.67"), resp.CRA)
		assert.Equal(t, json.Number("5732.00"), resp.PAYETax)
		assert.Equal(t, json.Number("87868.00"), resp.NetPay)
		assert.Equal(t, []payroll.ComponentAmountResponse{
			{Name: "BASIC", Amount: "40000.00"},
			{Name: "TRANSPORT", Amount: "20000.00"},
			{Name: "HOUSING", Amount: "20000.00"},
			{Name: "UTILITY", Amount: "20000.00"},
		}, resp.Components)
	})

	t.Run("contract type is normalised", func(t *testing.T) {
		req := marchRequest("1200000")
		req.ContractType = " contract "

		resp, err := newService(t).Calculate(ctx, payroll.CalculatePayrollRequest{EmployeeRequest: req})

		assert.NoError(t, err)
		assert.Equal(t, "Contract", resp.ContractType)
		assert.Equal(t, json.Number("0.00"), resp.EmployeePension)
		assert.Equal(t, json.Number("93500.00"), resp.NetPay)
	})

	t.Run("component override", func(t *testing.T) {
		svc := newService(t)
		req := payroll.CalculatePayrollRequest{
			EmployeeRequest: marchRequest("1200000"),
			Components: map[string]decimal.Decimal{
				"basic":     dec("50"),
				"transport": dec("25"),
				"housing":   dec("25"),
			},
		}

		first, err := svc.Calculate(ctx, req)
		assert.NoError(t, err)
		second, err := svc.Calculate(ctx, req)
		assert.NoError(t, err)

		assert.Len(t, first.Components, 3)
		assert.Equal(t, json.Number("8000.00"), first.EmployeePension)
		assert.Equal(t, first, second)
	})

	t.Run("invalid override", func(t *testing.T) {
		_, err := newService(t).Calculate(ctx, payroll.CalculatePayrollRequest{
			EmployeeRequest: marchRequest("1200000"),
			Components:      map[string]decimal.Decimal{"BASIC": dec("100")},
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidConfig)
	})

	cases := []struct {
		name   string
		mutate func(r *payroll.EmployeeRequest)
		want   error
	}{
		{"bad contract type", func(r *payroll.EmployeeRequest) { r.ContractType = "Intern" }, payrollerrors.ErrInvalidContractType},
		{"bad date", func(r *payroll.EmployeeRequest) { r.StartDate = "01/03/2024" }, payrollerrors.ErrInvalidDate},
		{"start after end", func(r *payroll.EmployeeRequest) { r.StartDate = "2024-04-01" }, payrollerrors.ErrInvalidDateRange},
		{"negative deduction", func(r *payroll.EmployeeRequest) { r.OtherDeductions = dec("-1") }, payrollerrors.ErrNegativeAmount},
		{"voluntary pension above a third of monthly pay", func(r *payroll.EmployeeRequest) { r.VoluntaryPension = dec("33333.34") }, payrollerrors.ErrVoluntaryPensionCeiling},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := marchRequest("1200000")
			tc.mutate(&req)

			_, err := newService(t).Calculate(ctx, payroll.CalculatePayrollRequest{EmployeeRequest: req})

			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("voluntary pension at the ceiling", func(t *testing.T) {
		req := marchRequest("1200000")
		req.VoluntaryPension = dec("33333.33")

		_, err := newService(t).Calculate(ctx, payroll.CalculatePayrollRequest{EmployeeRequest: req})

		assert.NoError(t, err)
	})
}

func TestService_CalculateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps order and isolates failures", func(t *testing.T) {
		bad := marchRequest("1200000")
		bad.StaffID = "EMP002"
		bad.ContractType = "Part Time"
		contract := marchRequest("1200000")
		contract.StaffID = "EMP003"
		contract.ContractType = "Contract"

		resp, err := newService(t).CalculateBatch(ctx, payroll.BatchCalculateRequest{
			Employees: []payroll.EmployeeRequest{marchRequest("1200000"), bad, contract},
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.BatchID)
		assert.Equal(t, 3, resp.Total)
		assert.Equal(t, 1, resp.Failed)
		assert.Len(t, resp.Items, 3)

		for i, item := range resp.Items {
			assert.Equal(t, i, item.Index)
		}
		assert.True(t, resp.Items[0].Ok)
		assert.Equal(t, json.Number("87868.00"), resp.Items[0].Result.NetPay)
		assert.False(t, resp.Items[1].Ok)
		assert.Nil(t, resp.Items[1].Result)
		assert.Equal(t, "INVALID_INPUT", resp.Items[1].Error.Code)
		assert.Contains(t, resp.Items[1].Error.Message, "Part Time")
		assert.True(t, resp.Items[2].Ok)
		assert.Equal(t, "EMP003", resp.Items[2].Result.StaffID)
		assert.Equal(t, json.Number("93500.00"), resp.Items[2].Result.NetPay)
	})

	t.Run("keeps an upstream batch id", func(t *testing.T) {
		queued := contextutil.WithBatchID(ctx, "batch-42")

		resp, err := newService(t).CalculateBatch(queued, payroll.BatchCalculateRequest{
			Employees: []payroll.EmployeeRequest{marchRequest("1200000")},
		})

		assert.NoError(t, err)
		assert.Equal(t, "batch-42", resp.BatchID)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := newService(t).CalculateBatch(ctx, payroll.BatchCalculateRequest{})

		assert.ErrorIs(t, err, payrollerrors.ErrEmptyBatch)
	})
}

const csvHeader = "Account Number,STAFF ID,Email,NAME,DEPARTMENT,JOB TITLE,ANNUAL GROSS PAY,START DATE,END DATE,Contract Type,Reimbursements,Other Deductions,VOLUNTARY_PENSION\n"

func TestService_ProcessCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("rows are processed independently", func(t *testing.T) {
		input := csvHeader +
			`1234567890,EMP001,ada@example.com,"Obi, Ada",Engineering,Engineer,"1,200,000",2024-03-01,2024-03-31,Full Time,5000,1000,2000` + "\n" +
			`0987654321,EMP002,bad@example.com,Bad Row,Design,Designer,1200000,2024-03-01,2024-03-31,Full Time,lots,,` + "\n"

		batch, err := newService(t).ProcessCSV(ctx, strings.NewReader(input))

		assert.NoError(t, err)
		assert.Len(t, batch.Rows, 2)
		assert.Len(t, batch.Outcomes, 2)
		assert.NoError(t, batch.Outcomes[0].Err)
		assertDecimal(t, "90108.00", batch.Outcomes[0].Result.NetPay)
		assert.Equal(t, "Obi, Ada", batch.Outcomes[0].Result.Name)
		assert.ErrorIs(t, batch.Outcomes[1].Err, payrollerrors.ErrInvalidAmount)

		resp := batch.Response()
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, 1, resp.Failed)

		out, err := batch.CSV()
		assert.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		assert.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "Account Number,STAFF ID,"))
		assert.True(t, strings.HasSuffix(lines[0], ",NET_PAY,ERROR"))
		assert.Contains(t, lines[1], `"Obi, Ada"`)
		assert.Contains(t, lines[1], ",90108.00,")
		assert.Contains(t, lines[2], "EMP002")
		assert.Contains(t, lines[2], "Reimbursements")
	})

	t.Run("short rows fail only themselves", func(t *testing.T) {
		input := csvHeader +
			"1,EMP001,a@b.c,Ada,Eng,Eng,1200000,2024-03-01,2024-03-31,Full Time,,,\n" +
			"2,EMP002,b@b.c,Bola,Eng,Eng,1200000,2024-03-01,2024-03-31,Full Time,,\n" +
			"3,EMP003,c@b.c,Chidi,Eng,Eng,1200000,2024-03-01,2024-03-31,Full Time,,,\n" +
			"4,EMP004,d@b.c,Dayo\n"

		batch, err := newService(t).ProcessCSV(ctx, strings.NewReader(input))

		assert.NoError(t, err)
		assert.Len(t, batch.Outcomes, 4)
		for i := 0; i < 3; i++ {
			assert.NoError(t, batch.Outcomes[i].Err)
		}
		assert.True(t, batch.Outcomes[1].Result.NetPay.Equal(batch.Outcomes[0].Result.NetPay))
		assert.ErrorIs(t, batch.Outcomes[3].Err, payrollerrors.ErrInvalidAmount)
		assert.Contains(t, batch.Outcomes[3].Err.Error(), "ANNUAL GROSS PAY is required")
		assert.Equal(t, 1, batch.Response().Failed)
	})

	t.Run("missing columns fail the file", func(t *testing.T) {
		input := "STAFF ID,NAME,ANNUAL GROSS PAY\nEMP001,Ada,1200000\n"

		_, err := newService(t).ProcessCSV(ctx, strings.NewReader(input))

		assert.ErrorIs(t, err, payrollerrors.ErrMissingColumns)
		assert.Contains(t, err.Error(), "Contract Type")
	})

	t.Run("header only", func(t *testing.T) {
		_, err := newService(t).ProcessCSV(ctx, strings.NewReader(csvHeader))

		assert.ErrorIs(t, err, payrollerrors.ErrEmptyFile)
	})

	t.Run("byte order mark is ignored", func(t *testing.T) {
		input := "\ufeff" + csvHeader + "1,EMP001,a@b.c,Ada,Eng,Eng,1200000,2024-03-01,2024-03-31,Full Time,,,\n"

		batch, err := newService(t).ProcessCSV(ctx, strings.NewReader(input))

		assert.NoError(t, err)
		assert.NoError(t, batch.Outcomes[0].Err)
	})
}

func TestService_Payslip(t *testing.T) {
	file, err := newService(t).Payslip(context.Background(), payroll.PayslipRequest{
		CalculatePayrollRequest: payroll.CalculatePayrollRequest{EmployeeRequest: marchRequest("1200000")},
		CompanyName:             "Acme Ltd",
	})

	assert.NoError(t, err)
	assert.Equal(t, "EMP001_202403_payslip.pdf", file.FileName)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF-")))
}

func TestService_Template(t *testing.T) {
	now := time.Date(2024, time.March, 29, 10, 0, 0, 0, time.UTC)

	data, err := newService(t).Template(now)
	assert.NoError(t, err)

	rows, err := payroll.ReadEmployeeRows(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Full Time", rows[0].ContractType)
	assert.Equal(t, "Contract", rows[1].ContractType)
	assert.Equal(t, "2024-03-29", rows[0].EndDate)
	assert.Equal(t, "2023-03-30", rows[0].StartDate)
	assert.Equal(t, "2023-10-01", rows[1].StartDate)

	for _, row := range rows {
		req, err := row.Request()
		assert.NoError(t, err)
		_, err = newService(t).Calculate(context.Background(), payroll.CalculatePayrollRequest{EmployeeRequest: req})
		assert.NoError(t, err)
	}
}

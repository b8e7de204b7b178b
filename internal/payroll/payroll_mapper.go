package payroll

import (
	"encoding/json"
	"errors"

	payrollerrors "go-paye/internal/payroll/errors"
	"go-paye/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

var pensionCeilingDivisor = decimal.NewFromInt(36)

// toEmployeeInput is the upstream gate in front of the engine: date format,
// contract type, sign of amounts and the voluntary pension ceiling
// (voluntary ≤ annual/12/3).
func toEmployeeInput(req EmployeeRequest) (EmployeeInput, error) {
	contractType, err := ParseContractType(req.ContractType)
	if err != nil {
		return EmployeeInput{}, err
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return EmployeeInput{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return EmployeeInput{}, err
	}
	if start.After(end) {
		return EmployeeInput{}, payrollerrors.ErrInvalidDateRange.WithReason(
			"start_date %s is after end_date %s", req.StartDate, req.EndDate,
		)
	}

	in := EmployeeInput{
		Identity: Identity{
			AccountNumber: req.AccountNumber,
			StaffID:       req.StaffID,
			Email:         req.Email,
			Name:          req.Name,
			Department:    req.Department,
			JobTitle:      req.JobTitle,
		},
		AnnualGrossPay:   req.AnnualGrossPay,
		ContractType:     contractType,
		StartDate:        start,
		EndDate:          end,
		Reimbursements:   req.Reimbursements,
		OtherDeductions:  req.OtherDeductions,
		VoluntaryPension: req.VoluntaryPension,
	}
	if err := validateInput(in); err != nil {
		return EmployeeInput{}, err
	}

	ceiling := in.AnnualGrossPay.Div(pensionCeilingDivisor)
	if in.VoluntaryPension.GreaterThan(ceiling) {
		return EmployeeInput{}, payrollerrors.ErrVoluntaryPensionCeiling.WithReason(
			"%s exceeds %s", in.VoluntaryPension.StringFixed(2), ceiling.StringFixed(2),
		)
	}

	return in, nil
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func mapToResponse(r PayrollResult) PayrollResultResponse {
	components := make([]ComponentAmountResponse, len(r.Components))
	for i, c := range r.Components {
		components[i] = ComponentAmountResponse{Name: c.Name, Amount: money(c.Amount)}
	}

	return PayrollResultResponse{
		AccountNumber:        r.AccountNumber,
		StaffID:              r.StaffID,
		Email:                r.Email,
		Name:                 r.Name,
		Department:           r.Department,
		JobTitle:             r.JobTitle,
		ContractType:         string(r.ContractType),
		StartDate:            r.StartDate.Format(dateLayout),
		EndDate:              r.EndDate.Format(dateLayout),
		AnnualGrossPay:       money(r.AnnualGrossPay),
		MonthlyGross:         money(r.MonthlyGross),
		WorkingDaysRatio:     money(r.WorkingDaysRatio),
		ProratedMonthlyGross: money(r.ProratedMonthlyGross),
		Components:           components,
		EmployeePension:      money(r.EmployeePension),
		EmployerPension:      money(r.EmployerPension),
		VoluntaryPension:     money(r.VoluntaryPension),
		TotalPension:         money(r.TotalPension),
		CRA:                  money(r.CRA),
		TaxablePay:           money(r.TaxablePay),
		PAYETax:              money(r.PAYETax),
		TaxRelief:            money(r.TaxRelief),
		OtherDeductions:      money(r.OtherDeductions),
		Reimbursements:       money(r.Reimbursements),
		TotalDeductions:      money(r.TotalDeductions),
		NetPay:               money(r.NetPay),
	}
}

// NewItemError flattens err into the per-item error shape.
func NewItemError(err error) *ItemError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return &ItemError{Code: appErr.Code, Message: appErr.Message}
	}
	return &ItemError{Code: apperror.CodeInternalError, Message: err.Error()}
}

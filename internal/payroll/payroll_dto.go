package payroll

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type EmployeeRequest struct {
	AccountNumber    string          `json:"account_number"`
	StaffID          string          `json:"staff_id"`
	Email            string          `json:"email"`
	Name             string          `json:"name"`
	Department       string          `json:"department"`
	JobTitle         string          `json:"job_title"`
	AnnualGrossPay   decimal.Decimal `json:"annual_gross_pay" binding:"gte=0"`
	ContractType     string          `json:"contract_type" binding:"required"`
	StartDate        string          `json:"start_date" binding:"required"`
	EndDate          string          `json:"end_date" binding:"required"`
	Reimbursements   decimal.Decimal `json:"reimbursements" binding:"gte=0"`
	OtherDeductions  decimal.Decimal `json:"other_deductions" binding:"gte=0"`
	VoluntaryPension decimal.Decimal `json:"voluntary_pension" binding:"gte=0"`
}

type CalculatePayrollRequest struct {
	EmployeeRequest
	// Components overrides the service default breakdown for this call.
	Components map[string]decimal.Decimal `json:"components,omitempty"`
}

type BatchCalculateRequest struct {
	Employees  []EmployeeRequest          `json:"employees" binding:"required,min=1,dive"`
	Components map[string]decimal.Decimal `json:"components,omitempty"`
}

type PayslipRequest struct {
	CalculatePayrollRequest
	CompanyName string `json:"company_name"`
}

type ComponentAmountResponse struct {
	Name   string      `json:"name"`
	Amount json.Number `json:"amount"`
}

// PayrollResultResponse carries money as JSON numbers with two fraction
// digits; formatting for display is the client's job.
type PayrollResultResponse struct {
	AccountNumber        string                    `json:"account_number"`
	StaffID              string                    `json:"staff_id"`
	Email                string                    `json:"email"`
	Name                 string                    `json:"name"`
	Department           string                    `json:"department"`
	JobTitle             string                    `json:"job_title"`
	ContractType         string                    `json:"contract_type"`
	StartDate            string                    `json:"start_date"`
	EndDate              string                    `json:"end_date"`
	AnnualGrossPay       json.Number               `json:"annual_gross_pay"`
	MonthlyGross         json.Number               `json:"monthly_gross"`
	WorkingDaysRatio     json.Number               `json:"working_days_ratio"`
	ProratedMonthlyGross json.Number               `json:"prorated_monthly_gross"`
	Components           []ComponentAmountResponse `json:"components"`
	EmployeePension      json.Number               `json:"employee_pension"`
	EmployerPension      json.Number               `json:"employer_pension"`
	VoluntaryPension     json.Number               `json:"voluntary_pension"`
	TotalPension         json.Number               `json:"total_pension"`
	CRA                  json.Number               `json:"cra"`
	TaxablePay           json.Number               `json:"taxable_pay"`
	PAYETax              json.Number               `json:"paye_tax"`
	TaxRelief            json.Number               `json:"tax_relief"`
	OtherDeductions      json.Number               `json:"other_deductions"`
	Reimbursements       json.Number               `json:"reimbursements"`
	TotalDeductions      json.Number               `json:"total_deductions"`
	NetPay               json.Number               `json:"net_pay"`
}

type ItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BatchItemResponse struct {
	Index  int                    `json:"index"`
	Ok     bool                   `json:"ok"`
	Result *PayrollResultResponse `json:"result,omitempty"`
	Error  *ItemError             `json:"error,omitempty"`
}

type BatchCalculateResponse struct {
	BatchID string              `json:"batch_id"`
	Items   []BatchItemResponse `json:"items"`
	Total   int                 `json:"total"`
	Failed  int                 `json:"failed"`
}

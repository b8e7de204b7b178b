package payroll

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"time"

	payrollerrors "go-paye/internal/payroll/errors"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// RequiredColumns must all be present in an uploaded employee file.
var RequiredColumns = []string{
	"Account Number", "STAFF ID", "Email", "NAME", "DEPARTMENT",
	"JOB TITLE", "ANNUAL GROSS PAY", "START DATE", "END DATE",
	"Contract Type", "Reimbursements", "Other Deductions", "VOLUNTARY_PENSION",
}

var utf8BOM = []byte("\ufeff")

// EmployeeRow is one line of the upload file. Every cell is kept as text so
// a bad value only fails its own row.
type EmployeeRow struct {
	AccountNumber    string `csv:"Account Number"`
	StaffID          string `csv:"STAFF ID"`
	Email            string `csv:"Email"`
	Name             string `csv:"NAME"`
	Department       string `csv:"DEPARTMENT"`
	JobTitle         string `csv:"JOB TITLE"`
	AnnualGrossPay   string `csv:"ANNUAL GROSS PAY"`
	StartDate        string `csv:"START DATE"`
	EndDate          string `csv:"END DATE"`
	ContractType     string `csv:"Contract Type"`
	Reimbursements   string `csv:"Reimbursements"`
	OtherDeductions  string `csv:"Other Deductions"`
	VoluntaryPension string `csv:"VOLUNTARY_PENSION"`
}

type resultRow struct {
	AccountNumber        string `csv:"Account Number"`
	StaffID              string `csv:"STAFF ID"`
	Email                string `csv:"Email"`
	Name                 string `csv:"NAME"`
	Department           string `csv:"DEPARTMENT"`
	JobTitle             string `csv:"JOB TITLE"`
	AnnualGrossPay       string `csv:"ANNUAL GROSS PAY"`
	StartDate            string `csv:"START DATE"`
	EndDate              string `csv:"END DATE"`
	ContractType         string `csv:"Contract Type"`
	WorkingDaysRatio     string `csv:"WORKING_DAYS_RATIO"`
	MonthlyGross         string `csv:"MONTHLY_GROSS"`
	ProratedMonthlyGross string `csv:"PRORATED_MONTHLY_GROSS"`
	Basic                string `csv:"COMP_BASIC"`
	Transport            string `csv:"COMP_TRANSPORT"`
	Housing              string `csv:"COMP_HOUSING"`
	Utility              string `csv:"COMP_UTILITY"`
	Other                string `csv:"COMP_OTHER"`
	CRA                  string `csv:"CRA"`
	MandatoryPension     string `csv:"MANDATORY_PENSION"`
	VoluntaryPension     string `csv:"VOLUNTARY_PENSION"`
	EmployerPension      string `csv:"EMPLOYER_PENSION"`
	TaxRelief            string `csv:"TAX_RELIEF"`
	TaxablePay           string `csv:"TAXABLE_PAY"`
	PAYETax              string `csv:"PAYE_TAX"`
	OtherDeductions      string `csv:"OTHER_DEDUCTIONS"`
	Reimbursements       string `csv:"REIMBURSEMENTS"`
	TotalDeductions      string `csv:"TOTAL_DEDUCTIONS"`
	NetPay               string `csv:"NET_PAY"`
	Error                string `csv:"ERROR"`
}

// ReadEmployeeRows parses an upload. A missing required column or a file
// without data rows fails the whole file.
func ReadEmployeeRows(r io.Reader) ([]EmployeeRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	records, err := lenientReader(data).ReadAll()
	if err != nil {
		return nil, payrollerrors.ErrInvalidInput.WithReason("malformed CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, payrollerrors.ErrEmptyFile
	}

	if missing := missingColumns(records[0]); len(missing) > 0 {
		return nil, payrollerrors.ErrMissingColumns.WithReason("%s", strings.Join(missing, ", "))
	}
	if len(records) == 1 {
		return nil, payrollerrors.ErrEmptyFile
	}

	var rows []EmployeeRow
	if err := gocsv.UnmarshalCSV(lenientReader(data), &rows); err != nil {
		return nil, payrollerrors.ErrInvalidInput.WithReason("malformed CSV: %v", err)
	}
	return rows, nil
}

// lenientReader accepts rows of any width. Missing trailing cells read as
// blank, so a short row fails or defaults on its own.
func lenientReader(data []byte) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	return r
}

func missingColumns(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = struct{}{}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// Request coerces the text cells. Blank optional amounts are zero; a blank
// annual gross pay is an error.
func (r EmployeeRow) Request() (EmployeeRequest, error) {
	annual, err := parseAmount("ANNUAL GROSS PAY", r.AnnualGrossPay, true)
	if err != nil {
		return EmployeeRequest{}, err
	}
	reimbursements, err := parseAmount("Reimbursements", r.Reimbursements, false)
	if err != nil {
		return EmployeeRequest{}, err
	}
	other, err := parseAmount("Other Deductions", r.OtherDeductions, false)
	if err != nil {
		return EmployeeRequest{}, err
	}
	voluntary, err := parseAmount("VOLUNTARY_PENSION", r.VoluntaryPension, false)
	if err != nil {
		return EmployeeRequest{}, err
	}

	return EmployeeRequest{
		AccountNumber:    strings.TrimSpace(r.AccountNumber),
		StaffID:          strings.TrimSpace(r.StaffID),
		Email:            strings.TrimSpace(r.Email),
		Name:             strings.TrimSpace(r.Name),
		Department:       strings.TrimSpace(r.Department),
		JobTitle:         strings.TrimSpace(r.JobTitle),
		AnnualGrossPay:   annual,
		ContractType:     r.ContractType,
		StartDate:        strings.TrimSpace(r.StartDate),
		EndDate:          strings.TrimSpace(r.EndDate),
		Reimbursements:   reimbursements,
		OtherDeductions:  other,
		VoluntaryPension: voluntary,
	}, nil
}

func parseAmount(column, v string, required bool) (decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		if required {
			return decimal.Zero, payrollerrors.ErrInvalidAmount.WithReason("%s is required", column)
		}
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", ""))
	if err != nil {
		return decimal.Zero, payrollerrors.ErrInvalidAmount.WithReason("%s: %q", column, v)
	}
	return d, nil
}

// WriteResultsCSV writes one line per row, in order. Failed rows keep their
// identity columns and carry the reason in ERROR.
func WriteResultsCSV(w io.Writer, rows []EmployeeRow, outcomes []BatchOutcome) error {
	out := make([]*resultRow, len(outcomes))
	for i, o := range outcomes {
		var row EmployeeRow
		if i < len(rows) {
			row = rows[i]
		}
		if o.Err != nil {
			out[i] = &resultRow{
				AccountNumber:  row.AccountNumber,
				StaffID:        row.StaffID,
				Email:          row.Email,
				Name:           row.Name,
				Department:     row.Department,
				JobTitle:       row.JobTitle,
				AnnualGrossPay: row.AnnualGrossPay,
				StartDate:      row.StartDate,
				EndDate:        row.EndDate,
				ContractType:   row.ContractType,
				Error:          o.Err.Error(),
			}
			continue
		}
		out[i] = toResultRow(o.Result)
	}
	return gocsv.Marshal(&out, w)
}

func toResultRow(r PayrollResult) *resultRow {
	other := decimal.Zero
	for _, c := range r.Components {
		switch c.Name {
		case ComponentBasic, ComponentTransport, ComponentHousing, ComponentUtility:
		default:
			other = other.Add(c.Amount)
		}
	}

	return &resultRow{
		AccountNumber:        r.AccountNumber,
		StaffID:              r.StaffID,
		Email:                r.Email,
		Name:                 r.Name,
		Department:           r.Department,
		JobTitle:             r.JobTitle,
		AnnualGrossPay:       r.AnnualGrossPay.StringFixed(2),
		StartDate:            r.StartDate.Format(dateLayout),
		EndDate:              r.EndDate.Format(dateLayout),
		ContractType:         string(r.ContractType),
		WorkingDaysRatio:     r.WorkingDaysRatio.StringFixed(2),
		MonthlyGross:         r.MonthlyGross.StringFixed(2),
		ProratedMonthlyGross: r.ProratedMonthlyGross.StringFixed(2),
		Basic:                r.Component(ComponentBasic).StringFixed(2),
		Transport:            r.Component(ComponentTransport).StringFixed(2),
		Housing:              r.Component(ComponentHousing).StringFixed(2),
		Utility:              r.Component(ComponentUtility).StringFixed(2),
		Other:                other.StringFixed(2),
		CRA:                  r.CRA.StringFixed(2),
		MandatoryPension:     r.EmployeePension.StringFixed(2),
		VoluntaryPension:     r.VoluntaryPension.StringFixed(2),
		EmployerPension:      r.EmployerPension.StringFixed(2),
		TaxRelief:            r.TaxRelief.StringFixed(2),
		TaxablePay:           r.TaxablePay.StringFixed(2),
		PAYETax:              r.PAYETax.StringFixed(2),
		OtherDeductions:      r.OtherDeductions.StringFixed(2),
		Reimbursements:       r.Reimbursements.StringFixed(2),
		TotalDeductions:      r.TotalDeductions.StringFixed(2),
		NetPay:               r.NetPay.StringFixed(2),
	}
}

// TemplateCSV returns an upload template with one Full Time and one
// Contract example, both ending on now.
func TemplateCSV(now time.Time) ([]byte, error) {
	end := now.Format(dateLayout)
	rows := []*EmployeeRow{
		{
			AccountNumber:    "1234567890",
			StaffID:          "EMP001",
			Email:            "john.doe@company.com",
			Name:             "John Doe",
			Department:       "Engineering",
			JobTitle:         "Software Engineer",
			AnnualGrossPay:   "5000000",
			StartDate:        now.AddDate(0, 0, -365).Format(dateLayout),
			EndDate:          end,
			ContractType:     string(ContractFullTime),
			Reimbursements:   "50000",
			OtherDeductions:  "10000",
			VoluntaryPension: "0",
		},
		{
			AccountNumber:    "0987654321",
			StaffID:          "CON001",
			Email:            "jane.smith@company.com",
			Name:             "Jane Smith",
			Department:       "Design",
			JobTitle:         "UI Designer",
			AnnualGrossPay:   "4000000",
			StartDate:        now.AddDate(0, 0, -180).Format(dateLayout),
			EndDate:          end,
			ContractType:     string(ContractContract),
			Reimbursements:   "25000",
			OtherDeductions:  "5000",
			VoluntaryPension: "0",
		},
	}
	return gocsv.MarshalBytes(&rows)
}

package payroll

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	payslipLabelWidth  = 120.0
	payslipAmountWidth = 60.0
	payslipLineHeight  = 7.0
)

var amountPrinter = message.NewPrinter(language.English)

// FormatNaira renders an amount the way it appears on a payslip,
// e.g. "NGN 1,234.56".
func FormatNaira(d decimal.Decimal) string {
	return amountPrinter.Sprintf("NGN %.2f", d.Round(2).InexactFloat64())
}

// PayslipFileName is "<STAFF ID>_<YYYYMM>_payslip.pdf" for the pay month.
func PayslipFileName(r PayrollResult) string {
	id := strings.TrimSpace(r.StaffID)
	if id == "" {
		id = "employee"
	}
	id = strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(id)
	return fmt.Sprintf("%s_%s_payslip.pdf", id, r.EndDate.Format("200601"))
}

// RenderPayslip lays out one employee's result as an A4 PDF.
func RenderPayslip(r PayrollResult, companyName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip", false)
	pdf.AddPage()

	if companyName != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, companyName, "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Payslip", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	line := func(text string) {
		pdf.CellFormat(0, payslipLineHeight, text, "", 1, "L", false, 0, "")
	}
	line(fmt.Sprintf("Employee: %s", r.Name))
	line(fmt.Sprintf("Staff ID: %s", r.StaffID))
	if r.Department != "" || r.JobTitle != "" {
		line(fmt.Sprintf("%s / %s", r.Department, r.JobTitle))
	}
	line(fmt.Sprintf("Pay period: %s (%s to %s)",
		r.EndDate.Format("January 2006"),
		r.StartDate.Format(dateLayout),
		r.EndDate.Format(dateLayout),
	))
	line(fmt.Sprintf("Contract type: %s", r.ContractType))
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(payslipLabelWidth+payslipAmountWidth, 8, title, "", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
	}
	row := func(label string, amount decimal.Decimal) {
		pdf.CellFormat(payslipLabelWidth, payslipLineHeight, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(payslipAmountWidth, payslipLineHeight, FormatNaira(amount), "", 1, "R", false, 0, "")
	}
	total := func(label string, amount decimal.Decimal) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(payslipLabelWidth, payslipLineHeight, label, "T", 0, "L", false, 0, "")
		pdf.CellFormat(payslipAmountWidth, payslipLineHeight, FormatNaira(amount), "T", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.Ln(3)
	}

	title := cases.Title(language.English)

	section("Earnings")
	for _, c := range r.Components {
		row(title.String(strings.ToLower(c.Name)), c.Amount)
	}
	if r.Reimbursements.IsPositive() {
		row("Reimbursements", r.Reimbursements)
	} else {
		line("No salary add-ons this month.")
	}
	total("Total earnings", r.ProratedMonthlyGross.Add(r.Reimbursements))

	section("Statutory deductions")
	row("Employee pension (8%)", r.EmployeePension)
	row("Voluntary pension", r.VoluntaryPension)
	row("PAYE tax", r.PAYETax)
	pdf.SetTextColor(110, 110, 110)
	row("Employer pension (10%, not deducted)", r.EmployerPension)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)

	section("Other deductions")
	row("Other deductions", r.OtherDeductions)
	total("Total deductions", r.TotalDeductions)

	section("Tax computation")
	row("Consolidated relief allowance", r.CRA)
	row("Taxable pay", r.TaxablePay)
	row("Total tax relief", r.TaxRelief)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetFillColor(220, 235, 220)
	pdf.CellFormat(payslipLabelWidth, 10, "Net pay", "", 0, "L", true, 0, "")
	pdf.CellFormat(payslipAmountWidth, 10, FormatNaira(r.NetPay), "", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

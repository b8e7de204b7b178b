package app

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-paye/internal/payroll"

	"github.com/stretchr/testify/assert"
)

const batchInput = `Account Number,STAFF ID,Email,NAME,DEPARTMENT,JOB TITLE,ANNUAL GROSS PAY,START DATE,END DATE,Contract Type,Reimbursements,Other Deductions,VOLUNTARY_PENSION
1234567890,EMP001,john@company.com,John Doe,Engineering,Engineer,1200000,2024-03-01,2024-03-31,Full Time,,,
0987654321,EMP002,jane@company.com,Jane Smith,Design,Designer,abc,2024-03-01,2024-03-31,Full Time,,,
`

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "employees.csv")
	out := filepath.Join(dir, "results.csv")
	slips := filepath.Join(dir, "payslips")
	assert.NoError(t, os.WriteFile(in, []byte(batchInput), 0o644))

	summary, err := RunBatch(context.Background(), BatchOptions{
		In:          in,
		Out:         out,
		PayslipDir:  slips,
		Components:  payroll.DefaultComponentSpec,
		Workers:     2,
		CompanyName: "Acme Ltd",
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Payslips)

	f, err := os.Open(out)
	assert.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3)

	header := records[0]
	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %s missing", name)
		return -1
	}
	assert.Equal(t, "88220.00", records[1][col("NET_PAY")])
	assert.Equal(t, "", records[1][col("ERROR")])
	assert.Equal(t, "EMP002", records[2][col("STAFF ID")])
	assert.True(t, strings.Contains(records[2][col("ERROR")], "ANNUAL GROSS PAY"))

	pdf, err := os.ReadFile(filepath.Join(slips, "EMP001_202403_payslip.pdf"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
}

func TestRunBatch_InvalidComponents(t *testing.T) {
	_, err := RunBatch(context.Background(), BatchOptions{In: "unused.csv", Components: "BASIC:50"})
	assert.Error(t, err)
}

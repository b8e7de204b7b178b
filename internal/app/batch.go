package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go-paye/internal/bootstrap"
	"go-paye/internal/payroll"

	"go.uber.org/zap"
)

type BatchOptions struct {
	In          string
	Out         string
	PayslipDir  string
	Components  string
	Workers     int
	CompanyName string
}

type BatchSummary struct {
	BatchID  string
	Total    int
	Failed   int
	Payslips int
}

// RunBatch processes a CSV file offline: results go to Out ("-" for
// stdout) and, when PayslipDir is set, one PDF per successful row.
func RunBatch(ctx context.Context, opts BatchOptions) (BatchSummary, error) {
	logger := zap.L().Named("app.batch")

	engine, err := Config{Components: opts.Components, BatchWorkers: opts.Workers}.Engine()
	if err != nil {
		return BatchSummary{}, err
	}
	svc := payroll.NewService(engine, opts.Workers)

	in, err := os.Open(opts.In)
	if err != nil {
		return BatchSummary{}, err
	}
	defer in.Close()

	batch, err := svc.ProcessCSV(ctx, in)
	if err != nil {
		return BatchSummary{}, err
	}

	if err := writeOutput(opts.Out, batch.WriteCSV); err != nil {
		return BatchSummary{}, err
	}

	resp := batch.Response()
	summary := BatchSummary{BatchID: resp.BatchID, Total: resp.Total, Failed: resp.Failed}

	if opts.PayslipDir != "" {
		if err := os.MkdirAll(opts.PayslipDir, 0o755); err != nil {
			return summary, err
		}
		for _, o := range batch.Outcomes {
			if o.Err != nil {
				continue
			}
			pdf, err := payroll.RenderPayslip(o.Result, opts.CompanyName)
			if err != nil {
				return summary, err
			}
			path := filepath.Join(opts.PayslipDir, payroll.PayslipFileName(o.Result))
			if err := os.WriteFile(path, pdf, 0o644); err != nil {
				return summary, err
			}
			summary.Payslips++
		}
	}

	bootstrap.NewZapAuditLogger(logger).Log(ctx, bootstrap.AuditLog{
		Action:  "PAYROLL_FILE_PROCESSED",
		Message: "payroll batch file processed",
		Meta: map[string]any{
			"batch_id": summary.BatchID,
			"input":    opts.In,
			"total":    summary.Total,
			"failed":   summary.Failed,
			"payslips": summary.Payslips,
		},
	})
	return summary, nil
}

func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go-paye/internal/app"
	"go-paye/internal/payroll"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := app.LoadConfig()

	opts := app.BatchOptions{}
	flag.StringVar(&opts.In, "in", "", "employee CSV to process (required)")
	flag.StringVar(&opts.Out, "out", "-", "results CSV, - for stdout")
	flag.StringVar(&opts.PayslipDir, "payslips", "", "directory for PDF payslips, empty to skip")
	flag.StringVar(&opts.Components, "components", cfg.Components, "salary breakdown, e.g. "+payroll.DefaultComponentSpec)
	flag.IntVar(&opts.Workers, "workers", cfg.BatchWorkers, "parallel workers")
	flag.StringVar(&opts.CompanyName, "company", "", "company name printed on payslips")
	flag.Parse()

	if opts.In == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := app.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	summary, err := app.RunBatch(context.Background(), opts)
	if err != nil {
		logger.Fatal("payroll batch failed", zap.Error(err))
	}

	fmt.Fprintf(os.Stderr, "processed %d employees, %d failed, %d payslips written\n",
		summary.Total, summary.Failed, summary.Payslips)
}

package payroll

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	payrollerrors "go-paye/internal/payroll/errors"
	"go-paye/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// maxCachedEngines bounds the engines kept for per-request component
// overrides; past it, overrides are still served but not cached.
const maxCachedEngines = 64

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, req CalculatePayrollRequest) (PayrollResultResponse, error)
	CalculateBatch(ctx context.Context, req BatchCalculateRequest) (BatchCalculateResponse, error)
	ProcessCSV(ctx context.Context, r io.Reader) (CSVBatch, error)
	Payslip(ctx context.Context, req PayslipRequest) (PayslipFile, error)
	Template(now time.Time) ([]byte, error)
}

// CSVBatch is a processed upload. Outcomes line up with Rows.
type CSVBatch struct {
	BatchID  string
	Rows     []EmployeeRow
	Outcomes []BatchOutcome
}

func (b CSVBatch) WriteCSV(w io.Writer) error {
	return WriteResultsCSV(w, b.Rows, b.Outcomes)
}

func (b CSVBatch) CSV() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b CSVBatch) Response() BatchCalculateResponse {
	return toBatchResponse(b.BatchID, b.Outcomes)
}

type PayslipFile struct {
	FileName string
	Content  []byte
}

type service struct {
	engine  *Engine
	workers int
	logger  *zap.Logger

	sf      singleflight.Group
	mu      sync.RWMutex
	engines map[string]*Engine
}

func NewService(engine *Engine, workers int, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		engine:  engine,
		workers: workers,
		logger:  l,
		engines: make(map[string]*Engine),
	}
}

func (s *service) Calculate(ctx context.Context, req CalculatePayrollRequest) (PayrollResultResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	engine, err := s.engineFor(req.Components)
	if err != nil {
		l.Warn("rejected component override", zap.Error(err))
		return PayrollResultResponse{}, err
	}

	result, err := s.process(engine, req.EmployeeRequest)
	if err != nil {
		l.Info("payroll calculation rejected",
			zap.String("staff_id", req.StaffID),
			zap.Error(err),
		)
		return PayrollResultResponse{}, err
	}

	l.Debug("payroll calculated",
		zap.String("staff_id", result.StaffID),
		zap.String("net_pay", result.NetPay.StringFixed(2)),
	)
	return mapToResponse(result), nil
}

func (s *service) CalculateBatch(ctx context.Context, req BatchCalculateRequest) (BatchCalculateResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if len(req.Employees) == 0 {
		return BatchCalculateResponse{}, payrollerrors.ErrEmptyBatch
	}

	engine, err := s.engineFor(req.Components)
	if err != nil {
		l.Warn("rejected component override", zap.Error(err))
		return BatchCalculateResponse{}, err
	}

	batchID := batchIDFrom(ctx)
	outcomes := s.runBatch(ctx, engine, req.Employees, nil)
	resp := toBatchResponse(batchID, outcomes)

	l.Info("payroll batch calculated",
		zap.String("batch_id", batchID),
		zap.Int("total", resp.Total),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

func (s *service) ProcessCSV(ctx context.Context, r io.Reader) (CSVBatch, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	rows, err := ReadEmployeeRows(r)
	if err != nil {
		l.Info("payroll upload rejected", zap.Error(err))
		return CSVBatch{}, err
	}

	reqs := make([]EmployeeRequest, len(rows))
	rowErrs := make([]error, len(rows))
	for i, row := range rows {
		reqs[i], rowErrs[i] = row.Request()
	}

	batch := CSVBatch{
		BatchID:  batchIDFrom(ctx),
		Rows:     rows,
		Outcomes: s.runBatch(ctx, s.engine, reqs, rowErrs),
	}

	failed := countFailed(batch.Outcomes)
	l.Info("payroll upload processed",
		zap.String("batch_id", batch.BatchID),
		zap.Int("rows", len(rows)),
		zap.Int("failed", failed),
	)
	return batch, nil
}

func (s *service) Payslip(ctx context.Context, req PayslipRequest) (PayslipFile, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	engine, err := s.engineFor(req.Components)
	if err != nil {
		return PayslipFile{}, err
	}

	result, err := s.process(engine, req.EmployeeRequest)
	if err != nil {
		return PayslipFile{}, err
	}

	content, err := RenderPayslip(result, req.CompanyName)
	if err != nil {
		l.Error("failed to render payslip", zap.String("staff_id", result.StaffID), zap.Error(err))
		return PayslipFile{}, err
	}

	return PayslipFile{FileName: PayslipFileName(result), Content: content}, nil
}

func (s *service) Template(now time.Time) ([]byte, error) {
	return TemplateCSV(now)
}

func (s *service) process(engine *Engine, req EmployeeRequest) (PayrollResult, error) {
	in, err := toEmployeeInput(req)
	if err != nil {
		return PayrollResult{}, err
	}
	return engine.Process(in)
}

// runBatch maps and validates every request, sends the valid ones through
// the engine and puts each outcome back at its request's index. rowErrs, if
// given, marks rows that already failed upstream.
func (s *service) runBatch(ctx context.Context, engine *Engine, reqs []EmployeeRequest, rowErrs []error) []BatchOutcome {
	outcomes := make([]BatchOutcome, len(reqs))
	inputs := make([]EmployeeInput, 0, len(reqs))
	positions := make([]int, 0, len(reqs))

	for i, req := range reqs {
		outcomes[i].Index = i
		if rowErrs != nil && rowErrs[i] != nil {
			outcomes[i].Err = rowErrs[i]
			continue
		}
		in, err := toEmployeeInput(req)
		if err != nil {
			outcomes[i].Err = err
			continue
		}
		inputs = append(inputs, in)
		positions = append(positions, i)
	}

	for j, o := range engine.ProcessBatch(ctx, inputs) {
		i := positions[j]
		outcomes[i].Result = o.Result
		outcomes[i].Err = o.Err
	}
	return outcomes
}

// engineFor returns the default engine, or one configured for the override.
// Concurrent requests with the same override share a single build.
func (s *service) engineFor(components map[string]decimal.Decimal) (*Engine, error) {
	if len(components) == 0 {
		return s.engine, nil
	}

	key := componentKey(components)
	s.mu.RLock()
	cached, ok := s.engines[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		engine, err := Configure(components, WithWorkers(s.workers))
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if len(s.engines) < maxCachedEngines {
			s.engines[key] = engine
		}
		s.mu.Unlock()
		return engine, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Engine), nil
}

func componentKey(components map[string]decimal.Decimal) string {
	parts := make([]string, 0, len(components))
	for name, pct := range components {
		parts = append(parts, strings.ToUpper(strings.TrimSpace(name))+":"+pct.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// batchIDFrom keeps an id assigned upstream (queued batches) and mints one
// otherwise.
func batchIDFrom(ctx context.Context) string {
	if id := contextutil.GetBatchID(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}

func toBatchResponse(batchID string, outcomes []BatchOutcome) BatchCalculateResponse {
	items := make([]BatchItemResponse, len(outcomes))
	failed := 0
	for i, o := range outcomes {
		items[i].Index = o.Index
		if o.Err != nil {
			failed++
			items[i].Error = NewItemError(o.Err)
			continue
		}
		res := mapToResponse(o.Result)
		items[i].Ok = true
		items[i].Result = &res
	}
	return BatchCalculateResponse{
		BatchID: batchID,
		Items:   items,
		Total:   len(outcomes),
		Failed:  failed,
	}
}

func countFailed(outcomes []BatchOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

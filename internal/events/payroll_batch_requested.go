package events

import (
	"time"

	"go-paye/internal/payroll"

	"github.com/shopspring/decimal"
)

const (
	PayrollBatchRequestedTopic     = "hr.payroll.batch.requested.v1"
	PayrollBatchRequestedEventType = "payroll.batch.requested"
	PayrollBatchAggregateType      = "payroll_batch"
)

type PayrollBatchRequestedEvent struct {
	EventType   string                     `json:"event_type"`
	BatchID     string                     `json:"batch_id"`
	RequestedBy string                     `json:"requested_by"`
	Components  map[string]decimal.Decimal `json:"components,omitempty"`
	Employees   []payroll.EmployeeRequest  `json:"employees"`
	OccurredAt  time.Time                  `json:"occurred_at"`
}

package events

import (
	"time"

	"go-paye/internal/payroll"
)

const (
	PayrollBatchCompletedTopic     = "hr.payroll.batch.completed.v1"
	PayrollBatchCompletedEventType = "payroll.batch.completed"
)

// PayrollBatchCompletedEvent carries per-employee outcomes. Error is set
// only when the whole batch was rejected (empty, bad component override).
type PayrollBatchCompletedEvent struct {
	EventType  string                          `json:"event_type"`
	BatchID    string                          `json:"batch_id"`
	Result     *payroll.BatchCalculateResponse `json:"result,omitempty"`
	Error      *payroll.ItemError              `json:"error,omitempty"`
	OccurredAt time.Time                       `json:"occurred_at"`
}

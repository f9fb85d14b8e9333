package jobs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAgingSnapshot precomputes the vendor aging report for a company
	// and warms the report cache.
	TaskAgingSnapshot = "ap:aging_snapshot"
)

// AgingSnapshotPayload selects the company and as-of date to snapshot. A
// zero AgingDate means the handler uses the current date.
type AgingSnapshotPayload struct {
	CompanyID uuid.UUID `json:"companyId"`
	AgingDate time.Time `json:"agingDate,omitempty"`
}

// NewAgingSnapshotTask constructs an Asynq task.
func NewAgingSnapshotTask(payload AgingSnapshotPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAgingSnapshot, data), nil
}

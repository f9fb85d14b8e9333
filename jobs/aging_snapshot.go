package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/meridian-erp/meridian-erp/internal/ap"
)

// NewAgingSnapshotHandler returns the handler that builds the aging report
// for the payload's company. Building through the service populates the
// report cache, so the next API request is served warm.
func NewAgingSnapshotHandler(service *ap.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload AgingSnapshotPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}

		filter := ap.AgingFilter{
			CompanyID: payload.CompanyID,
			AgingDate: payload.AgingDate,
		}
		report, err := service.AgingReport(ctx, filter)
		if err != nil {
			logger.Error("aging snapshot failed",
				slog.String("company_id", payload.CompanyID.String()),
				slog.Any("error", err),
			)
			return err
		}

		logger.Info("aging snapshot complete",
			slog.String("company_id", payload.CompanyID.String()),
			slog.Int("vendors", len(report.Vendors)),
		)
		return nil
	}
}

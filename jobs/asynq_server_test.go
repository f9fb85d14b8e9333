package jobs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	payload AgingSnapshotPayload
	calls   int
	err     error
}

func (f *fakeEnqueuer) EnqueueAgingSnapshot(_ context.Context, payload AgingSnapshotPayload) (*asynq.TaskInfo, error) {
	f.calls++
	f.payload = payload
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "task-1", Queue: QueueDefault}, nil
}

func newTestRouter(t *testing.T, enqueuer Enqueuer) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(nil, enqueuer, logger)
	r := chi.NewRouter()
	r.Route("/jobs", h.MountRoutes)
	return r
}

func TestHandlerHealthWithoutInspector(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/jobs/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"queue":"default"`)
}

func TestHandlerTriggersAgingSnapshot(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	router := newTestRouter(t, enqueuer)

	companyID := uuid.New()
	body := `{"companyId":"` + companyID.String() + `","agingDate":"2022-08-31T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/jobs/snapshots/aging", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Contains(t, rec.Body.String(), `"taskId":"task-1"`)
	require.Equal(t, 1, enqueuer.calls)
	require.Equal(t, companyID, enqueuer.payload.CompanyID)
	require.Equal(t, time.Date(2022, time.August, 31, 0, 0, 0, 0, time.UTC), enqueuer.payload.AgingDate)
}

func TestHandlerTriggerRejectsMissingCompany(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	router := newTestRouter(t, enqueuer)

	req := httptest.NewRequest(http.MethodPost, "/jobs/snapshots/aging", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, enqueuer.calls)
}

func TestHandlerTriggerRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t, &fakeEnqueuer{})

	req := httptest.NewRequest(http.MethodPost, "/jobs/snapshots/aging", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerTriggerWithoutQueue(t *testing.T) {
	router := newTestRouter(t, nil)

	body := `{"companyId":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/jobs/snapshots/aging", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

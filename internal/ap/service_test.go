package ap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

type mockRepo struct {
	agingRows    []AgingRow
	agingCalls   int
	cashFlowRows []CashFlowRow
	cashReqRows  []CashRequirementRow
	expenseRows  []ExpenseRow
}

func (m *mockRepo) AgingRows(ctx context.Context, filter AgingFilter) ([]AgingRow, error) {
	m.agingCalls++
	return m.agingRows, nil
}

func (m *mockRepo) CashFlowRows(ctx context.Context, filter CashFlowFilter) ([]CashFlowRow, error) {
	return m.cashFlowRows, nil
}

func (m *mockRepo) CashRequirementRows(ctx context.Context, filter CashRequirementFilter) ([]CashRequirementRow, error) {
	return m.cashReqRows, nil
}

func (m *mockRepo) ExpenseRows(ctx context.Context, filter ExpenseFilter) ([]ExpenseRow, error) {
	return m.expenseRows, nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewCache(client, time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, cache, logger)
}

func TestServiceAgingReportCaches(t *testing.T) {
	asOf := day(2022, time.August, 31)
	repo := &mockRepo{agingRows: []AgingRow{agingRow(1, "INV-1", "100.00", asOf)}}
	svc := newTestService(t, repo)

	ctx := context.Background()
	filter := AgingFilter{CompanyID: testCompanyID, AgingDate: asOf}

	report, err := svc.AgingReport(ctx, filter)
	require.NoError(t, err)
	require.Len(t, report.Vendors, 1)
	require.Equal(t, 1, repo.agingCalls)

	// Second call must come from the cache.
	report, err = svc.AgingReport(ctx, filter)
	require.NoError(t, err)
	require.Len(t, report.Vendors, 1)
	require.Equal(t, 1, repo.agingCalls)
}

func TestServiceAgingReportInvalidateCache(t *testing.T) {
	asOf := day(2022, time.August, 31)
	repo := &mockRepo{agingRows: []AgingRow{agingRow(1, "INV-1", "100.00", asOf)}}
	svc := newTestService(t, repo)

	ctx := context.Background()
	filter := AgingFilter{CompanyID: testCompanyID, AgingDate: asOf}

	_, err := svc.AgingReport(ctx, filter)
	require.NoError(t, err)
	require.NoError(t, svc.InvalidateCache(ctx))

	_, err = svc.AgingReport(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, 2, repo.agingCalls)
}

func TestServiceAgingReportDefaultsDate(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(t, repo)
	svc.WithNow(func() time.Time { return time.Date(2022, time.August, 31, 15, 4, 5, 0, time.UTC) })

	_, err := svc.AgingReport(context.Background(), AgingFilter{CompanyID: testCompanyID})
	require.NoError(t, err)
}

func TestServiceRejectsInvalidFilter(t *testing.T) {
	svc := newTestService(t, &mockRepo{})

	_, err := svc.ExpenseReport(context.Background(), ExpenseFilter{})
	require.ErrorIs(t, err, shared.ErrInvalidFilter)

	_, err = svc.ExpenseReport(context.Background(), ExpenseFilter{CompanyID: testCompanyID, Statuses: []string{"X"}})
	require.ErrorIs(t, err, shared.ErrInvalidFilter)
}

func TestServiceAllReports(t *testing.T) {
	asOf := day(2022, time.August, 31)
	repo := &mockRepo{
		agingRows:    []AgingRow{agingRow(1, "INV-1", "100.00", asOf)},
		cashFlowRows: []CashFlowRow{cashFlowRow(1, "Acme", "A-1", "50.00", asOf)},
		cashReqRows:  []CashRequirementRow{cashRequirementRow(1, "A-1", "25.00", asOf)},
	}
	svc := newTestService(t, repo)

	bundle, err := svc.AllReports(context.Background(),
		AgingFilter{CompanyID: testCompanyID, AgingDate: asOf},
		CashFlowFilter{CompanyID: testCompanyID, AsOf: asOf},
		CashRequirementFilter{CompanyID: testCompanyID, Ranges: fiveRanges(asOf)},
	)
	require.NoError(t, err)
	require.Len(t, bundle.Aging.Vendors, 1)
	require.Len(t, bundle.CashFlow.Vendors, 1)
	require.Len(t, bundle.CashRequirement.Vendors, 1)
}

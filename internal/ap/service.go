package ap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Service coordinates filter validation, row loading, the report folds and
// the cache layer.
type Service struct {
	repo     Repository
	cache    *Cache
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService wires a Repository with the cache helper.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

func (s *Service) validateFilter(filter interface{}) error {
	if err := s.validate.Struct(filter); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFilter, err)
	}
	return nil
}

// AgingReport builds the vendor aging report for the filter's as-of date.
func (s *Service) AgingReport(ctx context.Context, filter AgingFilter) (AgingReport, error) {
	if filter.AgingDate.IsZero() {
		filter.AgingDate = dateOnly(s.now())
	}
	if err := s.validateFilter(filter); err != nil {
		return AgingReport{}, err
	}

	key, err := s.cache.BuildKey(ctx, keyAgingReport(filter))
	if err != nil {
		return AgingReport{}, err
	}

	var report AgingReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.AgingRows(ctx, filter)
		if err != nil {
			return nil, err
		}
		built, err := BuildAgingReport(ctx, rows, filter)
		if err != nil {
			return nil, err
		}
		s.logger.Info("built aging report",
			slog.String("company_id", filter.CompanyID.String()),
			slog.Time("aging_date", filter.AgingDate),
			slog.Int("vendors", len(built.Vendors)),
		)
		return built, nil
	})
	return report, err
}

// CashFlowReport builds the cash flow report over the filter's date ranges.
func (s *Service) CashFlowReport(ctx context.Context, filter CashFlowFilter) (CashFlowReport, error) {
	if filter.AsOf.IsZero() {
		filter.AsOf = dateOnly(s.now())
	}
	if err := s.validateFilter(filter); err != nil {
		return CashFlowReport{}, err
	}

	key, err := s.cache.BuildKey(ctx, keyCashFlowReport(filter))
	if err != nil {
		return CashFlowReport{}, err
	}

	var report CashFlowReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.CashFlowRows(ctx, filter)
		if err != nil {
			return nil, err
		}
		built, err := BuildCashFlowReport(ctx, rows, filter, filter.AsOf)
		if err != nil {
			return nil, err
		}
		s.logger.Info("built cash flow report",
			slog.String("company_id", filter.CompanyID.String()),
			slog.Int("vendors", len(built.Vendors)),
		)
		return built, nil
	})
	return report, err
}

// CashRequirementReport builds the cash requirement report.
func (s *Service) CashRequirementReport(ctx context.Context, filter CashRequirementFilter) (CashRequirementReport, error) {
	if err := s.validateFilter(filter); err != nil {
		return CashRequirementReport{}, err
	}

	key, err := s.cache.BuildKey(ctx, keyCashRequirementReport(filter))
	if err != nil {
		return CashRequirementReport{}, err
	}

	var report CashRequirementReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.CashRequirementRows(ctx, filter)
		if err != nil {
			return nil, err
		}
		built, err := BuildCashRequirementReport(ctx, rows, filter)
		if err != nil {
			return nil, err
		}
		s.logger.Info("built cash requirement report",
			slog.String("company_id", filter.CompanyID.String()),
			slog.Int("vendors", len(built.Vendors)),
		)
		return built, nil
	})
	return report, err
}

// ExpenseReport builds the flat expense listing.
func (s *Service) ExpenseReport(ctx context.Context, filter ExpenseFilter) (ExpenseReport, error) {
	if err := s.validateFilter(filter); err != nil {
		return ExpenseReport{}, err
	}

	key, err := s.cache.BuildKey(ctx, keyExpenseReport(filter))
	if err != nil {
		return ExpenseReport{}, err
	}

	var report ExpenseReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.ExpenseRows(ctx, filter)
		if err != nil {
			return nil, err
		}
		built, err := BuildExpenseReport(ctx, rows, filter)
		if err != nil {
			return nil, err
		}
		s.logger.Info("built expense report",
			slog.String("company_id", filter.CompanyID.String()),
			slog.Int("invoices", len(built.Invoices)),
		)
		return built, nil
	})
	return report, err
}

// ReportBundle carries the three bucketed reports loaded together.
type ReportBundle struct {
	Aging           AgingReport           `json:"aging"`
	CashFlow        CashFlowReport        `json:"cashFlow"`
	CashRequirement CashRequirementReport `json:"cashRequirement"`
}

// AllReports loads the three bucketed reports concurrently.
func (s *Service) AllReports(ctx context.Context, aging AgingFilter, cashFlow CashFlowFilter, cashReq CashRequirementFilter) (ReportBundle, error) {
	var bundle ReportBundle
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report, err := s.AgingReport(ctx, aging)
		if err != nil {
			return err
		}
		bundle.Aging = report
		return nil
	})
	g.Go(func() error {
		report, err := s.CashFlowReport(ctx, cashFlow)
		if err != nil {
			return err
		}
		bundle.CashFlow = report
		return nil
	})
	g.Go(func() error {
		report, err := s.CashRequirementReport(ctx, cashReq)
		if err != nil {
			return err
		}
		bundle.CashRequirement = report
		return nil
	})

	if err := g.Wait(); err != nil {
		return ReportBundle{}, err
	}
	return bundle, nil
}

// InvalidateCache bumps the report cache version.
func (s *Service) InvalidateCache(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

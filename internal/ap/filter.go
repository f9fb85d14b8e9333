package ap

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Sort directions accepted by the report filters.
const (
	SortAscending  = "ASC"
	SortDescending = "DESC"
)

// Expense report sort keys.
const (
	SortByInvoice      = "invoice"
	SortByVendorNumber = "vendor.number"
	SortByVendorName   = "vendor.name"
)

// AgingFilter selects the rows and as-of date for the aging report.
type AgingFilter struct {
	CompanyID uuid.UUID   `json:"companyId" validate:"required"`
	VendorIDs []uuid.UUID `json:"vendorIds,omitempty"`
	AgingDate time.Time   `json:"agingDate" validate:"required"`
}

// CashFlowFilter carries the five bucket date ranges for the cash flow
// report. AsOf is the discount cutoff date, normally today.
type CashFlowFilter struct {
	CompanyID     uuid.UUID    `json:"companyId" validate:"required"`
	Ranges        [5]DateRange `json:"ranges"`
	AsOf          time.Time    `json:"asOf" validate:"required"`
	SortBy        string       `json:"sortBy" validate:"omitempty,oneof=vendor.number vendor.name"`
	SortDirection string       `json:"sortDirection" validate:"omitempty,oneof=ASC DESC"`
	Details       bool         `json:"details"`
}

// Window derives the overall due-date window from whichever range bounds the
// caller supplied: the earliest and latest of the configured dates.
func (f CashFlowFilter) Window() (from, thru *time.Time) {
	dates := make([]*time.Time, 0, 10)
	for _, r := range f.Ranges {
		dates = append(dates, r.From, r.Thru)
	}
	if earliest, ok := shared.EarliestDate(dates...); ok {
		from = &earliest
	}
	if latest, ok := shared.LatestDate(dates...); ok {
		thru = &latest
	}
	return from, thru
}

// CashRequirementFilter selects rows for the cash requirement report.
// BeginVendor/EndVendor bound the vendor number range, inclusive.
type CashRequirementFilter struct {
	CompanyID     uuid.UUID    `json:"companyId" validate:"required"`
	BeginVendor   *int         `json:"beginVendor,omitempty"`
	EndVendor     *int         `json:"endVendor,omitempty"`
	Ranges        [5]DateRange `json:"ranges"`
	SortDirection string       `json:"sortDirection" validate:"omitempty,oneof=ASC DESC"`
}

// ExpenseFilter selects rows and the post-sort for the expense report.
type ExpenseFilter struct {
	CompanyID     uuid.UUID  `json:"companyId" validate:"required"`
	BeginVendor   *int       `json:"beginVendor,omitempty"`
	EndVendor     *int       `json:"endVendor,omitempty"`
	BeginDate     *time.Time `json:"beginDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	Statuses      []string   `json:"statuses,omitempty" validate:"dive,oneof=H O P V"`
	IncludeHeld   bool       `json:"includeHeld"`
	SortBy        string     `json:"sortBy" validate:"omitempty,oneof=invoice vendor.number vendor.name"`
	SortDirection string     `json:"sortDirection" validate:"omitempty,oneof=ASC DESC"`
}

// StatusCodes maps the filter's letter codes to the persisted status values.
func (f ExpenseFilter) StatusCodes() []InvoiceStatus {
	var codes []InvoiceStatus
	for _, s := range f.Statuses {
		switch s {
		case "H":
			codes = append(codes, StatusHeld)
		case "O":
			codes = append(codes, StatusOpen)
		case "P":
			codes = append(codes, StatusPaid)
		case "V":
			codes = append(codes, StatusVoided)
		}
	}
	return codes
}

package ap

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the persisted AP invoice status code.
type InvoiceStatus int

const (
	StatusHeld   InvoiceStatus = 1
	StatusOpen   InvoiceStatus = 2
	StatusPaid   InvoiceStatus = 3
	StatusVoided InvoiceStatus = 4
)

// Value returns the single-letter status code used on reports.
func (s InvoiceStatus) Value() string {
	switch s {
	case StatusHeld:
		return "H"
	case StatusOpen:
		return "O"
	case StatusPaid:
		return "P"
	case StatusVoided:
		return "V"
	}
	return ""
}

// Known reports whether the status code is one of the defined statuses.
func (s InvoiceStatus) Known() bool {
	return s >= StatusHeld && s <= StatusVoided
}

// Payment status codes carried on cash requirement rows.
const (
	PaymentStatusPaid   = "P"
	PaymentStatusVoided = "V"
)

// AgingBucket is the column an invoice balance displays in on the aging report.
type AgingBucket string

const (
	BucketCurrent          AgingBucket = "CURRENT"
	BucketOneToThirty      AgingBucket = "ONETOTHIRTY"
	BucketThirtyOneToSixty AgingBucket = "THIRTYONETOSIXTY"
	BucketOverSixty        AgingBucket = "OVERSIXTY"
)

// RangeBucket identifies which of the five caller-supplied date ranges an
// invoice falls in. RangeNone means the invoice matched no configured range
// and contributes to no bucket sum.
type RangeBucket int

const (
	RangeNone RangeBucket = iota
	RangeOne
	RangeTwo
	RangeThree
	RangeFour
	RangeFive
)

// DateRange is one optional (from, thru) pair from a report filter. A range
// with either bound nil is skipped during classification.
type DateRange struct {
	From *time.Time `json:"from"`
	Thru *time.Time `json:"thru"`
}

// Contains reports whether d falls within the range, bounds inclusive.
func (r DateRange) Contains(d time.Time) bool {
	if r.From == nil || r.Thru == nil {
		return false
	}
	return r.From.Compare(d)*d.Compare(*r.Thru) >= 0
}

// AgingRow is one flat row from the aging report join: invoice and vendor
// fields plus the optionally joined payment and payment detail.
type AgingRow struct {
	CompanyID           uuid.UUID
	VendorID            uuid.UUID
	VendorNumber        int
	VendorName          string
	Invoice             string
	InvoiceDate         time.Time
	InvoiceAmount       decimal.Decimal
	DiscountAmount      decimal.Decimal
	ExpenseDate         time.Time
	PaidAmount          decimal.Decimal
	DueDate             time.Time
	Status              InvoiceStatus
	PaymentDate         *time.Time
	PaymentVoidedDate   *time.Time
	PaymentDetailAmount *decimal.Decimal
}

// CashFlowRow is one flat row from the cash flow report join.
type CashFlowRow struct {
	CompanyID       uuid.UUID
	VendorID        uuid.UUID
	VendorNumber    int
	VendorName      string
	Invoice         string
	InvoiceDate     time.Time
	InvoiceAmount   decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountDate    *time.Time
	DiscountPercent decimal.Decimal
	ExpenseDate     time.Time
	PaidAmount      decimal.Decimal
	DiscountTaken   decimal.Decimal
	DueDate         time.Time
	Status          InvoiceStatus
}

// CashRequirementRow is one flat row from the cash requirement report join.
type CashRequirementRow struct {
	CompanyID           uuid.UUID
	VendorID            uuid.UUID
	VendorNumber        int
	VendorName          string
	Invoice             string
	InvoiceDate         time.Time
	InvoiceAmount       decimal.Decimal
	DiscountAmount      decimal.Decimal
	ExpenseDate         time.Time
	PaidAmount          decimal.Decimal
	DiscountTaken       decimal.Decimal
	DueDate             time.Time
	Status              InvoiceStatus
	PaymentDate         *time.Time
	PaymentStatus       *string
	PaymentVoidedDate   *time.Time
	PaymentDetailAmount *decimal.Decimal
}

// ExpenseRow is one flat row from the expense report join.
type ExpenseRow struct {
	CompanyID     uuid.UUID
	VendorNumber  int
	VendorName    string
	Invoice       string
	InvoiceDate   time.Time
	InvoiceAmount decimal.Decimal
	ExpenseDate   time.Time
	PaidAmount    decimal.Decimal
	Status        InvoiceStatus
	PaymentNumber *string
	PaymentDate   *time.Time
	GLAmount      *decimal.Decimal
}

// AgingInvoice is one invoice line on the aging report. Balance and Bucket
// are derived during the fold; Status and PaidAmount may differ from the
// persisted row when the back-date reopen rule fires.
type AgingInvoice struct {
	CompanyID           uuid.UUID        `json:"companyId"`
	VendorID            uuid.UUID        `json:"vendorId"`
	Invoice             string           `json:"invoice"`
	InvoiceDate         time.Time        `json:"invoiceDate"`
	Amount              decimal.Decimal  `json:"amount"`
	DiscountAmount      decimal.Decimal  `json:"discountAmount"`
	ExpenseDate         time.Time        `json:"expenseDate"`
	PaidAmount          decimal.Decimal  `json:"paidAmount"`
	Status              InvoiceStatus    `json:"status"`
	DueDate             time.Time        `json:"dueDate"`
	PaymentDate         *time.Time       `json:"paymentDate,omitempty"`
	PaymentVoidedDate   *time.Time       `json:"paymentVoidedDate,omitempty"`
	PaymentDetailAmount *decimal.Decimal `json:"paymentDetailAmount,omitempty"`
	Balance             decimal.Decimal  `json:"balance"`
	Bucket              AgingBucket      `json:"bucket,omitempty"`
}

// AgingTotals is the set of running sums kept per vendor and report-wide.
type AgingTotals struct {
	Balance          decimal.Decimal `json:"balanceTotal"`
	Current          decimal.Decimal `json:"currentTotal"`
	OneToThirty      decimal.Decimal `json:"oneToThirtyTotal"`
	ThirtyOneToSixty decimal.Decimal `json:"thirtyOneToSixtyTotal"`
	OverSixty        decimal.Decimal `json:"overSixtyTotal"`
}

func (t *AgingTotals) add(bucket AgingBucket, balance decimal.Decimal) {
	t.Balance = t.Balance.Add(balance)
	switch bucket {
	case BucketCurrent:
		t.Current = t.Current.Add(balance)
	case BucketOneToThirty:
		t.OneToThirty = t.OneToThirty.Add(balance)
	case BucketThirtyOneToSixty:
		t.ThirtyOneToSixty = t.ThirtyOneToSixty.Add(balance)
	case BucketOverSixty:
		t.OverSixty = t.OverSixty.Add(balance)
	}
}

// AgingVendor groups one vendor's qualifying invoices with running totals.
type AgingVendor struct {
	CompanyID    uuid.UUID      `json:"companyId"`
	VendorNumber int            `json:"vendorNumber"`
	VendorName   string         `json:"vendorName"`
	Invoices     []AgingInvoice `json:"invoices"`
	Totals       AgingTotals    `json:"totals"`
}

// AgingReport is the full aging report tree.
type AgingReport struct {
	Vendors []AgingVendor `json:"vendors"`
	Totals  AgingTotals   `json:"totals"`
}

// CashFlowInvoice is one invoice line on the cash flow report.
type CashFlowInvoice struct {
	CompanyID       uuid.UUID        `json:"companyId"`
	VendorID        uuid.UUID        `json:"vendorId"`
	Invoice         string           `json:"invoice"`
	InvoiceDate     time.Time        `json:"invoiceDate"`
	Amount          decimal.Decimal  `json:"amount"`
	DiscountAmount  decimal.Decimal  `json:"discountAmount"`
	DiscountDate    *time.Time       `json:"discountDate,omitempty"`
	DiscountPercent decimal.Decimal  `json:"discountPercent"`
	ExpenseDate     time.Time        `json:"expenseDate"`
	PaidAmount      decimal.Decimal  `json:"paidAmount"`
	Status          InvoiceStatus    `json:"status"`
	DueDate         time.Time        `json:"dueDate"`
	DiscountTaken   *decimal.Decimal `json:"discountTaken,omitempty"`
	DiscountLost    *decimal.Decimal `json:"discountLost,omitempty"`
	Balance         decimal.Decimal  `json:"balance"`
	Bucket          RangeBucket      `json:"bucket"`
}

// CashFlowTotals is the set of running sums kept per vendor and report-wide.
type CashFlowTotals struct {
	Dates         [5]decimal.Decimal `json:"dateAmounts"`
	DiscountTaken decimal.Decimal    `json:"discountTaken"`
	DiscountLost  decimal.Decimal    `json:"discountLost"`
	DiscountDate  *time.Time         `json:"discountDate,omitempty"`
}

func (t *CashFlowTotals) add(bucket RangeBucket, balance decimal.Decimal) {
	if bucket == RangeNone {
		return
	}
	idx := int(bucket) - 1
	t.Dates[idx] = t.Dates[idx].Add(balance)
}

// CashFlowVendor groups one vendor's open invoices with running totals.
type CashFlowVendor struct {
	CompanyID    uuid.UUID         `json:"companyId"`
	VendorNumber int               `json:"vendorNumber"`
	VendorName   string            `json:"vendorName"`
	Invoices     []CashFlowInvoice `json:"invoices,omitempty"`
	Totals       CashFlowTotals    `json:"totals"`
}

// CashFlowReport is the full cash flow report tree.
type CashFlowReport struct {
	Vendors []CashFlowVendor `json:"vendors"`
	Totals  CashFlowTotals   `json:"totals"`
}

// CashRequirementInvoice is one invoice line on the cash requirement report.
type CashRequirementInvoice struct {
	CompanyID           uuid.UUID        `json:"companyId"`
	VendorID            uuid.UUID        `json:"vendorId"`
	Invoice             string           `json:"invoice"`
	InvoiceDate         time.Time        `json:"invoiceDate"`
	Amount              decimal.Decimal  `json:"amount"`
	DiscountAmount      decimal.Decimal  `json:"discountAmount"`
	ExpenseDate         time.Time        `json:"expenseDate"`
	PaidAmount          decimal.Decimal  `json:"paidAmount"`
	DiscountTaken       decimal.Decimal  `json:"discountTaken"`
	Status              InvoiceStatus    `json:"status"`
	DueDate             time.Time        `json:"dueDate"`
	PaymentDate         *time.Time       `json:"paymentDate,omitempty"`
	PaymentStatus       *string          `json:"paymentStatus,omitempty"`
	PaymentVoidedDate   *time.Time       `json:"paymentVoidedDate,omitempty"`
	PaymentDetailAmount *decimal.Decimal `json:"paymentDetailAmount,omitempty"`
	Balance             decimal.Decimal  `json:"balance"`
	Bucket              RangeBucket      `json:"bucket"`
}

// WeekTotal holds the due and paid sums for one cash requirement bucket.
type WeekTotal struct {
	Due  decimal.Decimal `json:"due"`
	Paid decimal.Decimal `json:"paid"`
}

// CashRequirementTotals is the set of running sums kept per vendor and
// report-wide.
type CashRequirementTotals struct {
	Weeks [5]WeekTotal `json:"weeks"`
}

func (t *CashRequirementTotals) add(bucket RangeBucket, due, paid decimal.Decimal) {
	if bucket == RangeNone {
		return
	}
	idx := int(bucket) - 1
	t.Weeks[idx].Due = t.Weeks[idx].Due.Add(due)
	t.Weeks[idx].Paid = t.Weeks[idx].Paid.Add(paid)
}

// CashRequirementVendor groups one vendor's invoices with running totals.
type CashRequirementVendor struct {
	CompanyID    uuid.UUID                `json:"companyId"`
	VendorNumber int                      `json:"vendorNumber"`
	VendorName   string                   `json:"vendorName"`
	Invoices     []CashRequirementInvoice `json:"invoices"`
	Totals       CashRequirementTotals    `json:"totals"`
}

// CashRequirementReport is the full cash requirement report tree.
type CashRequirementReport struct {
	Vendors []CashRequirementVendor `json:"vendors"`
	Totals  CashRequirementTotals   `json:"totals"`
}

// ExpenseInvoice is one invoice line on the expense report.
type ExpenseInvoice struct {
	CompanyID     uuid.UUID        `json:"companyId"`
	VendorNumber  int              `json:"vendorNumber"`
	VendorName    string           `json:"vendorName"`
	Invoice       string           `json:"invoice"`
	InvoiceDate   time.Time        `json:"invoiceDate"`
	Amount        decimal.Decimal  `json:"amount"`
	ExpenseDate   time.Time        `json:"expenseDate"`
	PaidAmount    decimal.Decimal  `json:"paidAmount"`
	Status        InvoiceStatus    `json:"status"`
	PaymentNumber *string          `json:"paymentNumber,omitempty"`
	PaymentDate   *time.Time       `json:"paymentDate,omitempty"`
	GLAmount      *decimal.Decimal `json:"glAmount,omitempty"`
}

// ExpenseReport is the flat expense report listing with report totals.
type ExpenseReport struct {
	Invoices     []ExpenseInvoice `json:"invoices"`
	ExpenseTotal decimal.Decimal  `json:"expenseTotal"`
	PaidTotal    decimal.Decimal  `json:"paidTotal"`
}

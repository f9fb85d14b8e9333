package ap

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// newCashFlowInvoice derives the invoice line from an open row: the
// available discount is split into taken or lost depending on whether the
// discount date is still in the future, and the balance reflects a taken
// discount.
func newCashFlowInvoice(row CashFlowRow, today time.Time) CashFlowInvoice {
	inv := CashFlowInvoice{
		CompanyID:       row.CompanyID,
		VendorID:        row.VendorID,
		Invoice:         row.Invoice,
		InvoiceDate:     row.InvoiceDate,
		Amount:          row.InvoiceAmount,
		DiscountAmount:  row.DiscountAmount,
		DiscountDate:    row.DiscountDate,
		DiscountPercent: row.DiscountPercent,
		ExpenseDate:     row.ExpenseDate,
		PaidAmount:      row.PaidAmount,
		Status:          row.Status,
		DueDate:         row.DueDate,
		Balance:         row.InvoiceAmount.Sub(row.PaidAmount),
	}
	if !row.DiscountAmount.IsPositive() {
		return inv
	}
	discount := row.DiscountAmount.Mul(row.DiscountPercent)
	if row.DiscountDate != nil && row.DiscountDate.After(today) {
		inv.DiscountTaken = &discount
		inv.Balance = inv.Balance.Sub(discount)
	} else {
		inv.DiscountLost = &discount
	}
	return inv
}

// BuildCashFlowReport folds a vendor-ordered row stream of open invoices
// into the cash flow report tree. Invoices are bucketed by due date against
// the filter's five date ranges; an invoice matching none stays on the
// report but feeds no bucket sum.
func BuildCashFlowReport(ctx context.Context, rows []CashFlowRow, filter CashFlowFilter, today time.Time) (CashFlowReport, error) {
	var report CashFlowReport
	seen := make(map[int]bool)
	cur := -1
	prevInvoice := ""

	for _, row := range rows {
		if cur < 0 || report.Vendors[cur].VendorNumber != row.VendorNumber {
			if err := ctx.Err(); err != nil {
				return CashFlowReport{}, err
			}
			if seen[row.VendorNumber] {
				return CashFlowReport{}, fmt.Errorf("%w: vendor %d repeats non-contiguously", ErrStreamOrder, row.VendorNumber)
			}
			seen[row.VendorNumber] = true
			report.Vendors = append(report.Vendors, CashFlowVendor{
				CompanyID:    row.CompanyID,
				VendorNumber: row.VendorNumber,
				VendorName:   row.VendorName,
			})
			cur = len(report.Vendors) - 1
			prevInvoice = ""
		} else if row.Invoice == prevInvoice {
			continue
		}
		prevInvoice = row.Invoice

		if row.Status != StatusOpen {
			continue
		}

		inv := newCashFlowInvoice(row, today)
		inv.Bucket = classifyRange(inv.DueDate, filter.Ranges)

		vendor := &report.Vendors[cur]
		vendor.Invoices = append(vendor.Invoices, inv)
		vendor.Totals.add(inv.Bucket, inv.Balance)
		report.Totals.add(inv.Bucket, inv.Balance)
		if inv.DiscountTaken != nil {
			vendor.Totals.DiscountTaken = vendor.Totals.DiscountTaken.Add(*inv.DiscountTaken)
			report.Totals.DiscountTaken = report.Totals.DiscountTaken.Add(*inv.DiscountTaken)
		}
		if inv.DiscountLost != nil {
			vendor.Totals.DiscountLost = vendor.Totals.DiscountLost.Add(*inv.DiscountLost)
			report.Totals.DiscountLost = report.Totals.DiscountLost.Add(*inv.DiscountLost)
		}
		if inv.DiscountDate != nil {
			// Last seen discount date wins.
			vendor.Totals.DiscountDate = inv.DiscountDate
			report.Totals.DiscountDate = inv.DiscountDate
		}
	}

	report.Vendors = pruneCashFlowVendors(report.Vendors)
	sortCashFlowVendors(report.Vendors, filter.SortBy, filter.SortDirection)
	if !filter.Details {
		// Totals-only rendition: vendor groups keep their sums but the
		// invoice lines are not returned.
		for i := range report.Vendors {
			report.Vendors[i].Invoices = nil
		}
	}
	return report, nil
}

// sortCashFlowVendors reorders the vendor groups for presentation. Rows
// arrive vendor-number ordered, so the number sort is a no-op unless the
// direction reverses it.
func sortCashFlowVendors(vendors []CashFlowVendor, sortBy, direction string) {
	if sortBy == SortByVendorName {
		sort.SliceStable(vendors, func(i, j int) bool {
			if vendors[i].VendorName != vendors[j].VendorName {
				return vendors[i].VendorName < vendors[j].VendorName
			}
			return vendors[i].VendorNumber < vendors[j].VendorNumber
		})
	}
	if direction == SortDescending {
		for i, j := 0, len(vendors)-1; i < j; i, j = i+1, j-1 {
			vendors[i], vendors[j] = vendors[j], vendors[i]
		}
	}
}

func pruneCashFlowVendors(vendors []CashFlowVendor) []CashFlowVendor {
	kept := vendors[:0]
	for _, v := range vendors {
		if len(v.Invoices) > 0 {
			kept = append(kept, v)
		}
	}
	return kept
}

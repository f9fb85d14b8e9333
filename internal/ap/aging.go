package ap

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func newAgingInvoice(row AgingRow) AgingInvoice {
	return AgingInvoice{
		CompanyID:           row.CompanyID,
		VendorID:            row.VendorID,
		Invoice:             row.Invoice,
		InvoiceDate:         row.InvoiceDate,
		Amount:              row.InvoiceAmount,
		DiscountAmount:      row.DiscountAmount,
		ExpenseDate:         row.ExpenseDate,
		PaidAmount:          row.PaidAmount,
		Status:              row.Status,
		DueDate:             row.DueDate,
		PaymentDate:         row.PaymentDate,
		PaymentVoidedDate:   row.PaymentVoidedDate,
		PaymentDetailAmount: row.PaymentDetailAmount,
		Balance:             row.InvoiceAmount.Sub(row.PaidAmount),
	}
}

// reopenBackdated applies the back-date inquiry to a paid invoice: a payment
// dated after the as-of date that was never voided means the invoice was
// still open as of the report date. The returned invoice has its status,
// paid amount and balance re-derived; the input is not modified.
func reopenBackdated(inv AgingInvoice, asOf time.Time) AgingInvoice {
	if inv.PaymentDate == nil || !inv.PaymentDate.After(asOf) || inv.PaymentVoidedDate != nil {
		return inv
	}
	detail := decimal.Zero
	if inv.PaymentDetailAmount != nil {
		detail = *inv.PaymentDetailAmount
	}
	inv.Status = StatusOpen
	inv.PaidAmount = inv.PaidAmount.Sub(detail)
	inv.Balance = inv.Amount.Sub(inv.PaidAmount)
	return inv
}

// BuildAgingReport folds a vendor-ordered row stream into the aging report
// tree. Rows must arrive grouped by vendor then invoice; a vendor number
// that reappears after the group ended fails with ErrStreamOrder.
func BuildAgingReport(ctx context.Context, rows []AgingRow, filter AgingFilter) (AgingReport, error) {
	var report AgingReport
	seen := make(map[int]bool)
	cur := -1
	prevInvoice := ""

	for _, row := range rows {
		if cur < 0 || report.Vendors[cur].VendorNumber != row.VendorNumber {
			if err := ctx.Err(); err != nil {
				return AgingReport{}, err
			}
			if seen[row.VendorNumber] {
				return AgingReport{}, fmt.Errorf("%w: vendor %d repeats non-contiguously", ErrStreamOrder, row.VendorNumber)
			}
			seen[row.VendorNumber] = true
			report.Vendors = append(report.Vendors, AgingVendor{
				CompanyID:    row.CompanyID,
				VendorNumber: row.VendorNumber,
				VendorName:   row.VendorName,
			})
			cur = len(report.Vendors) - 1
			prevInvoice = ""
		} else if row.Invoice == prevInvoice {
			// Additional payment detail line for the invoice already
			// folded; the first row wins.
			continue
		}
		prevInvoice = row.Invoice

		if !row.Status.Known() {
			return AgingReport{}, fmt.Errorf("%w: status %d on invoice %s", ErrUnclassifiableInvoice, row.Status, row.Invoice)
		}

		inv := newAgingInvoice(row)
		switch {
		case inv.Status == StatusOpen:
			// included as-is
		case inv.Status == StatusPaid && inv.PaidAmount.IsPositive():
			inv = reopenBackdated(inv, filter.AgingDate)
			if inv.Status != StatusOpen {
				continue
			}
		default:
			continue
		}

		inv.Bucket = classifyAging(inv.DueDate, filter.AgingDate)

		vendor := &report.Vendors[cur]
		vendor.Invoices = append(vendor.Invoices, inv)
		vendor.Totals.add(inv.Bucket, inv.Balance)
		report.Totals.add(inv.Bucket, inv.Balance)
	}

	report.Vendors = pruneAgingVendors(report.Vendors)
	return report, nil
}

// pruneAgingVendors drops vendors that retained no qualifying invoices.
// Their contribution to the grand totals is definitionally zero, so no
// total adjustment is needed.
func pruneAgingVendors(vendors []AgingVendor) []AgingVendor {
	kept := vendors[:0]
	for _, v := range vendors {
		if len(v.Invoices) > 0 {
			kept = append(kept, v)
		}
	}
	return kept
}

package ap

import (
	"context"
	"fmt"
)

func newCashRequirementInvoice(row CashRequirementRow) CashRequirementInvoice {
	return CashRequirementInvoice{
		CompanyID:           row.CompanyID,
		VendorID:            row.VendorID,
		Invoice:             row.Invoice,
		InvoiceDate:         row.InvoiceDate,
		Amount:              row.InvoiceAmount,
		DiscountAmount:      row.DiscountAmount,
		ExpenseDate:         row.ExpenseDate,
		PaidAmount:          row.PaidAmount,
		DiscountTaken:       row.DiscountTaken,
		Status:              row.Status,
		DueDate:             row.DueDate,
		PaymentDate:         row.PaymentDate,
		PaymentStatus:       row.PaymentStatus,
		PaymentVoidedDate:   row.PaymentVoidedDate,
		PaymentDetailAmount: row.PaymentDetailAmount,
		Balance:             row.InvoiceAmount.Sub(row.PaidAmount),
	}
}

// BuildCashRequirementReport folds a vendor-ordered row stream into the
// cash requirement report tree. Invoices are bucketed by the payment date
// when one exists, otherwise the due date; each bucket accumulates both the
// amount still due and the amount already paid.
func BuildCashRequirementReport(ctx context.Context, rows []CashRequirementRow, filter CashRequirementFilter) (CashRequirementReport, error) {
	var report CashRequirementReport
	seen := make(map[int]bool)
	cur := -1
	prevInvoice := ""

	for _, row := range rows {
		if cur < 0 || report.Vendors[cur].VendorNumber != row.VendorNumber {
			if err := ctx.Err(); err != nil {
				return CashRequirementReport{}, err
			}
			if seen[row.VendorNumber] {
				return CashRequirementReport{}, fmt.Errorf("%w: vendor %d repeats non-contiguously", ErrStreamOrder, row.VendorNumber)
			}
			seen[row.VendorNumber] = true
			report.Vendors = append(report.Vendors, CashRequirementVendor{
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

		if !row.Status.Known() {
			return CashRequirementReport{}, fmt.Errorf("%w: status %d on invoice %s", ErrUnclassifiableInvoice, row.Status, row.Invoice)
		}
		if row.Status == StatusVoided {
			continue
		}
		if row.PaymentStatus != nil && *row.PaymentStatus != PaymentStatusPaid {
			continue
		}

		inv := newCashRequirementInvoice(row)
		classifyDate := inv.DueDate
		if inv.PaymentDate != nil {
			classifyDate = *inv.PaymentDate
		}
		inv.Bucket = classifyRange(classifyDate, filter.Ranges)

		due := inv.Amount.Sub(inv.PaidAmount).Sub(inv.DiscountTaken)

		vendor := &report.Vendors[cur]
		vendor.Invoices = append(vendor.Invoices, inv)
		vendor.Totals.add(inv.Bucket, due, inv.PaidAmount)
		report.Totals.add(inv.Bucket, due, inv.PaidAmount)
	}

	report.Vendors = pruneCashRequirementVendors(report.Vendors)
	if filter.SortDirection == SortDescending {
		for i, j := 0, len(report.Vendors)-1; i < j; i, j = i+1, j-1 {
			report.Vendors[i], report.Vendors[j] = report.Vendors[j], report.Vendors[i]
		}
	}
	return report, nil
}

func pruneCashRequirementVendors(vendors []CashRequirementVendor) []CashRequirementVendor {
	kept := vendors[:0]
	for _, v := range vendors {
		if len(v.Invoices) > 0 {
			kept = append(kept, v)
		}
	}
	return kept
}

package ap

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

func newExpenseInvoice(row ExpenseRow) ExpenseInvoice {
	return ExpenseInvoice{
		CompanyID:     row.CompanyID,
		VendorNumber:  row.VendorNumber,
		VendorName:    row.VendorName,
		Invoice:       row.Invoice,
		InvoiceDate:   row.InvoiceDate,
		Amount:        row.InvoiceAmount,
		ExpenseDate:   row.ExpenseDate,
		PaidAmount:    row.PaidAmount,
		Status:        row.Status,
		PaymentNumber: row.PaymentNumber,
		PaymentDate:   row.PaymentDate,
		GLAmount:      row.GLAmount,
	}
}

// BuildExpenseReport folds a vendor-ordered row stream into the flat
// expense listing, then applies the caller's sort. Distribution rows for an
// invoice already listed are collapsed into the first row. The sort never
// changes the totals.
func BuildExpenseReport(ctx context.Context, rows []ExpenseRow, filter ExpenseFilter) (ExpenseReport, error) {
	var report ExpenseReport
	seen := make(map[int]bool)
	prevVendor := -1
	prevInvoice := ""

	for _, row := range rows {
		if row.VendorNumber != prevVendor {
			if err := ctx.Err(); err != nil {
				return ExpenseReport{}, err
			}
			if seen[row.VendorNumber] {
				return ExpenseReport{}, fmt.Errorf("%w: vendor %d repeats non-contiguously", ErrStreamOrder, row.VendorNumber)
			}
			seen[row.VendorNumber] = true
			prevVendor = row.VendorNumber
			prevInvoice = ""
		} else if row.Invoice == prevInvoice {
			continue
		}
		prevInvoice = row.Invoice

		if !row.Status.Known() {
			return ExpenseReport{}, fmt.Errorf("%w: status %d on invoice %s", ErrUnclassifiableInvoice, row.Status, row.Invoice)
		}

		inv := newExpenseInvoice(row)
		report.Invoices = append(report.Invoices, inv)
		report.ExpenseTotal = report.ExpenseTotal.Add(inv.Amount)
		report.PaidTotal = report.PaidTotal.Add(inv.PaidAmount)
	}

	sortExpenseInvoices(report.Invoices, filter.SortBy, filter.SortDirection)
	return report, nil
}

// invoiceSortToken extracts the comparable part of an invoice number: the
// text before the first '-', then the text after the first ':'. Tokens are
// ordered by length first, which sorts plain numeric invoice numbers in
// numeric order without parsing them.
func invoiceSortToken(invoice string) string {
	token, _, _ := strings.Cut(invoice, "-")
	if _, after, ok := strings.Cut(token, ":"); ok {
		token = after
	}
	return token
}

func lessInvoiceNumber(a, b string) bool {
	ta, tb := invoiceSortToken(a), invoiceSortToken(b)
	if len(ta) != len(tb) {
		return len(ta) < len(tb)
	}
	return ta < tb
}

func sortExpenseInvoices(invoices []ExpenseInvoice, sortBy, direction string) {
	var less func(a, b ExpenseInvoice) bool
	switch sortBy {
	case SortByVendorNumber:
		less = func(a, b ExpenseInvoice) bool {
			if a.VendorNumber != b.VendorNumber {
				return a.VendorNumber < b.VendorNumber
			}
			return lessInvoiceNumber(a.Invoice, b.Invoice)
		}
	case SortByVendorName:
		less = func(a, b ExpenseInvoice) bool {
			if a.VendorName != b.VendorName {
				return a.VendorName < b.VendorName
			}
			return lessInvoiceNumber(a.Invoice, b.Invoice)
		}
	default:
		less = func(a, b ExpenseInvoice) bool {
			return lessInvoiceNumber(a.Invoice, b.Invoice)
		}
	}
	sort.SliceStable(invoices, func(i, j int) bool { return less(invoices[i], invoices[j]) })
	if direction == SortDescending {
		for i, j := 0, len(invoices)-1; i < j; i, j = i+1, j-1 {
			invoices[i], invoices[j] = invoices[j], invoices[i]
		}
	}
}

package ap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func expenseRow(vendor int, name, invoice, amount string) ExpenseRow {
	d := day(2022, time.August, 1)
	return ExpenseRow{
		CompanyID:     testCompanyID,
		VendorNumber:  vendor,
		VendorName:    name,
		Invoice:       invoice,
		InvoiceDate:   d,
		InvoiceAmount: dec(amount),
		ExpenseDate:   d,
		Status:        StatusOpen,
	}
}

func TestInvoiceSortToken(t *testing.T) {
	cases := []struct {
		invoice string
		want    string
	}{
		{"1234", "1234"},
		{"1234-1", "1234"},
		{"ST:1234-1", "1234"},
		{"ST:1234", "1234"},
		{"A:B:C-D", "B:C"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, invoiceSortToken(tc.invoice), "invoice %q", tc.invoice)
	}
}

func TestBuildExpenseReport_SortByInvoiceNumeric(t *testing.T) {
	rows := []ExpenseRow{
		expenseRow(1, "Acme", "100", "10.00"),
		expenseRow(1, "Acme", "99", "20.00"),
		expenseRow(1, "Acme", "1000", "30.00"),
	}

	report, err := BuildExpenseReport(context.Background(), rows, ExpenseFilter{CompanyID: testCompanyID, SortBy: SortByInvoice})
	require.NoError(t, err)

	// Shorter tokens sort first, so plain numeric invoice numbers come out
	// in numeric order.
	require.Equal(t, "99", report.Invoices[0].Invoice)
	require.Equal(t, "100", report.Invoices[1].Invoice)
	require.Equal(t, "1000", report.Invoices[2].Invoice)
}

func TestBuildExpenseReport_SortByVendorName(t *testing.T) {
	rows := []ExpenseRow{
		expenseRow(1, "Zephyr", "Z-2", "10.00"),
		expenseRow(1, "Zephyr", "Z-1", "10.00"),
		expenseRow(2, "Acme", "A-1", "20.00"),
	}

	report, err := BuildExpenseReport(context.Background(), rows, ExpenseFilter{CompanyID: testCompanyID, SortBy: SortByVendorName})
	require.NoError(t, err)
	require.Equal(t, "A-1", report.Invoices[0].Invoice)
	require.Equal(t, "Z-1", report.Invoices[1].Invoice)
	require.Equal(t, "Z-2", report.Invoices[2].Invoice)
}

func TestBuildExpenseReport_DescendingReverses(t *testing.T) {
	rows := []ExpenseRow{
		expenseRow(1, "Acme", "1", "10.00"),
		expenseRow(1, "Acme", "2", "20.00"),
	}

	asc, err := BuildExpenseReport(context.Background(), rows, ExpenseFilter{CompanyID: testCompanyID, SortBy: SortByInvoice})
	require.NoError(t, err)
	desc, err := BuildExpenseReport(context.Background(), rows, ExpenseFilter{CompanyID: testCompanyID, SortBy: SortByInvoice, SortDirection: SortDescending})
	require.NoError(t, err)

	require.Equal(t, asc.Invoices[0], desc.Invoices[1])
	require.Equal(t, asc.Invoices[1], desc.Invoices[0])
}

func TestBuildExpenseReport_SortNeverChangesTotals(t *testing.T) {
	rows := []ExpenseRow{
		expenseRow(2, "Zephyr", "Z-1", "10.00"),
		expenseRow(3, "Acme", "A-1", "20.00"),
		expenseRow(5, "Mid", "M-1", "30.00"),
	}
	rows[0].PaidAmount = dec("10.00")

	keys := []string{SortByInvoice, SortByVendorNumber, SortByVendorName}
	for _, key := range keys {
		for _, direction := range []string{SortAscending, SortDescending} {
			report, err := BuildExpenseReport(context.Background(), rows, ExpenseFilter{CompanyID: testCompanyID, SortBy: key, SortDirection: direction})
			require.NoError(t, err)
			require.True(t, report.ExpenseTotal.Equal(dec("60.00")), "%s %s", key, direction)
			require.True(t, report.PaidTotal.Equal(dec("10.00")), "%s %s", key, direction)
		}
	}
}

func TestBuildExpenseReport_StreamOrderViolation(t *testing.T) {
	rows := []ExpenseRow{
		expenseRow(1, "Acme", "A-1", "10.00"),
		expenseRow(2, "Zephyr", "Z-1", "20.00"),
		expenseRow(1, "Acme", "A-2", "30.00"),
	}

	_, err := BuildExpenseReport(context.Background(), rows, ExpenseFilter{CompanyID: testCompanyID})
	require.ErrorIs(t, err, ErrStreamOrder)
}

func TestBuildExpenseReport_CollapsesDistributionRows(t *testing.T) {
	first := expenseRow(1, "Acme", "A-1", "100.00")
	first.GLAmount = decPtr("60.00")
	second := first
	second.GLAmount = decPtr("40.00")

	report, err := BuildExpenseReport(context.Background(), []ExpenseRow{first, second}, ExpenseFilter{CompanyID: testCompanyID})
	require.NoError(t, err)
	require.Len(t, report.Invoices, 1)
	require.True(t, report.ExpenseTotal.Equal(dec("100.00")))
	require.True(t, report.Invoices[0].GLAmount.Equal(dec("60.00")))
}

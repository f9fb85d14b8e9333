package ap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository loads the denormalized report row streams. Every query orders
// by vendor number then invoice number so the fold can detect group
// boundaries by comparison alone.
type Repository interface {
	AgingRows(ctx context.Context, filter AgingFilter) ([]AgingRow, error)
	CashFlowRows(ctx context.Context, filter CashFlowFilter) ([]CashFlowRow, error)
	CashRequirementRows(ctx context.Context, filter CashRequirementFilter) ([]CashRequirementRow, error)
	ExpenseRows(ctx context.Context, filter ExpenseFilter) ([]ExpenseRow, error)
}

var _ Repository = (*pgRepository)(nil)

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

// agingRowsQuery builds the aging row query. Invoices expensed after the
// as-of date do not exist yet from the report's point of view, so the
// expense date is capped at the aging date.
func agingRowsQuery(filter AgingFilter) (string, []interface{}) {
	query := `
		SELECT i.company_id, i.vendor_id, v.number, v.name,
		       i.invoice, i.invoice_date, i.amount, i.discount_amount,
		       i.expense_date, i.paid_amount, i.due_date, i.status,
		       p.payment_date, p.voided_date, pd.amount
		FROM ap_invoices i
		JOIN vendors v ON v.id = i.vendor_id
		LEFT JOIN ap_payment_details pd ON pd.invoice_id = i.id
		LEFT JOIN ap_payments p ON p.id = pd.payment_id
		WHERE i.company_id = $1
		  AND i.status IN ($2, $3)
		  AND i.expense_date <= $4
	`
	args := []interface{}{filter.CompanyID, StatusOpen, StatusPaid, filter.AgingDate}
	if len(filter.VendorIDs) > 0 {
		args = append(args, filter.VendorIDs)
		query += fmt.Sprintf(" AND i.vendor_id = ANY($%d)", len(args))
	}
	query += " ORDER BY v.number, i.invoice, pd.created_at"
	return query, args
}

func (r *pgRepository) AgingRows(ctx context.Context, filter AgingFilter) ([]AgingRow, error) {
	query, args := agingRowsQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ap: aging rows: %w", err)
	}
	defer rows.Close()

	var out []AgingRow
	for rows.Next() {
		var row AgingRow
		var amount, discount, paid pgtype.Numeric
		var detail *pgtype.Numeric
		if err := rows.Scan(
			&row.CompanyID, &row.VendorID, &row.VendorNumber, &row.VendorName,
			&row.Invoice, &row.InvoiceDate, &amount, &discount,
			&row.ExpenseDate, &paid, &row.DueDate, &row.Status,
			&row.PaymentDate, &row.PaymentVoidedDate, &detail,
		); err != nil {
			return nil, err
		}
		row.InvoiceAmount = numericToDecimal(amount)
		row.DiscountAmount = numericToDecimal(discount)
		row.PaidAmount = numericToDecimal(paid)
		row.PaymentDetailAmount = numericPtrToDecimal(detail)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *pgRepository) CashFlowRows(ctx context.Context, filter CashFlowFilter) ([]CashFlowRow, error) {
	query := `
		SELECT i.company_id, i.vendor_id, v.number, v.name,
		       i.invoice, i.invoice_date, i.amount, i.discount_amount,
		       i.discount_date, i.discount_percent, i.expense_date,
		       i.paid_amount, i.discount_taken, i.due_date, i.status
		FROM ap_invoices i
		JOIN vendors v ON v.id = i.vendor_id
		WHERE i.company_id = $1
		  AND i.status = $2
	`
	args := []interface{}{filter.CompanyID, StatusOpen}
	from, thru := filter.Window()
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND i.due_date >= $%d", len(args))
	}
	if thru != nil {
		args = append(args, *thru)
		query += fmt.Sprintf(" AND i.due_date <= $%d", len(args))
	}
	query += " ORDER BY v.number, i.invoice"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ap: cash flow rows: %w", err)
	}
	defer rows.Close()

	var out []CashFlowRow
	for rows.Next() {
		var row CashFlowRow
		var amount, discount, percent, paid, taken pgtype.Numeric
		if err := rows.Scan(
			&row.CompanyID, &row.VendorID, &row.VendorNumber, &row.VendorName,
			&row.Invoice, &row.InvoiceDate, &amount, &discount,
			&row.DiscountDate, &percent, &row.ExpenseDate,
			&paid, &taken, &row.DueDate, &row.Status,
		); err != nil {
			return nil, err
		}
		row.InvoiceAmount = numericToDecimal(amount)
		row.DiscountAmount = numericToDecimal(discount)
		row.DiscountPercent = numericToDecimal(percent)
		row.PaidAmount = numericToDecimal(paid)
		row.DiscountTaken = numericToDecimal(taken)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *pgRepository) CashRequirementRows(ctx context.Context, filter CashRequirementFilter) ([]CashRequirementRow, error) {
	query := `
		SELECT i.company_id, i.vendor_id, v.number, v.name,
		       i.invoice, i.invoice_date, i.amount, i.discount_amount,
		       i.expense_date, i.paid_amount, i.discount_taken, i.due_date,
		       i.status, p.payment_date, p.status, p.voided_date, pd.amount
		FROM ap_invoices i
		JOIN vendors v ON v.id = i.vendor_id
		LEFT JOIN ap_payment_details pd ON pd.invoice_id = i.id
		LEFT JOIN ap_payments p ON p.id = pd.payment_id
		WHERE i.company_id = $1
	`
	args := []interface{}{filter.CompanyID}
	if filter.BeginVendor != nil {
		args = append(args, *filter.BeginVendor)
		query += fmt.Sprintf(" AND v.number >= $%d", len(args))
	}
	if filter.EndVendor != nil {
		args = append(args, *filter.EndVendor)
		query += fmt.Sprintf(" AND v.number <= $%d", len(args))
	}
	query += " ORDER BY v.number, i.invoice, pd.created_at"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ap: cash requirement rows: %w", err)
	}
	defer rows.Close()

	var out []CashRequirementRow
	for rows.Next() {
		var row CashRequirementRow
		var amount, discount, paid, taken pgtype.Numeric
		var detail *pgtype.Numeric
		if err := rows.Scan(
			&row.CompanyID, &row.VendorID, &row.VendorNumber, &row.VendorName,
			&row.Invoice, &row.InvoiceDate, &amount, &discount,
			&row.ExpenseDate, &paid, &taken, &row.DueDate,
			&row.Status, &row.PaymentDate, &row.PaymentStatus, &row.PaymentVoidedDate, &detail,
		); err != nil {
			return nil, err
		}
		row.InvoiceAmount = numericToDecimal(amount)
		row.DiscountAmount = numericToDecimal(discount)
		row.PaidAmount = numericToDecimal(paid)
		row.DiscountTaken = numericToDecimal(taken)
		row.PaymentDetailAmount = numericPtrToDecimal(detail)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *pgRepository) ExpenseRows(ctx context.Context, filter ExpenseFilter) ([]ExpenseRow, error) {
	query := `
		SELECT i.company_id, v.number, v.name,
		       i.invoice, i.invoice_date, i.amount, i.expense_date,
		       i.paid_amount, i.status, p.number, p.payment_date, d.amount
		FROM ap_invoices i
		JOIN vendors v ON v.id = i.vendor_id
		LEFT JOIN ap_invoice_distributions d ON d.invoice_id = i.id
		LEFT JOIN ap_payment_details pd ON pd.invoice_id = i.id
		LEFT JOIN ap_payments p ON p.id = pd.payment_id
		WHERE i.company_id = $1
	`
	args := []interface{}{filter.CompanyID}
	if filter.BeginVendor != nil {
		args = append(args, *filter.BeginVendor)
		query += fmt.Sprintf(" AND v.number >= $%d", len(args))
	}
	if filter.EndVendor != nil {
		args = append(args, *filter.EndVendor)
		query += fmt.Sprintf(" AND v.number <= $%d", len(args))
	}
	if filter.BeginDate != nil {
		args = append(args, *filter.BeginDate)
		query += fmt.Sprintf(" AND i.expense_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND i.expense_date <= $%d", len(args))
	}
	if codes := filter.StatusCodes(); len(codes) > 0 {
		args = append(args, codes)
		query += fmt.Sprintf(" AND i.status = ANY($%d)", len(args))
	}
	if !filter.IncludeHeld {
		args = append(args, StatusHeld)
		query += fmt.Sprintf(" AND i.status <> $%d", len(args))
	}
	query += " ORDER BY v.number, i.invoice, d.created_at"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ap: expense rows: %w", err)
	}
	defer rows.Close()

	var out []ExpenseRow
	for rows.Next() {
		var row ExpenseRow
		var amount, paid pgtype.Numeric
		var gl *pgtype.Numeric
		if err := rows.Scan(
			&row.CompanyID, &row.VendorNumber, &row.VendorName,
			&row.Invoice, &row.InvoiceDate, &amount, &row.ExpenseDate,
			&paid, &row.Status, &row.PaymentNumber, &row.PaymentDate, &gl,
		); err != nil {
			return nil, err
		}
		row.InvoiceAmount = numericToDecimal(amount)
		row.PaidAmount = numericToDecimal(paid)
		row.GLAmount = numericPtrToDecimal(gl)
		out = append(out, row)
	}
	return out, rows.Err()
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func numericPtrToDecimal(n *pgtype.Numeric) *decimal.Decimal {
	if n == nil {
		return nil
	}
	d := numericToDecimal(*n)
	return &d
}

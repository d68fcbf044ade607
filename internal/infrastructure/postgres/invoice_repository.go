package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo persistencia de facturas, líneas y abonos.
type InvoiceRepo struct {
	q      Querier
	locked bool // GetByID con FOR UPDATE (solo dentro de RunInvoice)
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func (r *InvoiceRepo) forUpdate() *InvoiceRepo {
	return &InvoiceRepo{q: r.q, locked: true}
}

const invoiceColumns = `id, invoice_number, order_id, order_number, client_id, client_name, issue_date, due_date,
	subtotal, tax, discount, total, amount_paid, balance, status, notes, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var i entity.Invoice
	if err := row.Scan(&i.ID, &i.InvoiceNumber, &i.OrderID, &i.OrderNumber, &i.ClientID, &i.ClientName,
		&i.IssueDate, &i.DueDate, &i.Subtotal, &i.Tax, &i.Discount, &i.Total, &i.AmountPaid, &i.Balance,
		&i.Status, &i.Notes, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserta cabecera y líneas. La restricción UNIQUE(order_id) garantiza una factura por pedido.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		inv.ID, inv.InvoiceNumber, inv.OrderID, inv.OrderNumber, inv.ClientID, inv.ClientName, inv.IssueDate,
		inv.DueDate, inv.Subtotal, inv.Tax, inv.Discount, inv.Total, inv.AmountPaid, inv.Balance, inv.Status,
		inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for _, it := range inv.Items {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO invoice_items (id, invoice_id, product_id, description, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, inv.ID, it.ProductID, it.Description, it.Quantity, it.UnitPrice, it.Total,
		); err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

func (r *InvoiceRepo) getOne(ctx context.Context, cond string, arg any) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + cond
	if r.locked {
		query += ` FOR UPDATE`
	}
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if err := r.loadChildren(ctx, []*entity.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByID obtiene la factura con líneas y abonos.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByOrderID obtiene la factura de un pedido.
func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error) {
	return r.getOne(ctx, "order_id = $1", orderID)
}

func (r *InvoiceRepo) loadChildren(ctx context.Context, list []*entity.Invoice) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Invoice, len(list))
	ids := make([]string, 0, len(list))
	for _, inv := range list {
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, product_id, description, quantity, unit_price, total
		FROM invoice_items WHERE invoice_id = ANY($1) ORDER BY description, id`, ids)
	if err != nil {
		return fmt.Errorf("list invoice items: %w", err)
	}
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Description, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			rows.Close()
			return fmt.Errorf("scan invoice item: %w", err)
		}
		byID[it.InvoiceID].Items = append(byID[it.InvoiceID].Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list invoice items: %w", err)
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, invoice_id, amount, method, reference, paid_at, created_by
		FROM invoice_payments WHERE invoice_id = ANY($1) ORDER BY paid_at, id`, ids)
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.Reference, &p.PaidAt, &p.CreatedBy); err != nil {
			return fmt.Errorf("scan payment: %w", err)
		}
		byID[p.InvoiceID].Payments = append(byID[p.InvoiceID].Payments, p)
	}
	return rows.Err()
}

// List lista facturas por estado y cliente.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	var w where
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.ClientID != "" {
		w.add("client_id = ?", f.ClientID)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices` + w.sql() +
		` ORDER BY created_at DESC, id LIMIT ` + w.next(f.Limit) + ` OFFSET ` + w.next(f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	if err := r.loadChildren(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update persiste notas, vencimiento, estado y saldo.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE invoices SET notes = $2, due_date = $3, status = $4, amount_paid = $5, balance = $6, updated_at = $7
		WHERE id = $1`,
		inv.ID, inv.Notes, inv.DueDate, inv.Status, inv.AmountPaid, inv.Balance, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddPayment registra un abono.
func (r *InvoiceRepo) AddPayment(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoice_payments (id, invoice_id, amount, method, reference, paid_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.InvoiceID, p.Amount, p.Method, p.Reference, p.PaidAt, p.CreatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// MarkOverdue pasa a overdue las facturas con saldo y vencimiento anterior a now.
func (r *InvoiceRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE invoices SET status = $2, updated_at = $1
		WHERE status IN ($3, $4, $5) AND balance > 0 AND due_date < $1`,
		now, entity.InvoiceStatusOverdue,
		entity.InvoiceStatusDraft, entity.InvoiceStatusSent, entity.InvoiceStatusPartial,
	)
	if err != nil {
		return 0, fmt.Errorf("mark overdue invoices: %w", err)
	}
	return cmd.RowsAffected(), nil
}

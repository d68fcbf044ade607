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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo persistencia de pedidos, líneas (order_items) e historial (order_events).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, client_id, client_name, subtotal, tax, discount, total, status,
	delivery_address, delivery_date, delivery_time, special_instructions, driver_id, driver_name,
	created_by, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.ClientID, &o.ClientName, &o.Subtotal, &o.Tax, &o.Discount,
		&o.Total, &o.Status, &o.DeliveryAddress, &o.DeliveryDate, &o.DeliveryTime, &o.SpecialInstructions,
		&o.DriverID, &o.DriverName, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta cabecera, líneas y eventos. Debe llamarse dentro de RunOrders.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, o.ClientID, o.ClientName, o.Subtotal, o.Tax, o.Discount, o.Total, o.Status,
		o.DeliveryAddress, o.DeliveryDate, o.DeliveryTime, o.SpecialInstructions, o.DriverID, o.DriverName,
		o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, o.ClientID)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, o.ID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Total,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	for i := range o.Events {
		ev := o.Events[i]
		ev.OrderID = o.ID
		if err := r.AppendEvent(ctx, &ev); err != nil {
			return err
		}
	}
	return nil
}

// GetByID carga el pedido con líneas y eventos.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadChildren(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// loadChildren carga líneas y eventos de varios pedidos con dos consultas (sin N+1).
func (r *OrderRepo) loadChildren(ctx context.Context, list []*entity.Order) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(list))
	ids := make([]string, 0, len(list))
	for _, o := range list {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, total
		FROM order_items WHERE order_id = ANY($1) ORDER BY product_name, id`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			rows.Close()
			return fmt.Errorf("scan order item: %w", err)
		}
		byID[it.OrderID].Items = append(byID[it.OrderID].Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list order items: %w", err)
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, order_id, status, note, location, updated_by, created_at
		FROM order_events WHERE order_id = ANY($1) ORDER BY created_at, id`, ids)
	if err != nil {
		return fmt.Errorf("list order events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ev entity.TrackingEvent
		if err := rows.Scan(&ev.ID, &ev.OrderID, &ev.Status, &ev.Note, &ev.Location, &ev.UpdatedBy, &ev.Timestamp); err != nil {
			return fmt.Errorf("scan order event: %w", err)
		}
		byID[ev.OrderID].Events = append(byID[ev.OrderID].Events, ev)
	}
	return rows.Err()
}

// List lista pedidos (más recientes primero) con líneas y eventos.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	var w where
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.ClientID != "" {
		w.add("client_id = ?", f.ClientID)
	}
	if f.DriverID != "" {
		w.add("driver_id = ?", f.DriverID)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at < ?", *f.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	query := `SELECT ` + orderColumns + ` FROM orders` + w.sql() +
		` ORDER BY created_at DESC, id LIMIT ` + w.next(f.Limit) + ` OFFSET ` + w.next(f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	if err := r.loadChildren(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateStatus compare-and-set del estado: solo cambia si el actual sigue siendo from.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`, id, from, to, at)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// AppendEvent agrega un evento al historial (nunca se modifica ni borra).
func (r *OrderRepo) AppendEvent(ctx context.Context, ev *entity.TrackingEvent) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_events (id, order_id, status, note, location, updated_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.ID, ev.OrderID, ev.Status, ev.Note, ev.Location, ev.UpdatedBy, ev.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

// UpdateDetails persiste datos de entrega, descuento y totales recalculados.
func (r *OrderRepo) UpdateDetails(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET delivery_address = $2, delivery_date = $3, delivery_time = $4, special_instructions = $5,
			subtotal = $6, tax = $7, discount = $8, total = $9, updated_at = $10
		WHERE id = $1`,
		o.ID, o.DeliveryAddress, o.DeliveryDate, o.DeliveryTime, o.SpecialInstructions,
		o.Subtotal, o.Tax, o.Discount, o.Total, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AssignDriver fija el repartidor del pedido.
func (r *OrderRepo) AssignDriver(ctx context.Context, id, driverID, driverName string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET driver_id = $2, driver_name = $3, updated_at = $4 WHERE id = $1`,
		id, driverID, driverName, at)
	if err != nil {
		return fmt.Errorf("assign driver: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el pedido (líneas y eventos en cascada). ErrConflict si está facturado.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el pedido tiene factura", domain.ErrConflict)
		}
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

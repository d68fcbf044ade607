package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para tablero y reportes.
// Los pedidos cancelados nunca suman ingresos.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetDashboardCounts calcula todos los totales del tablero en una sola ida a la base.
// Usa COALESCE para devolver cero si no hay filas.
func (r *AnalyticsRepo) GetDashboardCounts(ctx context.Context, dayStart, monthStart time.Time) (repository.DashboardCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM orders)                                                AS total_orders,
	    (SELECT COUNT(*) FROM orders WHERE status = 'pending')                       AS pending_orders,
	    (SELECT COUNT(*) FROM orders WHERE created_at >= $1)                         AS today_orders,
	    (SELECT COALESCE(SUM(total), 0) FROM orders
	        WHERE status <> 'cancelled' AND created_at >= $2)                        AS month_revenue,
	    (SELECT COUNT(*) FROM products)                                              AS total_products,
	    (SELECT COUNT(*) FROM products WHERE current_stock <= min_stock)             AS low_stock,
	    (SELECT COUNT(*) FROM clients)                                               AS total_clients,
	    (SELECT COUNT(*) FROM batches WHERE status IN ('pending', 'in-progress'))    AS active_batches,
	    (SELECT COALESCE(SUM(balance), 0) FROM invoices WHERE status <> 'cancelled') AS outstanding`

	var c repository.DashboardCounts
	err := r.pool.QueryRow(ctx, query, dayStart, monthStart).Scan(
		&c.TotalOrders,
		&c.PendingOrders,
		&c.TodayOrders,
		&c.MonthRevenue,
		&c.TotalProducts,
		&c.LowStockProducts,
		&c.TotalClients,
		&c.ActiveBatches,
		&c.OutstandingBalance,
	)
	if err != nil {
		return repository.DashboardCounts{}, fmt.Errorf("analytics.GetDashboardCounts: %w", err)
	}
	return c, nil
}

// GetSalesByDay agrupa pedidos e ingresos por día (UTC) en [from, to).
func (r *AnalyticsRepo) GetSalesByDay(ctx context.Context, from, to time.Time) ([]repository.DailySalesResult, error) {
	const query = `
	SELECT
	    date_trunc('day', created_at AT TIME ZONE 'UTC') AS day,
	    COUNT(*)                                        AS orders,
	    SUM(total)                                      AS revenue
	FROM orders
	WHERE status <> 'cancelled'
	  AND created_at >= $1 AND created_at < $2
	GROUP BY day
	ORDER BY day`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesByDay: %w", err)
	}
	defer rows.Close()

	var results []repository.DailySalesResult
	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(&row.Day, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetSalesByDay scan: %w", err)
		}
		row.Day = time.Date(row.Day.Year(), row.Day.Month(), row.Day.Day(), 0, 0, 0, 0, time.UTC)
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProducts devuelve los `limit` productos con mayor ingreso en el período.
// El nombre sale de la línea del pedido; el SKU del catálogo actual si el producto sigue existiendo.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductSalesResult, error) {
	const query = `
	SELECT
	    oi.product_id,
	    COALESCE(p.sku, '')        AS sku,
	    MAX(oi.product_name)       AS product_name,
	    SUM(oi.quantity)           AS units,
	    SUM(oi.total)              AS revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN products p ON p.id = oi.product_id
	WHERE o.status <> 'cancelled'
	  AND o.created_at >= $1 AND o.created_at < $2
	GROUP BY oi.product_id, p.sku
	ORDER BY revenue DESC, oi.product_id
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSalesResult
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.Units, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopClients devuelve los `limit` clientes con mayor ingreso en el período.
func (r *AnalyticsRepo) GetTopClients(ctx context.Context, from, to time.Time, limit int) ([]repository.ClientSalesResult, error) {
	const query = `
	SELECT
	    o.client_id,
	    COALESCE(c.name, MAX(o.client_name)) AS client_name,
	    COUNT(*)                             AS orders,
	    SUM(o.total)                         AS revenue
	FROM orders o
	LEFT JOIN clients c ON c.id = o.client_id
	WHERE o.status <> 'cancelled'
	  AND o.created_at >= $1 AND o.created_at < $2
	GROUP BY o.client_id, c.name
	ORDER BY revenue DESC, o.client_id
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopClients: %w", err)
	}
	defer rows.Close()

	var results []repository.ClientSalesResult
	for rows.Next() {
		var row repository.ClientSalesResult
		if err := rows.Scan(&row.ClientID, &row.ClientName, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopClients scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

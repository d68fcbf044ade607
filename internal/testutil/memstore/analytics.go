package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agrega sobre el estado en memoria con las mismas reglas que las consultas SQL.
type AnalyticsRepo struct{ s *Store }

func (r *AnalyticsRepo) GetDashboardCounts(ctx context.Context, dayStart, monthStart time.Time) (repository.DashboardCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := repository.DashboardCounts{MonthRevenue: decimal.Zero, OutstandingBalance: decimal.Zero}
	for _, o := range r.s.orders {
		c.TotalOrders++
		if o.Status == entity.OrderStatusPending {
			c.PendingOrders++
		}
		if !o.CreatedAt.Before(dayStart) {
			c.TodayOrders++
		}
		if o.Status != entity.OrderStatusCancelled && !o.CreatedAt.Before(monthStart) {
			c.MonthRevenue = c.MonthRevenue.Add(o.Total)
		}
	}
	for _, p := range r.s.products {
		c.TotalProducts++
		if p.IsLowStock() {
			c.LowStockProducts++
		}
	}
	c.TotalClients = len(r.s.clients)
	for _, b := range r.s.batches {
		if b.Status == entity.BatchStatusPending || b.Status == entity.BatchStatusInProgress {
			c.ActiveBatches++
		}
	}
	for _, inv := range r.s.invoices {
		if inv.Status != entity.InvoiceStatusCancelled {
			c.OutstandingBalance = c.OutstandingBalance.Add(inv.Balance)
		}
	}
	return c, nil
}

func (r *AnalyticsRepo) inRange(from, to time.Time) []entity.Order {
	var out []entity.Order
	for _, o := range r.s.orders {
		if o.Status == entity.OrderStatusCancelled || o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (r *AnalyticsRepo) GetSalesByDay(ctx context.Context, from, to time.Time) ([]repository.DailySalesResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byDay := map[time.Time]*repository.DailySalesResult{}
	for _, o := range r.inRange(from, to) {
		d := o.CreatedAt.UTC().Truncate(24 * time.Hour)
		row, ok := byDay[d]
		if !ok {
			row = &repository.DailySalesResult{Day: d, Revenue: decimal.Zero}
			byDay[d] = row
		}
		row.Orders++
		row.Revenue = row.Revenue.Add(o.Total)
	}
	out := make([]repository.DailySalesResult, 0, len(byDay))
	for _, row := range byDay {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductSalesResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byProduct := map[string]*repository.ProductSalesResult{}
	for _, o := range r.inRange(from, to) {
		for _, it := range o.Items {
			row, ok := byProduct[it.ProductID]
			if !ok {
				row = &repository.ProductSalesResult{ProductID: it.ProductID, ProductName: it.ProductName, Revenue: decimal.Zero}
				if p, found := r.s.products[it.ProductID]; found {
					row.SKU = p.SKU
				}
				byProduct[it.ProductID] = row
			}
			row.Units += it.Quantity
			row.Revenue = row.Revenue.Add(it.Total)
		}
	}
	out := make([]repository.ProductSalesResult, 0, len(byProduct))
	for _, row := range byProduct {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].ProductID < out[j].ProductID
	})
	return page(out, limit, 0), nil
}

func (r *AnalyticsRepo) GetTopClients(ctx context.Context, from, to time.Time, limit int) ([]repository.ClientSalesResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byClient := map[string]*repository.ClientSalesResult{}
	for _, o := range r.inRange(from, to) {
		row, ok := byClient[o.ClientID]
		if !ok {
			row = &repository.ClientSalesResult{ClientID: o.ClientID, ClientName: r.s.clients[o.ClientID].Name, Revenue: decimal.Zero}
			byClient[o.ClientID] = row
		}
		row.Orders++
		row.Revenue = row.Revenue.Add(o.Total)
	}
	out := make([]repository.ClientSalesResult, 0, len(byClient))
	for _, row := range byClient {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].ClientID < out[j].ClientID
	})
	return page(out, limit, 0), nil
}

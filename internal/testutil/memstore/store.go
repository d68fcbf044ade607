// Package memstore implementa los puertos de repositorio en memoria para pruebas.
// RunOrders/RunBatch/RunInvoice simulan una transacción: si fn falla se restaura el estado previo.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users    map[string]entity.User
	products map[string]entity.Product
	clients  map[string]entity.Client
	orders   map[string]entity.Order
	batches  map[string]entity.Batch
	invoices map[string]entity.Invoice

	// Fallos inyectables para probar rollback.
	FailRecordOrder error
	FailAppendEvent error
	FailAdjustStock error

	Users     *UserRepo
	Products  *ProductRepo
	Clients   *ClientRepo
	Orders    *OrderRepo
	Batches   *BatchRepo
	Invoices  *InvoiceRepo
	Analytics *AnalyticsRepo
}

// New crea un almacén vacío.
func New() *Store {
	s := &Store{
		users:    map[string]entity.User{},
		products: map[string]entity.Product{},
		clients:  map[string]entity.Client{},
		orders:   map[string]entity.Order{},
		batches:  map[string]entity.Batch{},
		invoices: map[string]entity.Invoice{},
	}
	s.Users = &UserRepo{s: s}
	s.Products = &ProductRepo{s: s}
	s.Clients = &ClientRepo{s: s}
	s.Orders = &OrderRepo{s: s}
	s.Batches = &BatchRepo{s: s}
	s.Invoices = &InvoiceRepo{s: s}
	s.Analytics = &AnalyticsRepo{s: s}
	return s
}

type snapshot struct {
	users    map[string]entity.User
	products map[string]entity.Product
	clients  map[string]entity.Client
	orders   map[string]entity.Order
	batches  map[string]entity.Batch
	invoices map[string]entity.Invoice
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		users:    make(map[string]entity.User, len(s.users)),
		products: make(map[string]entity.Product, len(s.products)),
		clients:  make(map[string]entity.Client, len(s.clients)),
		orders:   make(map[string]entity.Order, len(s.orders)),
		batches:  make(map[string]entity.Batch, len(s.batches)),
		invoices: make(map[string]entity.Invoice, len(s.invoices)),
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.clients {
		snap.clients[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = cloneOrder(v)
	}
	for k, v := range s.batches {
		snap.batches[k] = cloneBatch(v)
	}
	for k, v := range s.invoices {
		snap.invoices[k] = cloneInvoice(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users, s.products, s.clients = snap.users, snap.products, snap.clients
	s.orders, s.batches, s.invoices = snap.orders, snap.batches, snap.invoices
}

func (s *Store) inTx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunOrders ejecuta fn con los repos de pedidos, productos y clientes.
func (s *Store) RunOrders(ctx context.Context, fn func(orders repository.OrderRepository, products repository.ProductRepository, clients repository.ClientRepository) error) error {
	return s.inTx(func() error { return fn(s.Orders, s.Products, s.Clients) })
}

// RunBatch ejecuta fn con los repos de lotes y productos.
func (s *Store) RunBatch(ctx context.Context, fn func(batches repository.BatchRepository, products repository.ProductRepository) error) error {
	return s.inTx(func() error { return fn(s.Batches, s.Products) })
}

// RunInvoice ejecuta fn con el repo de facturas.
func (s *Store) RunInvoice(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error {
	return s.inTx(func() error { return fn(s.Invoices) })
}

func cloneOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	o.Events = append([]entity.TrackingEvent(nil), o.Events...)
	return o
}

func cloneBatch(b entity.Batch) entity.Batch {
	if b.QualityChecks != nil {
		qc := *b.QualityChecks
		b.QualityChecks = &qc
	}
	return b
}

func cloneInvoice(i entity.Invoice) entity.Invoice {
	i.Items = append([]entity.InvoiceItem(nil), i.Items...)
	i.Payments = append([]entity.Payment(nil), i.Payments...)
	return i
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortNewestFirst[T any](list []*T, created func(*T) int64, id func(*T) string) {
	sort.Slice(list, func(i, j int) bool {
		ci, cj := created(list[i]), created(list[j])
		if ci != cj {
			return ci > cj
		}
		return id(list[i]) < id(list[j])
	})
}

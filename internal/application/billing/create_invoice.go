package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	billingdomain "github.com/jhoicas/lacteos-api/internal/domain/billing"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

// DefaultDueDays plazo de pago cuando no se indica vencimiento.
const DefaultDueDays = 30

// InvoiceUseCase emite facturas a partir de pedidos y registra abonos.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.OrderRepository
	tx          TxRunner
	numbers     NumberGenerator
	log         *logger.Logger
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	tx TxRunner,
	numbers NumberGenerator,
	log *logger.Logger,
) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		tx:          tx,
		numbers:     numbers,
		log:         log.Component("invoices"),
		now:         time.Now,
	}
}

// SetClock reemplaza el reloj (pruebas).
func (uc *InvoiceUseCase) SetClock(now func() time.Time) { uc.now = now }

// CreateInvoice genera la factura en estado draft copiando líneas y montos del pedido.
// Un pedido cancelado no se factura; un pedido solo tiene una factura.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	// 1. Pedido
	order, err := uc.orderRepo.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, in.OrderID)
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: no se factura un pedido cancelado", domain.ErrOrderCancelled)
	}
	existing, err := uc.invoiceRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el pedido %s ya tiene la factura %s", domain.ErrDuplicate, order.OrderNumber, existing.InvoiceNumber)
	}

	// 2. Vencimiento
	now := uc.now()
	due := now.AddDate(0, 0, DefaultDueDays)
	if d, ok, err := dto.ParseDate(in.DueDate); err != nil {
		return nil, err
	} else if ok {
		if d.Before(now.Truncate(24 * time.Hour)) {
			return nil, fmt.Errorf("%w: el vencimiento no puede ser anterior a la emisión", domain.ErrInvalidInput)
		}
		due = d
	}

	// 3. Cabecera y líneas
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: uc.numbers.Next("INV"),
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		ClientID:      order.ClientID,
		ClientName:    order.ClientName,
		IssueDate:     now,
		DueDate:       due,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Discount:      order.Discount,
		Total:         order.Total,
		AmountPaid:    decimal.Zero,
		Balance:       order.Total,
		Status:        entity.InvoiceStatusDraft,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, it := range order.Items {
		inv.Items = append(inv.Items, entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			ProductID:   it.ProductID,
			Description: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}

	// 4. Persistir (la unicidad por pedido la garantiza también el almacén)
	if err := uc.invoiceRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el pedido %s ya tiene factura", domain.ErrDuplicate, order.OrderNumber)
		}
		return nil, err
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("invoice_number", inv.InvoiceNumber).Str("order_id", order.ID).Msg("factura emitida")
	return ToInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) load(ctx context.Context, repo repository.InvoiceRepository, id string) (*entity.Invoice, error) {
	inv, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	return inv, nil
}

// GetInvoice devuelve una factura con sus abonos.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, uc.invoiceRepo, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// ListInvoices lista por estado y cliente.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, in dto.InvoiceFilterRequest) (*dto.InvoiceListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{
		Status: in.Status, ClientID: in.ClientID, Limit: in.Limit, Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *ToInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// UpdateInvoice cambios manuales: notas, vencimiento y estado (sent / cancelled).
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	var dueDate *time.Time
	if in.DueDate != nil {
		d, ok, err := dto.ParseDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		if ok {
			dueDate = &d
		}
	}

	// Mismo bloqueo de fila que AddPayment: amount_paid y balance se reescriben desde la copia leída.
	var out *entity.Invoice
	err := uc.tx.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		inv, err := uc.load(ctx, invoiceRepo, id)
		if err != nil {
			return err
		}
		if inv.Status == entity.InvoiceStatusCancelled {
			return fmt.Errorf("%w: factura cancelada", domain.ErrConflict)
		}
		if in.Notes != nil {
			inv.Notes = *in.Notes
		}
		if dueDate != nil {
			if dueDate.Before(inv.IssueDate.Truncate(24 * time.Hour)) {
				return fmt.Errorf("%w: el vencimiento no puede ser anterior a la emisión", domain.ErrInvalidInput)
			}
			inv.DueDate = *dueDate
		}
		if in.Status != nil && *in.Status != inv.Status {
			if err := billingdomain.ValidateManualStatus(inv, *in.Status); err != nil {
				return err
			}
			inv.Status = *in.Status
		}
		inv.UpdatedAt = uc.now()
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(out), nil
}

// AddPayment registra un abono y recalcula saldo y estado en una sola transacción.
func (uc *InvoiceUseCase) AddPayment(ctx context.Context, id, userID string, in dto.AddPaymentRequest) (*dto.InvoiceResponse, error) {
	paidAt := uc.now()
	if d, ok, err := dto.ParseDate(in.PaidAt); err != nil {
		return nil, err
	} else if ok {
		paidAt = d
	}

	var out *entity.Invoice
	err := uc.tx.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		inv, err := uc.load(ctx, invoiceRepo, id)
		if err != nil {
			return err
		}
		if err := billingdomain.ApplyPayment(inv, in.Amount); err != nil {
			return err
		}
		p := entity.Payment{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			Amount:    in.Amount,
			Method:    in.Method,
			Reference: in.Reference,
			PaidAt:    paidAt,
			CreatedBy: userID,
		}
		if err := invoiceRepo.AddPayment(ctx, &p); err != nil {
			return err
		}
		inv.UpdatedAt = uc.now()
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		inv.Payments = append(inv.Payments, p)
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("invoice_id", out.ID).Str("amount", in.Amount.StringFixed(2)).Str("status", out.Status).Msg("abono registrado")
	return ToInvoiceResponse(out), nil
}

// MarkOverdue marca como vencidas las facturas con saldo y fecha de pago superada.
func (uc *InvoiceUseCase) MarkOverdue(ctx context.Context) (int64, error) {
	n, err := uc.invoiceRepo.MarkOverdue(ctx, uc.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.log.Info().Int64("invoices", n).Msg("facturas marcadas como vencidas")
	}
	return n, nil
}

// ToInvoiceResponse convierte la entidad en DTO.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		OrderID:       inv.OrderID,
		OrderNumber:   inv.OrderNumber,
		ClientID:      inv.ClientID,
		ClientName:    inv.ClientName,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Items:         make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Discount:      inv.Discount,
		Total:         inv.Total,
		AmountPaid:    inv.AmountPaid,
		Balance:       inv.Balance,
		Status:        inv.Status,
		Notes:         inv.Notes,
		Payments:      make([]dto.PaymentResponse, 0, len(inv.Payments)),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	for _, it := range inv.Items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	for _, p := range inv.Payments {
		out.Payments = append(out.Payments, dto.PaymentResponse{
			ID:        p.ID,
			Amount:    p.Amount,
			Method:    p.Method,
			Reference: p.Reference,
			PaidAt:    p.PaidAt,
		})
	}
	return out
}

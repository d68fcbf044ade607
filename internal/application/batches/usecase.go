// Package batches lotes de producción: alta, transiciones con guardia, control de calidad
// e ingreso a inventario al completar.
package batches

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/production"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

// TxRunner ejecuta fn en una transacción con repos de lotes y productos.
type TxRunner interface {
	RunBatch(ctx context.Context, fn func(batchRepo repository.BatchRepository, productRepo repository.ProductRepository) error) error
}

// NumberGenerator genera números BATCH-<n>.
type NumberGenerator interface {
	Next(prefix string) string
}

// UseCase casos de uso de lotes.
type UseCase struct {
	batchRepo   repository.BatchRepository
	productRepo repository.ProductRepository
	tx          TxRunner
	numbers     NumberGenerator
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(batchRepo repository.BatchRepository, productRepo repository.ProductRepository, tx TxRunner, numbers NumberGenerator, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		batchRepo:   batchRepo,
		productRepo: productRepo,
		tx:          tx,
		numbers:     numbers,
		log:         log.Component("batches"),
		now:         time.Now,
	}
}

// Create alta de lote en estado pending. Si trae productId, el producto debe existir.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if in.ProductID != "" {
		p, err := uc.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}
	}
	start, ok, err := dto.ParseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	batch := &entity.Batch{
		ID:          uuid.New().String(),
		BatchNumber: uc.numbers.Next("BATCH"),
		ProductType: in.ProductType,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Status:      entity.BatchStatusPending,
		Notes:       in.Notes,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if ok {
		batch.StartDate = &start
	}
	if err := uc.batchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}
	return ToBatchResponse(batch), nil
}

func (uc *UseCase) load(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return b, nil
}

func isFinal(status string) bool {
	switch status {
	case entity.BatchStatusCompleted, entity.BatchStatusFailed, entity.BatchStatusCancelled:
		return true
	}
	return false
}

// Get devuelve un lote.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.BatchResponse, error) {
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBatchResponse(b), nil
}

// Update edición parcial; un lote finalizado no se modifica.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if isFinal(b.Status) {
		return nil, fmt.Errorf("%w: lote en estado %s", domain.ErrConflict, b.Status)
	}
	if in.ProductType != nil {
		b.ProductType = *in.ProductType
	}
	if in.Quantity != nil {
		b.Quantity = *in.Quantity
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}
	b.UpdatedAt = uc.now()
	if err := uc.batchRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return ToBatchResponse(b), nil
}

// UpdateStatus aplica la transición. in-progress fija startDate si falta; los estados finales fijan endDate.
// Completar un lote ligado a un producto suma Quantity a su stock en la misma transacción.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateBatchStatusRequest) (*dto.BatchResponse, error) {
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := production.ValidateBatchTransition(b.Status, in.Status); err != nil {
		return nil, err
	}

	now := uc.now()
	var start, end *time.Time
	if in.Status == entity.BatchStatusInProgress && b.StartDate == nil {
		start = &now
	}
	if isFinal(in.Status) {
		end = &now
	}
	from := b.Status
	err = uc.tx.RunBatch(ctx, func(batchRepo repository.BatchRepository, productRepo repository.ProductRepository) error {
		ok, err := batchRepo.UpdateStatus(ctx, b.ID, from, in.Status, start, end, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: el lote cambió de estado, reintente", domain.ErrConflict)
		}
		if in.Status != entity.BatchStatusCompleted || b.ProductID == "" {
			return nil
		}
		applied, err := productRepo.AdjustStock(ctx, b.ProductID, b.Quantity)
		if err != nil {
			return err
		}
		if !applied {
			return fmt.Errorf("%w: producto %s del lote", domain.ErrNotFound, b.ProductID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.Status = in.Status
	if start != nil {
		b.StartDate = start
	}
	if end != nil {
		b.EndDate = end
	}
	b.UpdatedAt = now
	ev := uc.log.Info().Str("batch_id", b.ID).Str("from", from).Str("to", b.Status)
	if b.Status == entity.BatchStatusCompleted && b.ProductID != "" {
		ev = ev.Str("product_id", b.ProductID).Int("quantity", b.Quantity)
	}
	ev.Msg("estado de lote actualizado")
	return ToBatchResponse(b), nil
}

// RecordQualityCheck registra mediciones y calcula si el lote pasa el control.
func (uc *UseCase) RecordQualityCheck(ctx context.Context, id, userID string, in dto.QualityCheckRequest) (*dto.BatchResponse, error) {
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == entity.BatchStatusCancelled {
		return nil, fmt.Errorf("%w: lote cancelado", domain.ErrConflict)
	}
	qc := &entity.QualityChecks{
		Temperature: in.Temperature,
		PH:          in.PH,
		Bacteria:    in.Bacteria,
		CheckedAt:   uc.now(),
		CheckedBy:   userID,
	}
	production.EvaluateQuality(qc)
	b.QualityChecks = qc
	b.UpdatedAt = qc.CheckedAt
	if err := uc.batchRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	if !qc.Passed {
		uc.log.Warn().Str("batch_id", b.ID).Str("batch_number", b.BatchNumber).Msg("lote no pasó control de calidad")
	}
	return ToBatchResponse(b), nil
}

// List lista lotes por estado.
func (uc *UseCase) List(ctx context.Context, in dto.BatchFilterRequest) (*dto.BatchListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.batchRepo.List(ctx, repository.BatchFilter{Status: in.Status, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *ToBatchResponse(b))
	}
	return &dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ToBatchResponse convierte la entidad en DTO.
func ToBatchResponse(b *entity.Batch) *dto.BatchResponse {
	if b == nil {
		return nil
	}
	out := &dto.BatchResponse{
		ID:          b.ID,
		BatchNumber: b.BatchNumber,
		ProductType: b.ProductType,
		ProductID:   b.ProductID,
		Quantity:    b.Quantity,
		Unit:        b.Unit,
		Status:      b.Status,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Notes:       b.Notes,
		CreatedBy:   b.CreatedBy,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if qc := b.QualityChecks; qc != nil {
		out.QualityChecks = &dto.QualityChecksResponse{
			Temperature: qc.Temperature,
			PH:          qc.PH,
			Bacteria:    qc.Bacteria,
			Passed:      qc.Passed,
			CheckedAt:   qc.CheckedAt,
			CheckedBy:   qc.CheckedBy,
		}
	}
	return out
}

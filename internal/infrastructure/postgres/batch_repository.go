package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo persistencia de lotes. quality_checks se guarda como JSONB.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, batch_number, product_type, product_id, quantity, unit, status, start_date, end_date,
	quality_checks, notes, created_by, created_at, updated_at`

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	var qc []byte
	if err := row.Scan(&b.ID, &b.BatchNumber, &b.ProductType, &b.ProductID, &b.Quantity, &b.Unit, &b.Status,
		&b.StartDate, &b.EndDate, &qc, &b.Notes, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if len(qc) > 0 {
		b.QualityChecks = &entity.QualityChecks{}
		if err := json.Unmarshal(qc, b.QualityChecks); err != nil {
			return nil, fmt.Errorf("decode quality checks: %w", err)
		}
	}
	return &b, nil
}

func encodeQualityChecks(qc *entity.QualityChecks) ([]byte, error) {
	if qc == nil {
		return nil, nil
	}
	return json.Marshal(qc)
}

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	qc, err := encodeQualityChecks(b.QualityChecks)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO batches (`+batchColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.ID, b.BatchNumber, b.ProductType, b.ProductID, b.Quantity, b.Unit, b.Status, b.StartDate, b.EndDate,
		qc, b.Notes, b.CreatedBy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// Update persiste campos editables y control de calidad (no el estado).
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	qc, err := encodeQualityChecks(b.QualityChecks)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE batches SET product_type = $2, quantity = $3, notes = $4, quality_checks = $5, updated_at = $6
		WHERE id = $1`,
		b.ID, b.ProductType, b.Quantity, b.Notes, qc, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus compare-and-set del estado; fechas nil se conservan.
func (r *BatchRepo) UpdateStatus(ctx context.Context, id, from, to string, startDate, endDate *time.Time, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE batches SET status = $3, start_date = COALESCE($4, start_date), end_date = COALESCE($5, end_date), updated_at = $6
		WHERE id = $1 AND status = $2`,
		id, from, to, startDate, endDate, at,
	)
	if err != nil {
		return false, fmt.Errorf("update batch status: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// List lista lotes por estado.
func (r *BatchRepo) List(ctx context.Context, f repository.BatchFilter) ([]*entity.Batch, int, error) {
	var w where
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM batches`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count batches: %w", err)
	}
	query := `SELECT ` + batchColumns + ` FROM batches` + w.sql() +
		` ORDER BY created_at DESC LIMIT ` + w.next(f.Limit) + ` OFFSET ` + w.next(f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}

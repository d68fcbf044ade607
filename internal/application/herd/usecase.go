// Package herd casos de uso del hato: vacas, ordeños, sanidad y alimentación.
package herd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

// UseCase casos de uso del hato sobre su almacén independiente.
type UseCase struct {
	repo repository.HerdRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.HerdRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// SetClock reemplaza el reloj (pruebas).
func (uc *UseCase) SetClock(now func() time.Time) { uc.now = now }

// Stats delega en el almacén; lo consume el tablero.
func (uc *UseCase) Stats(ctx context.Context, dayStart time.Time) (int, decimal.Decimal, error) {
	return uc.repo.Stats(ctx, dayStart)
}

func requiredDate(s, field string) (time.Time, error) {
	d, ok, err := dto.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s requerido", domain.ErrInvalidInput, field)
	}
	return d, nil
}

func optionalDate(s string) (*time.Time, error) {
	d, ok, err := dto.ParseDate(s)
	if err != nil || !ok {
		return nil, err
	}
	return &d, nil
}

func (uc *UseCase) requireCow(ctx context.Context, id string) (*entity.Cow, error) {
	cow, err := uc.repo.GetCow(ctx, id)
	if err != nil {
		return nil, err
	}
	if cow == nil {
		return nil, fmt.Errorf("%w: vaca %s", domain.ErrNotFound, id)
	}
	return cow, nil
}

// ── Vacas ─────────────────────────────────────────────────────────────────────

// CreateCow registra una vaca; el arete es único.
func (uc *UseCase) CreateCow(ctx context.Context, in dto.CreateCowRequest) (*dto.CowResponse, error) {
	birth, err := optionalDate(in.BirthDate)
	if err != nil {
		return nil, err
	}
	if birth != nil && birth.After(uc.now()) {
		return nil, fmt.Errorf("%w: fecha de nacimiento futura", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.CowStatusActive
	}
	now := uc.now()
	cow := &entity.Cow{
		ID:              uuid.New().String(),
		TagNumber:       strings.ToUpper(strings.TrimSpace(in.TagNumber)),
		Name:            in.Name,
		Breed:           in.Breed,
		BirthDate:       birth,
		Status:          status,
		LactationNumber: in.LactationNumber,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.CreateCow(ctx, cow); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: arete %s ya registrado", domain.ErrDuplicate, cow.TagNumber)
		}
		return nil, err
	}
	return toCowResponse(cow), nil
}

// GetCow devuelve una vaca.
func (uc *UseCase) GetCow(ctx context.Context, id string) (*dto.CowResponse, error) {
	cow, err := uc.requireCow(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCowResponse(cow), nil
}

// UpdateCow actualización parcial.
func (uc *UseCase) UpdateCow(ctx context.Context, id string, in dto.UpdateCowRequest) (*dto.CowResponse, error) {
	cow, err := uc.requireCow(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		cow.Name = *in.Name
	}
	if in.Breed != nil {
		cow.Breed = *in.Breed
	}
	if in.Status != nil {
		cow.Status = *in.Status
	}
	if in.LactationNumber != nil {
		cow.LactationNumber = *in.LactationNumber
	}
	if in.Notes != nil {
		cow.Notes = *in.Notes
	}
	cow.UpdatedAt = uc.now()
	if err := uc.repo.UpdateCow(ctx, cow); err != nil {
		return nil, err
	}
	return toCowResponse(cow), nil
}

// DeleteCow elimina una vaca.
func (uc *UseCase) DeleteCow(ctx context.Context, id string) error {
	if _, err := uc.requireCow(ctx, id); err != nil {
		return err
	}
	return uc.repo.DeleteCow(ctx, id)
}

// ListCows listado paginado.
func (uc *UseCase) ListCows(ctx context.Context, in dto.CowFilterRequest) (*dto.CowListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.ListCows(ctx, repository.CowFilter{Status: in.Status, Search: in.Search, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CowResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCowResponse(c))
	}
	return &dto.CowListResponse{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total}}, nil
}

// ── Registros ─────────────────────────────────────────────────────────────────

func (uc *UseCase) recordFilter(in dto.HerdRecordFilterRequest) (repository.HerdRecordFilter, error) {
	in.DefaultPage()
	f := repository.HerdRecordFilter{CowID: in.CowID, Limit: in.Limit, Offset: in.Offset}
	from, err := optionalDate(in.From)
	if err != nil {
		return f, err
	}
	to, err := optionalDate(in.To)
	if err != nil {
		return f, err
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}
	f.From, f.To = from, to
	return f, nil
}

// CreateMilkRecord registra un ordeño; los litros deben ser positivos.
func (uc *UseCase) CreateMilkRecord(ctx context.Context, userID string, in dto.CreateMilkRecordRequest) (*dto.MilkRecordResponse, error) {
	if !in.Liters.IsPositive() {
		return nil, fmt.Errorf("%w: liters debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.FatPct.IsNegative() || in.ProteinPct.IsNegative() {
		return nil, fmt.Errorf("%w: porcentajes negativos", domain.ErrInvalidInput)
	}
	date, err := requiredDate(in.Date, "date")
	if err != nil {
		return nil, err
	}
	cow, err := uc.requireCow(ctx, in.CowID)
	if err != nil {
		return nil, err
	}
	if cow.Status == entity.CowStatusSold || cow.Status == entity.CowStatusDeceased {
		return nil, fmt.Errorf("%w: la vaca %s no está en el hato", domain.ErrConflict, cow.TagNumber)
	}
	rec := &entity.MilkRecord{
		ID:         uuid.New().String(),
		CowID:      cow.ID,
		Date:       date,
		Shift:      in.Shift,
		Liters:     in.Liters.Round(2),
		FatPct:     in.FatPct.Round(2),
		ProteinPct: in.ProteinPct.Round(2),
		RecordedBy: userID,
		CreatedAt:  uc.now(),
	}
	if err := uc.repo.CreateMilkRecord(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ya hay un ordeño %s para esa vaca y fecha", domain.ErrDuplicate, in.Shift)
		}
		return nil, err
	}
	return toMilkResponse(rec), nil
}

// ListMilkRecords ordeños por vaca y rango (to inclusivo).
func (uc *UseCase) ListMilkRecords(ctx context.Context, in dto.HerdRecordFilterRequest) ([]dto.MilkRecordResponse, error) {
	f, err := uc.recordFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListMilkRecords(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MilkRecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toMilkResponse(r))
	}
	return out, nil
}

// MilkSummary producción diaria en [from, to]. Sin fechas: últimos 7 días.
func (uc *UseCase) MilkSummary(ctx context.Context, fromS, toS string) ([]dto.MilkSummaryDTO, error) {
	now := uc.now().UTC()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d, ok, err := dto.ParseDate(toS); err != nil {
		return nil, err
	} else if ok {
		to = d
	}
	from := to.AddDate(0, 0, -6)
	if d, ok, err := dto.ParseDate(fromS); err != nil {
		return nil, err
	} else if ok {
		from = d
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	rows, err := uc.repo.MilkSummary(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	out := make([]dto.MilkSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MilkSummaryDTO{
			Date:        r.Date.Format("2006-01-02"),
			TotalLiters: r.TotalLiters.Round(2),
			Records:     r.Records,
			Cows:        r.Cows,
		})
	}
	return out, nil
}

// CreateHealthRecord registra un evento sanitario.
func (uc *UseCase) CreateHealthRecord(ctx context.Context, in dto.CreateHealthRecordRequest) (*dto.HealthRecordResponse, error) {
	if in.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: costo negativo", domain.ErrInvalidInput)
	}
	date, err := requiredDate(in.Date, "date")
	if err != nil {
		return nil, err
	}
	next, err := optionalDate(in.NextCheckDate)
	if err != nil {
		return nil, err
	}
	if next != nil && next.Before(date) {
		return nil, fmt.Errorf("%w: nextCheckDate anterior a date", domain.ErrInvalidInput)
	}
	if _, err := uc.requireCow(ctx, in.CowID); err != nil {
		return nil, err
	}
	now := uc.now()
	rec := &entity.HealthRecord{
		ID:            uuid.New().String(),
		CowID:         in.CowID,
		Date:          date,
		Type:          in.Type,
		Diagnosis:     in.Diagnosis,
		Treatment:     in.Treatment,
		Veterinarian:  in.Veterinarian,
		Cost:          in.Cost.Round(2),
		NextCheckDate: next,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.CreateHealthRecord(ctx, rec); err != nil {
		return nil, err
	}
	return toHealthResponse(rec), nil
}

// UpdateHealthRecord actualización parcial.
func (uc *UseCase) UpdateHealthRecord(ctx context.Context, id string, in dto.UpdateHealthRecordRequest) (*dto.HealthRecordResponse, error) {
	rec, err := uc.repo.GetHealthRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: registro sanitario %s", domain.ErrNotFound, id)
	}
	if in.Diagnosis != nil {
		rec.Diagnosis = *in.Diagnosis
	}
	if in.Treatment != nil {
		rec.Treatment = *in.Treatment
	}
	if in.Veterinarian != nil {
		rec.Veterinarian = *in.Veterinarian
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: costo negativo", domain.ErrInvalidInput)
		}
		rec.Cost = in.Cost.Round(2)
	}
	if in.NextCheckDate != nil {
		next, err := optionalDate(*in.NextCheckDate)
		if err != nil {
			return nil, err
		}
		rec.NextCheckDate = next
	}
	rec.UpdatedAt = uc.now()
	if err := uc.repo.UpdateHealthRecord(ctx, rec); err != nil {
		return nil, err
	}
	return toHealthResponse(rec), nil
}

// ListHealthRecords eventos sanitarios por vaca y rango.
func (uc *UseCase) ListHealthRecords(ctx context.Context, in dto.HerdRecordFilterRequest) ([]dto.HealthRecordResponse, error) {
	f, err := uc.recordFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListHealthRecords(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HealthRecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toHealthResponse(r))
	}
	return out, nil
}

// CreateFeedRecord registra alimento; CowID vacío aplica a todo el hato.
func (uc *UseCase) CreateFeedRecord(ctx context.Context, in dto.CreateFeedRecordRequest) (*dto.FeedRecordResponse, error) {
	if !in.QuantityKg.IsPositive() {
		return nil, fmt.Errorf("%w: quantityKg debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: costo negativo", domain.ErrInvalidInput)
	}
	date, err := requiredDate(in.Date, "date")
	if err != nil {
		return nil, err
	}
	if in.CowID != "" {
		if _, err := uc.requireCow(ctx, in.CowID); err != nil {
			return nil, err
		}
	}
	rec := &entity.FeedRecord{
		ID:         uuid.New().String(),
		CowID:      in.CowID,
		Date:       date,
		FeedType:   in.FeedType,
		QuantityKg: in.QuantityKg.Round(2),
		Cost:       in.Cost.Round(2),
		CreatedAt:  uc.now(),
	}
	if err := uc.repo.CreateFeedRecord(ctx, rec); err != nil {
		return nil, err
	}
	return toFeedResponse(rec), nil
}

// ListFeedRecords suministros por vaca y rango.
func (uc *UseCase) ListFeedRecords(ctx context.Context, in dto.HerdRecordFilterRequest) ([]dto.FeedRecordResponse, error) {
	f, err := uc.recordFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListFeedRecords(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeedRecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toFeedResponse(r))
	}
	return out, nil
}

func toCowResponse(c *entity.Cow) *dto.CowResponse {
	return &dto.CowResponse{
		ID:              c.ID,
		TagNumber:       c.TagNumber,
		Name:            c.Name,
		Breed:           c.Breed,
		BirthDate:       c.BirthDate,
		Status:          c.Status,
		LactationNumber: c.LactationNumber,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toMilkResponse(r *entity.MilkRecord) *dto.MilkRecordResponse {
	return &dto.MilkRecordResponse{
		ID:         r.ID,
		CowID:      r.CowID,
		Date:       r.Date,
		Shift:      r.Shift,
		Liters:     r.Liters,
		FatPct:     r.FatPct,
		ProteinPct: r.ProteinPct,
		RecordedBy: r.RecordedBy,
	}
}

func toHealthResponse(r *entity.HealthRecord) *dto.HealthRecordResponse {
	return &dto.HealthRecordResponse{
		ID:            r.ID,
		CowID:         r.CowID,
		Date:          r.Date,
		Type:          r.Type,
		Diagnosis:     r.Diagnosis,
		Treatment:     r.Treatment,
		Veterinarian:  r.Veterinarian,
		Cost:          r.Cost,
		NextCheckDate: r.NextCheckDate,
	}
}

func toFeedResponse(r *entity.FeedRecord) *dto.FeedRecordResponse {
	return &dto.FeedRecordResponse{
		ID:         r.ID,
		CowID:      r.CowID,
		Date:       r.Date,
		FeedType:   r.FeedType,
		QuantityKg: r.QuantityKg,
		Cost:       r.Cost,
	}
}

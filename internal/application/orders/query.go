package orders

import (
	"context"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

// GetOrder devuelve el pedido con líneas e historial.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// Tracking estado actual e historial de eventos.
func (uc *UseCase) Tracking(ctx context.Context, id string) (*dto.TrackingResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	tr := toTracking(order)
	return &tr, nil
}

// ListOrders lista con filtros. To es inclusivo (todo el día indicado).
func (uc *UseCase) ListOrders(ctx context.Context, in dto.OrderFilterRequest) (*dto.OrderListResponse, error) {
	in.DefaultPage()
	f := repository.OrderFilter{
		Status:   in.Status,
		ClientID: in.ClientID,
		DriverID: in.DriverID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	from, ok, err := dto.ParseDate(in.From)
	if err != nil {
		return nil, err
	}
	if ok {
		f.From = &from
	}
	to, ok, err := dto.ParseDate(in.To)
	if err != nil {
		return nil, err
	}
	if ok {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	list, total, err := uc.orderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

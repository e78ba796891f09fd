package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// MovementQueryUseCase lectura del libro de movimientos. El registro vive en inventory.RegisterMovementUseCase.
type MovementQueryUseCase struct {
	repo repository.StockMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(repo repository.StockMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{repo: repo}
}

// List devuelve los movimientos filtrados, más recientes primero.
// to es inclusivo: incluye todo el día indicado (UTC).
func (uc *MovementQueryUseCase) List(ctx context.Context, in dto.MovementListRequest) ([]dto.MovementResponse, error) {
	in.DefaultPage()
	filter := entity.MovementFilter{
		Type:      in.Type,
		ProductID: in.ProductID,
		ClientID:  in.ClientID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.From != "" {
		from, err := time.Parse(dateLayout, in.From)
		if err != nil {
			return nil, domain.NewValidationError("from", "datetime", "formato esperado YYYY-MM-DD")
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := time.Parse(dateLayout, in.To)
		if err != nil {
			return nil, domain.NewValidationError("to", "datetime", "formato esperado YYYY-MM-DD")
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, domain.NewValidationError("from", "ltefield", "from debe ser anterior o igual a to")
	}
	movements, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementFromDetail(m))
	}
	return out, nil
}

// GetByID devuelve un movimiento con producto, cliente y transporte resumidos.
func (uc *MovementQueryUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.MovementFromDetail(m)
	return &out, nil
}

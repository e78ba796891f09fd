package inventory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
// defaultResponsible se usa cuando el request no trae responsable (usuario autenticado).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, defaultResponsible string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInputDTO{
		Type:          in.Type,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		Location:      in.Location,
		Responsible:   in.Responsible,
		TransportType: in.TransportType,
		ClientID:      in.ClientID,
		Description:   in.Description,
	}
	if input.Responsible == "" {
		input.Responsible = defaultResponsible
	}
	return uc.RegisterMovement(ctx, input)
}

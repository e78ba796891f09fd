package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockflow-api/internal/application/audit"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas de stock en una sola transacción:
// bloqueo de fila del producto (SELECT FOR UPDATE), movimiento, transporte, totales del cliente y auditoría.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	audit    *audit.Logger
	cache    AnalyticsInvalidator
	log      zerolog.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. cache puede ser nil.
func NewRegisterMovementUseCase(txRunner TxRunner, auditLog *audit.Logger, cache AnalyticsInvalidator, log zerolog.Logger) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		audit:    auditLog,
		cache:    invalidatorOrNoop(cache),
		log:      log,
		now:      time.Now,
	}
}

// MovementInputDTO entrada para registrar un movimiento de stock.
type MovementInputDTO struct {
	Type          string
	ProductID     string
	Quantity      int
	Location      string
	Responsible   string
	TransportType string
	ClientID      *string
	Description   string
}

func (in MovementInputDTO) validate() error {
	var fields []domain.FieldError
	if in.Type != entity.MovementTypeEntry && in.Type != entity.MovementTypeExit {
		fields = append(fields, domain.FieldError{Field: "type", Rule: "oneof", Message: "debe ser entry o exit"})
	}
	if in.ProductID == "" {
		fields = append(fields, domain.FieldError{Field: "product_id", Rule: "required", Message: "es obligatorio"})
	}
	if in.Quantity < 1 {
		fields = append(fields, domain.FieldError{Field: "quantity", Rule: "min", Message: "debe ser al menos 1"})
	}
	if strings.TrimSpace(in.Responsible) == "" {
		fields = append(fields, domain.FieldError{Field: "responsible", Rule: "required", Message: "es obligatorio"})
	}
	switch in.TransportType {
	case entity.TransportTypeSupplier, entity.TransportTypeClient, entity.TransportTypeInternal, entity.TransportTypeNone:
	default:
		fields = append(fields, domain.FieldError{Field: "transport_type", Rule: "oneof", Message: "debe ser supplier, client, internal o none"})
	}
	clientExit := in.Type == entity.MovementTypeExit && in.ClientID != nil
	if strings.TrimSpace(in.Location) == "" && !clientExit {
		fields = append(fields, domain.FieldError{Field: "location", Rule: "required", Message: "es obligatorio"})
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// RegisterMovement aplica el movimiento y devuelve el movimiento con sus resúmenes.
// Una salida mayor que el stock deja la cantidad en 0.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*dto.MovementResponse, error) {
	if input.ClientID != nil && *input.ClientID == "" {
		input.ClientID = nil
	}
	input.Responsible = strings.TrimSpace(input.Responsible)
	input.Location = strings.TrimSpace(input.Location)
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	var out dto.MovementResponse

	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		// Bloquea la fila del producto hasta el Commit
		product, err := repos.Products.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		var client *entity.Client
		if input.ClientID != nil {
			client, err = repos.Clients.GetByID(ctx, *input.ClientID)
			if err != nil {
				return err
			}
			if client == nil {
				return domain.ErrNotFound
			}
		}

		product.Quantity = inventory.ApplyMovement(product.Quantity, input.Type, input.Quantity)
		product.UpdatedAt = now
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}

		location := input.Location
		if input.Type == entity.MovementTypeExit && client != nil {
			location = client.Name
		}

		mov := &entity.StockMovement{
			ID:              uuid.New().String(),
			Type:            input.Type,
			ProductID:       product.ID,
			Quantity:        input.Quantity,
			Location:        location,
			Responsible:     input.Responsible,
			TransportType:   input.TransportType,
			Description:     input.Description,
			PriceAtMovement: product.Price,
			CurrentStock:    product.Quantity,
			ClientID:        input.ClientID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}

		if inventory.RequiresTransport(input.TransportType) {
			transport := inventory.TransportForMovement(mov, input.Location, now)
			transport.ID = uuid.New().String()
			if err := repos.Transports.Create(ctx, transport); err != nil {
				return err
			}
			transportID := transport.ID
			if err := repos.Movements.SetTransport(ctx, mov.ID, &transportID); err != nil {
				return err
			}
		}

		if client != nil && input.Type == entity.MovementTypeExit {
			if err := repos.Clients.RecordPurchase(ctx, client.ID, input.Quantity, now); err != nil {
				return err
			}
		}

		action := entity.LogActionStockExit
		if mov.IsEntry() {
			action = entity.LogActionStockEntry
		}
		if err := uc.audit.Record(ctx, repos.Logs, audit.Entry{
			Action:      action,
			ProductID:   product.ID,
			ProductName: product.Name,
			Details:     audit.StockDetails(input.Type, input.Quantity, input.TransportType, input.Responsible),
		}); err != nil {
			return err
		}

		detail, err := repos.Movements.GetByID(ctx, mov.ID)
		if err != nil {
			return err
		}
		if detail == nil {
			return domain.ErrNotFound
		}
		out = dto.MovementFromDetail(detail)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	uc.log.Info().
		Str("movement_id", out.ID).
		Str("type", out.Type).
		Str("product_id", out.Product.ID).
		Int("quantity", out.Quantity).
		Int("current_stock", out.CurrentStock).
		Msg("movimiento registrado")
	return &out, nil
}

package usecase

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/application/audit"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// RecentLogsLimit cantidad de entradas devueltas por GET /api/logs.
const RecentLogsLimit = 100

// LogUseCase lectura y escritura manual del registro de auditoría.
type LogUseCase struct {
	repo  repository.LogRepository
	audit *audit.Logger
}

// NewLogUseCase construye el caso de uso.
func NewLogUseCase(repo repository.LogRepository, auditLog *audit.Logger) *LogUseCase {
	return &LogUseCase{repo: repo, audit: auditLog}
}

// ListRecent devuelve las últimas entradas por timestamp descendente.
func (uc *LogUseCase) ListRecent(ctx context.Context) ([]dto.LogResponse, error) {
	logs, err := uc.repo.ListRecent(ctx, RecentLogsLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.LogFromEntity(l))
	}
	return out, nil
}

// Create agrega una entrada validando la acción.
func (uc *LogUseCase) Create(ctx context.Context, in dto.CreateLogRequest) error {
	if !entity.IsValidLogAction(in.Action) {
		return domain.NewValidationError("action", "oneof", "acción desconocida")
	}
	e := audit.Entry{Action: in.Action, ProductName: in.ProductName, Details: in.Details}
	if in.ProductID != nil {
		e.ProductID = *in.ProductID
	}
	return uc.audit.Record(ctx, uc.repo, e)
}

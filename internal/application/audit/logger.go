// Package audit escribe el registro de auditoría de productos y stock.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// Entry datos de una entrada de auditoría; ID y Timestamp los asigna el Logger.
type Entry struct {
	Action      string
	ProductID   string
	ProductName string
	Details     string
}

// Logger agrega entradas al registro de auditoría.
type Logger struct {
	logs repository.LogRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewLogger construye el Logger. logs es el repositorio usado fuera de transacciones.
func NewLogger(logs repository.LogRepository, log zerolog.Logger) *Logger {
	return &Logger{logs: logs, log: log, now: time.Now}
}

// Record escribe la entrada con el repositorio indicado (el de la transacción en curso).
func (l *Logger) Record(ctx context.Context, repo repository.LogRepository, e Entry) error {
	entry := &entity.Log{
		ID:          uuid.New().String(),
		Action:      e.Action,
		ProductName: e.ProductName,
		Details:     e.Details,
		Timestamp:   l.now().UTC(),
	}
	if e.ProductID != "" {
		id := e.ProductID
		entry.ProductID = &id
	}
	if err := repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("audit %s: %w", e.Action, err)
	}
	return nil
}

// RecordBestEffort escribe fuera de transacción; un fallo solo se registra en el log.
func (l *Logger) RecordBestEffort(ctx context.Context, e Entry) {
	if err := l.Record(ctx, l.logs, e); err != nil {
		l.log.Warn().Err(err).Str("action", e.Action).Str("product_id", e.ProductID).Msg("no se pudo registrar auditoría")
	}
}

// StockDetails texto de auditoría de un movimiento de stock.
func StockDetails(movementType string, quantity int, transportType, responsible string) string {
	verb := "Removed"
	if movementType == entity.MovementTypeEntry {
		verb = "Added"
	}
	return fmt.Sprintf("%s %d units (%s) — %s", verb, quantity, transportType, responsible)
}

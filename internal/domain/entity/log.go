package entity

import "time"

// Acciones del registro de auditoría.
const (
	LogActionCreate     = "CREATE"
	LogActionUpdate     = "UPDATE"
	LogActionDelete     = "DELETE"
	LogActionStockEntry = "STOCK_ENTRY"
	LogActionStockExit  = "STOCK_EXIT"
)

// Log entrada del registro de auditoría (solo inserción).
// ProductID no tiene clave foránea: el producto puede haber sido eliminado.
type Log struct {
	ID          string
	Action      string
	ProductID   *string
	ProductName string
	Details     string
	Timestamp   time.Time
}

// IsValidLogAction valida la acción contra el catálogo.
func IsValidLogAction(action string) bool {
	switch action {
	case LogActionCreate, LogActionUpdate, LogActionDelete, LogActionStockEntry, LogActionStockExit:
		return true
	}
	return false
}

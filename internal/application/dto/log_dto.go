package dto

import "time"

// CreateLogRequest body de POST /api/logs.
type CreateLogRequest struct {
	Action      string  `json:"action" validate:"required,oneof=CREATE UPDATE DELETE STOCK_ENTRY STOCK_EXIT"`
	ProductID   *string `json:"product_id" validate:"omitempty,uuid"`
	ProductName string  `json:"product_name" validate:"max=200"`
	Details     string  `json:"details" validate:"max=2000"`
}

// LogResponse entrada de auditoría.
type LogResponse struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	ProductID   *string   `json:"product_id"`
	ProductName string    `json:"product_name"`
	Details     string    `json:"details"`
	Timestamp   time.Time `json:"timestamp"`
}

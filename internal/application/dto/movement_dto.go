package dto

import "time"

// ApplyMovementRequest entrada para registrar una entrada o salida de stock.
// Quantity es la magnitud (positiva); la dirección la da Type.
type ApplyMovementRequest struct {
	ItemID      string
	Type        string // entity.MovementTypeIn | entity.MovementTypeOut
	Quantity    int
	Responsible string
	Reason      string
}

// MovementResponse registro de auditoría tal como quedó persistido.
type MovementResponse struct {
	ID          string
	ItemID      string
	ItemName    string
	Type        string
	Quantity    int
	Responsible string
	Reason      string
	StockAfter  int
	Timestamp   time.Time
}

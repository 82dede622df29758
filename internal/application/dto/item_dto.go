package dto

import "time"

// RegisterItemRequest entrada para registrar un alimento. Code y Location
// vacíos reciben los valores por defecto del formato original.
type RegisterItemRequest struct {
	Name        string
	Category    string
	Code        string
	Quantity    int
	MinStock    int
	Location    string
	Expiry      string
	Description string
}

// UpdateItemRequest campos editables (nil = sin cambio). La cantidad no se
// edita aquí: solo cambia vía movimientos.
type UpdateItemRequest struct {
	Name        *string
	Category    *string
	Code        *string
	MinStock    *int
	Location    *string
	Expiry      *string
	Description *string
}

// ItemResponse alimento con sus clasificaciones derivadas.
type ItemResponse struct {
	ID          string
	Name        string
	Category    string
	Code        string
	Quantity    int
	MinStock    int
	Location    string
	Expiry      string
	Description string
	CreatedAt   time.Time
	LowStock    bool // Quantity <= MinStock
	Critical    bool // Quantity == 0
}

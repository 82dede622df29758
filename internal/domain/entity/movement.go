package entity

import "time"

// Tipos de movimiento. Los valores son los del formato persistido original.
const (
	MovementTypeIn  = "entrada" // entrada de stock
	MovementTypeOut = "saida"   // salida de stock
)

// Valores que escribe el sistema en movimientos generados o incompletos.
const (
	DefaultReason         = "Sem observação"
	SystemResponsible     = "Sistema"
	InitialMovementReason = "Cadastro inicial"
)

// Movement es el registro de auditoría de un cambio de cantidad sobre un
// alimento. Es append-only: nunca se edita ni se borra individualmente.
// ItemName y StockAfter son copias desnormalizadas a propósito: el historial
// sobrevive al renombrado o borrado del alimento y no se recalcula en lectura.
type Movement struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"epiId"` // referencia, puede quedar huérfana
	ItemName    string    `json:"epiName"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"` // magnitud, siempre positiva; la dirección la da Type
	Responsible string    `json:"responsible"`
	Reason      string    `json:"reason"`
	StockAfter  int       `json:"stockAfter"` // cantidad resultante del alimento tras este movimiento
	Timestamp   time.Time `json:"timestamp"`
}

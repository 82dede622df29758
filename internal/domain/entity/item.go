package entity

import "time"

// Valores por defecto para campos opcionales del alimento. Se conservan en
// portugués: son los valores que la app original escribe en localStorage y
// en los backups, y esos archivos deben seguir importando sin pérdida.
const (
	DefaultCode     = "N/A"
	DefaultLocation = "Não especificado"
)

// Item representa un alimento en stock (la unidad de inventario).
// Los tags JSON corresponden al formato persistido y al backup versión 1.0.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Code        string    `json:"code"` // lote
	Quantity    int       `json:"quantity"`
	MinStock    int       `json:"minStock"` // umbral de stock bajo, inclusivo
	Location    string    `json:"location"`
	Expiry      string    `json:"validade,omitempty"` // fecha de validez AAAA-MM-DD
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsLowStock indica stock bajo: cantidad menor o igual al mínimo.
func (i *Item) IsLowStock() bool { return i.Quantity <= i.MinStock }

// IsCritical indica stock crítico: cantidad exactamente cero.
// No excluye IsLowStock; un alimento en cero cumple ambas.
func (i *Item) IsCritical() bool { return i.Quantity == 0 }

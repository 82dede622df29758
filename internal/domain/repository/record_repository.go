package repository

import "github.com/jhoicas/despensa-core/internal/domain/entity"

// KVStore define el puerto del medio durable clave→valor. Los valores son
// texto opaco; una clave ausente no es un error (ok=false).
type KVStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// ItemUpdate campos modificables de un alimento (merge superficial: nil = sin
// cambio). Quantity no aparece: la cantidad solo cambia vía ApplyAndRecord,
// siempre acompañada de su movimiento.
type ItemUpdate struct {
	Name        *string
	Category    *string
	Code        *string
	MinStock    *int
	Location    *string
	Expiry      *string
	Description *string
}

// RecordRepository define el puerto de persistencia para las dos colecciones
// (alimentos y movimientos). Escritura write-through: todo método que muta
// una colección la deja persistida antes de retornar con éxito.
type RecordRepository interface {
	// Load carga ambas colecciones desde el medio durable. Clave ausente o
	// contenido no parseable produce colección vacía, no error (fail-open).
	Load() error
	// Reload descarta el estado en memoria y vuelve a cargar desde el medio.
	Reload() error

	// CreateItem asigna ID y CreatedAt, agrega y persiste.
	CreateItem(item *entity.Item) (*entity.Item, error)
	// UpdateItem aplica los campos no nil sobre el alimento existente.
	// Devuelve domain.ErrNotFound si el id no existe.
	UpdateItem(id string, upd ItemUpdate) (*entity.Item, error)
	// DeleteItem elimina el alimento; no-op si no existe. No toca movimientos.
	DeleteItem(id string) error
	// GetItem devuelve nil, nil si el id no existe.
	GetItem(id string) (*entity.Item, error)
	// ListItems devuelve los alimentos en orden de inserción.
	ListItems() ([]*entity.Item, error)
	// SearchItems filtra por substring (sin mayúsculas) sobre nombre,
	// categoría y lote.
	SearchItems(query string) ([]*entity.Item, error)

	// CreateMovement asigna ID y Timestamp, agrega y persiste.
	CreateMovement(m *entity.Movement) (*entity.Movement, error)
	// ListMovements devuelve todos los movimientos ordenados por Timestamp
	// descendente; empates conservan el orden de inserción. Los consumidores
	// dependen de este orden: es contrato, no accidente.
	ListMovements() ([]*entity.Movement, error)
	ListMovementsByType(movType string) ([]*entity.Movement, error)
	ListMovementsByItem(itemID string) ([]*entity.Movement, error)

	// ApplyAndRecord es la primitiva transaccional del motor de stock: en una
	// sola sección crítica suma delta a la cantidad del alimento, completa
	// StockAfter en el movimiento, agrega el movimiento y persiste ambas
	// colecciones. Si la cantidad resultante fuera negativa devuelve
	// domain.ErrInsufficientStock sin cambiar nada.
	ApplyAndRecord(itemID string, delta int, m *entity.Movement) (*entity.Item, *entity.Movement, error)

	// ReplaceAll sobreescribe ambas colecciones en el medio durable
	// (reemplazo completo, no merge). No actualiza el estado en memoria:
	// el caller debe invocar Reload a continuación.
	ReplaceAll(items []*entity.Item, movements []*entity.Movement) error
}

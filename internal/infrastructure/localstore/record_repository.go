package localstore

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/despensa-core/internal/domain"
	"github.com/jhoicas/despensa-core/internal/domain/entity"
	"github.com/jhoicas/despensa-core/internal/domain/repository"
	"github.com/jhoicas/despensa-core/pkg/logger"
)

// Ensure RecordRepository implements the port.
var _ repository.RecordRepository = (*RecordRepository)(nil)

// RecordRepository mantiene las dos colecciones en memoria y las persiste
// write-through sobre el KVStore: toda mutación queda en el medio durable
// antes de retornar con éxito, y si persistir falla el estado en memoria se
// restaura, así el caller nunca observa una escritura parcial.
//
// Un RWMutex serializa todo acceso: el modelo original asume un caller
// monohilo, pero un host Go puede ser concurrente y los invariantes de
// cantidad no deben depender de la cooperación del caller.
type RecordRepository struct {
	store repository.KVStore
	log   *logger.Logger

	mu        sync.RWMutex
	items     []*entity.Item
	movements []*entity.Movement
}

// NewRecordRepository construye el repositorio sin cargar; llamar Load antes
// de operar.
func NewRecordRepository(store repository.KVStore, log *logger.Logger) *RecordRepository {
	return &RecordRepository{store: store, log: log}
}

// Load carga ambas colecciones. Clave ausente o JSON corrupto produce
// colección vacía y un warn: mejor inventario vacío que proceso caído.
func (r *RecordRepository) Load() error {
	items, err := loadCollection[entity.Item](r, KeyItems)
	if err != nil {
		return err
	}
	movements, err := loadCollection[entity.Movement](r, KeyMovements)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.items = items
	r.movements = movements
	r.mu.Unlock()
	return nil
}

// Reload descarta el estado en memoria y recarga desde el medio durable.
func (r *RecordRepository) Reload() error { return r.Load() }

// loadCollection lee una clave y la decodifica. Solo los errores de E/S del
// medio se propagan; ausencia y corrupción son fail-open.
func loadCollection[T any](r *RecordRepository, key string) ([]*T, error) {
	raw, ok, err := r.store.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*T{}, nil
	}
	var decoded []*T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("contenido persistido no parseable, colección vacía")
		return []*T{}, nil
	}
	// Un null dentro del arreglo (archivo editado a mano) decodifica como
	// puntero nil y rompería toda lectura posterior; se descarta.
	out := make([]*T, 0, len(decoded))
	for _, el := range decoded {
		if el == nil {
			r.log.Warn().Str("key", key).Msg("elemento null descartado de la colección persistida")
			continue
		}
		out = append(out, el)
	}
	return out, nil
}

func (r *RecordRepository) persist(key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	return r.store.Set(key, string(data))
}

// ── Alimentos ─────────────────────────────────────────────────────────────────

// CreateItem asigna ID y CreatedAt, agrega al final y persiste.
func (r *RecordRepository) CreateItem(item *entity.Item) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneItem(item)
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now()

	r.items = append(r.items, stored)
	if err := r.persist(KeyItems, r.items); err != nil {
		r.items = r.items[:len(r.items)-1]
		return nil, err
	}
	r.log.Debug().Str("item_id", stored.ID).Str("name", stored.Name).Msg("alimento creado")
	return cloneItem(stored), nil
}

// UpdateItem aplica merge superficial de los campos no nil.
func (r *RecordRepository) UpdateItem(id string, upd repository.ItemUpdate) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOfItem(id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	prev := r.items[idx]
	next := cloneItem(prev)
	if upd.Name != nil {
		next.Name = *upd.Name
	}
	if upd.Category != nil {
		next.Category = *upd.Category
	}
	if upd.Code != nil {
		next.Code = *upd.Code
	}
	if upd.MinStock != nil {
		next.MinStock = *upd.MinStock
	}
	if upd.Location != nil {
		next.Location = *upd.Location
	}
	if upd.Expiry != nil {
		next.Expiry = *upd.Expiry
	}
	if upd.Description != nil {
		next.Description = *upd.Description
	}

	r.items[idx] = next
	if err := r.persist(KeyItems, r.items); err != nil {
		r.items[idx] = prev
		return nil, err
	}
	return cloneItem(next), nil
}

// DeleteItem elimina el alimento si existe; sus movimientos quedan intactos
// (referencias huérfanas aceptadas, el historial sobrevive al alimento).
func (r *RecordRepository) DeleteItem(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOfItem(id)
	if idx < 0 {
		return nil
	}

	prev := r.items
	next := make([]*entity.Item, 0, len(prev)-1)
	next = append(next, prev[:idx]...)
	next = append(next, prev[idx+1:]...)

	r.items = next
	if err := r.persist(KeyItems, r.items); err != nil {
		r.items = prev
		return err
	}
	r.log.Debug().Str("item_id", id).Msg("alimento eliminado")
	return nil
}

// GetItem devuelve nil, nil si el id no existe.
func (r *RecordRepository) GetItem(id string) (*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOfItem(id); idx >= 0 {
		return cloneItem(r.items[idx]), nil
	}
	return nil, nil
}

// ListItems devuelve los alimentos en orden de inserción.
func (r *RecordRepository) ListItems() ([]*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Item, len(r.items))
	for i, it := range r.items {
		out[i] = cloneItem(it)
	}
	return out, nil
}

// SearchItems filtra por substring sobre nombre, categoría y lote.
func (r *RecordRepository) SearchItems(query string) ([]*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*entity.Item, 0)
	for _, it := range r.items {
		if q == "" ||
			strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Category), q) ||
			strings.Contains(strings.ToLower(it.Code), q) {
			out = append(out, cloneItem(it))
		}
	}
	return out, nil
}

func (r *RecordRepository) indexOfItem(id string) int {
	for i, it := range r.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// CreateMovement asigna ID y Timestamp, agrega al final y persiste.
func (r *RecordRepository) CreateMovement(m *entity.Movement) (*entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendMovementLocked(m)
}

// appendMovementLocked exige r.mu tomado en escritura.
func (r *RecordRepository) appendMovementLocked(m *entity.Movement) (*entity.Movement, error) {
	stored := cloneMovement(m)
	stored.ID = uuid.New().String()
	stored.Timestamp = time.Now()

	r.movements = append(r.movements, stored)
	if err := r.persist(KeyMovements, r.movements); err != nil {
		r.movements = r.movements[:len(r.movements)-1]
		return nil, err
	}
	return cloneMovement(stored), nil
}

// ListMovements devuelve todos los movimientos del más reciente al más
// antiguo; empates de Timestamp conservan el orden de inserción (sort
// estable sobre la colección en orden de llegada).
func (r *RecordRepository) ListMovements() ([]*entity.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedMovementsLocked(), nil
}

// ListMovementsByType filtra por tipo conservando el orden más reciente primero.
func (r *RecordRepository) ListMovementsByType(movType string) ([]*entity.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Movement, 0)
	for _, m := range r.sortedMovementsLocked() {
		if m.Type == movType {
			out = append(out, m)
		}
	}
	return out, nil
}

// ListMovementsByItem filtra por alimento conservando el orden más reciente
// primero. Incluye movimientos huérfanos de alimentos ya eliminados.
func (r *RecordRepository) ListMovementsByItem(itemID string) ([]*entity.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Movement, 0)
	for _, m := range r.sortedMovementsLocked() {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *RecordRepository) sortedMovementsLocked() []*entity.Movement {
	out := make([]*entity.Movement, len(r.movements))
	for i, m := range r.movements {
		out[i] = cloneMovement(m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// ── Primitiva transaccional ───────────────────────────────────────────────────

// ApplyAndRecord suma delta a la cantidad del alimento y agrega el movimiento
// como una sola unidad: ambas colecciones persistidas o ninguna. La cantidad
// resultante y StockAfter se calculan dentro de la sección crítica, así dos
// llamadas simultáneas sobre el mismo alimento no pueden perder una
// actualización ni dejar la cantidad en negativo.
func (r *RecordRepository) ApplyAndRecord(itemID string, delta int, m *entity.Movement) (*entity.Item, *entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOfItem(itemID)
	if idx < 0 {
		return nil, nil, domain.ErrNotFound
	}

	prev := r.items[idx]
	newQuantity := prev.Quantity + delta
	if newQuantity < 0 {
		return nil, nil, domain.ErrInsufficientStock
	}

	next := cloneItem(prev)
	next.Quantity = newQuantity
	r.items[idx] = next
	if err := r.persist(KeyItems, r.items); err != nil {
		r.items[idx] = prev
		return nil, nil, err
	}

	mov := cloneMovement(m)
	mov.StockAfter = newQuantity
	stored, err := r.appendMovementLocked(mov)
	if err != nil {
		// Compensación: revertir la cantidad para que I1 no quede violado.
		r.items[idx] = prev
		if perr := r.persist(KeyItems, r.items); perr != nil {
			r.log.Error().Err(perr).Str("item_id", itemID).
				Msg("compensación de cantidad no persistida tras fallo del movimiento")
		}
		return nil, nil, err
	}

	return cloneItem(next), stored, nil
}

// ── Reemplazo completo ────────────────────────────────────────────────────────

// ReplaceAll sobreescribe ambas claves en el medio durable sin pasar por el
// estado en memoria; el caller debe invocar Reload a continuación para que
// ninguna lectura posterior vea colecciones viejas.
func (r *RecordRepository) ReplaceAll(items []*entity.Item, movements []*entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if items == nil {
		items = []*entity.Item{}
	}
	if movements == nil {
		movements = []*entity.Movement{}
	}

	prevItems, hadItems, err := r.store.Get(KeyItems)
	if err != nil {
		return err
	}
	if err := r.persist(KeyItems, items); err != nil {
		return err
	}
	if err := r.persist(KeyMovements, movements); err != nil {
		// Restaurar la primera clave para no dejar un reemplazo a medias.
		if hadItems {
			if serr := r.store.Set(KeyItems, prevItems); serr != nil {
				r.log.Error().Err(serr).Msg("restauración de alimentos fallida tras reemplazo parcial")
			}
		}
		return err
	}
	r.log.Info().Int("items", len(items)).Int("movements", len(movements)).Msg("colecciones reemplazadas")
	return nil
}

// ── Clones ────────────────────────────────────────────────────────────────────

// Los clones evitan que los callers muten el estado interno a través de los
// punteros devueltos.

func cloneItem(i *entity.Item) *entity.Item {
	c := *i
	return &c
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	c := *m
	return &c
}

package stock

import (
	"github.com/jhoicas/despensa-core/internal/application/dto"
	"github.com/jhoicas/despensa-core/internal/domain"
	"github.com/jhoicas/despensa-core/internal/domain/entity"
	"github.com/jhoicas/despensa-core/internal/domain/repository"
	"github.com/jhoicas/despensa-core/pkg/logger"
)

// UseCase motor de stock: registro de alimentos, movimientos de entrada y
// salida, y CRUD de campos no-cantidad. La cantidad de un alimento solo
// cambia acompañada de su movimiento de auditoría (ApplyAndRecord).
type UseCase struct {
	repo repository.RecordRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.RecordRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log}
}

// GetItem obtiene un alimento por ID.
func (uc *UseCase) GetItem(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetItem(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// ListItems lista todos los alimentos en orden de registro.
func (uc *UseCase) ListItems() ([]*dto.ItemResponse, error) {
	items, err := uc.repo.ListItems()
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// SearchItems busca por nombre, categoría o lote (substring, sin mayúsculas).
func (uc *UseCase) SearchItems(query string) ([]*dto.ItemResponse, error) {
	items, err := uc.repo.SearchItems(query)
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// UpdateItem edita campos no-cantidad de un alimento.
func (uc *UseCase) UpdateItem(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if in.MinStock != nil && *in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.UpdateItem(id, repository.ItemUpdate{
		Name:        in.Name,
		Category:    in.Category,
		Code:        in.Code,
		MinStock:    in.MinStock,
		Location:    in.Location,
		Expiry:      in.Expiry,
		Description: in.Description,
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// DeleteItem elimina un alimento. Sus movimientos permanecen con el nombre
// desnormalizado de la época: el historial no se reescribe.
func (uc *UseCase) DeleteItem(id string) error {
	return uc.repo.DeleteItem(id)
}

// Movements historial completo, más reciente primero.
func (uc *UseCase) Movements() ([]*dto.MovementResponse, error) {
	movs, err := uc.repo.ListMovements()
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movs), nil
}

// MovementsByType historial filtrado por entrada o salida.
func (uc *UseCase) MovementsByType(movType string) ([]*dto.MovementResponse, error) {
	if movType != entity.MovementTypeIn && movType != entity.MovementTypeOut {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.repo.ListMovementsByType(movType)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movs), nil
}

// MovementsByItem historial de un alimento (incluye huérfanos si ya fue
// eliminado).
func (uc *UseCase) MovementsByItem(itemID string) ([]*dto.MovementResponse, error) {
	movs, err := uc.repo.ListMovementsByItem(itemID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movs), nil
}

// ── Mapeos ────────────────────────────────────────────────────────────────────

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Category:    i.Category,
		Code:        i.Code,
		Quantity:    i.Quantity,
		MinStock:    i.MinStock,
		Location:    i.Location,
		Expiry:      i.Expiry,
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
		LowStock:    i.IsLowStock(),
		Critical:    i.IsCritical(),
	}
}

func toItemResponses(items []*entity.Item) []*dto.ItemResponse {
	out := make([]*dto.ItemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(it)
	}
	return out
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		ItemID:      m.ItemID,
		ItemName:    m.ItemName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Responsible: m.Responsible,
		Reason:      m.Reason,
		StockAfter:  m.StockAfter,
		Timestamp:   m.Timestamp,
	}
}

func toMovementResponses(movs []*entity.Movement) []*dto.MovementResponse {
	out := make([]*dto.MovementResponse, len(movs))
	for i, m := range movs {
		out[i] = toMovementResponse(m)
	}
	return out
}

func defaultIfEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

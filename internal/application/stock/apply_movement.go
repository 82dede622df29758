package stock

import (
	"github.com/jhoicas/despensa-core/internal/application/dto"
	"github.com/jhoicas/despensa-core/internal/domain"
	"github.com/jhoicas/despensa-core/internal/domain/entity"
)

// ApplyMovement registra una entrada o salida de stock. Toda la validación
// ocurre antes de mutar nada; la actualización de cantidad y el alta del
// movimiento las hace el repositorio como una sola unidad (ApplyAndRecord),
// que además recalcula la cantidad dentro de su sección crítica: una salida
// que dejaría la existencia en negativo se rechaza con ErrInsufficientStock
// sin cambio de estado aunque haya llamadas concurrentes.
func (uc *UseCase) ApplyMovement(in dto.ApplyMovementRequest) (*dto.MovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeIn && in.Type != entity.MovementTypeOut {
		return nil, domain.ErrInvalidInput
	}
	if in.Responsible == "" {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.repo.GetItem(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	// Chequeo temprano para responder ErrInsufficientStock sin entrar a la
	// sección crítica; el repositorio lo vuelve a verificar bajo lock.
	if in.Type == entity.MovementTypeOut && in.Quantity > item.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	delta := in.Quantity
	if in.Type == entity.MovementTypeOut {
		delta = -in.Quantity
	}

	mov := &entity.Movement{
		ItemID:      item.ID,
		ItemName:    item.Name,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Responsible: in.Responsible,
		Reason:      defaultIfEmpty(in.Reason, entity.DefaultReason),
	}

	updated, stored, err := uc.repo.ApplyAndRecord(item.ID, delta, mov)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("item_id", updated.ID).Str("type", stored.Type).
		Int("quantity", stored.Quantity).Int("stock_after", stored.StockAfter).
		Msg("movimiento registrado")
	return toMovementResponse(stored), nil
}

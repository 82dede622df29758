package stock

import (
	"fmt"
	"strings"

	"github.com/jhoicas/despensa-core/internal/application/dto"
	"github.com/jhoicas/despensa-core/internal/domain"
	"github.com/jhoicas/despensa-core/internal/domain/entity"
)

// OpeningMovementError señala un registro parcialmente exitoso: el alimento
// quedó persistido pero su movimiento de apertura no. Transporta el alimento
// creado para que el caller no lo pierda al descartar el valor de retorno
// ante un error.
type OpeningMovementError struct {
	Item *dto.ItemResponse
	Err  error
}

func (e *OpeningMovementError) Error() string {
	return fmt.Sprintf("movimiento de apertura: %v", e.Err)
}

func (e *OpeningMovementError) Unwrap() error { return e.Err }

// Register da de alta un alimento. Si la cantidad inicial es mayor a cero se
// sintetiza además un movimiento de apertura (entrada, responsable "Sistema",
// motivo "Cadastro inicial") para que el historial arranque consistente con
// la existencia registrada.
//
// Atomicidad débil documentada: si el movimiento de apertura falla, el
// alimento ya quedó registrado y no se revierte (borrarlo ocultaría el hueco
// de auditoría). En ese caso Register devuelve un *OpeningMovementError con
// el alimento creado adentro, nunca silencia el fallo.
func (uc *UseCase) Register(in dto.RegisterItemRequest) (*dto.ItemResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	item := &entity.Item{
		Name:        in.Name,
		Category:    in.Category,
		Code:        defaultIfEmpty(in.Code, entity.DefaultCode),
		Quantity:    in.Quantity,
		MinStock:    in.MinStock,
		Location:    defaultIfEmpty(in.Location, entity.DefaultLocation),
		Expiry:      in.Expiry,
		Description: in.Description,
	}

	created, err := uc.repo.CreateItem(item)
	if err != nil {
		return nil, err
	}
	resp := toItemResponse(created)

	if created.Quantity > 0 {
		opening := &entity.Movement{
			ItemID:      created.ID,
			ItemName:    created.Name,
			Type:        entity.MovementTypeIn,
			Quantity:    created.Quantity,
			Responsible: entity.SystemResponsible,
			Reason:      entity.InitialMovementReason,
			StockAfter:  created.Quantity,
		}
		if _, err := uc.repo.CreateMovement(opening); err != nil {
			uc.log.Warn().Err(err).Str("item_id", created.ID).
				Msg("alimento registrado sin movimiento de apertura")
			return nil, &OpeningMovementError{Item: resp, Err: err}
		}
	}

	uc.log.Info().Str("item_id", created.ID).Str("name", created.Name).
		Int("quantity", created.Quantity).Msg("alimento registrado")
	return resp, nil
}

package stock_test

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despensa-core/internal/application/dto"
	"github.com/jhoicas/despensa-core/internal/application/stock"
	"github.com/jhoicas/despensa-core/internal/domain"
	"github.com/jhoicas/despensa-core/internal/domain/entity"
	"github.com/jhoicas/despensa-core/internal/domain/repository"
	"github.com/jhoicas/despensa-core/internal/infrastructure/localstore"
	"github.com/jhoicas/despensa-core/pkg/logger"
)

func newUseCase(t *testing.T) *stock.UseCase {
	t.Helper()
	store, err := localstore.NewFileStore(afero.NewMemMapFs(), "data")
	require.NoError(t, err)
	repo := localstore.NewRecordRepository(store, logger.Nop())
	require.NoError(t, repo.Load())
	return stock.NewUseCase(repo, logger.Nop())
}

func registerRice(t *testing.T, uc *stock.UseCase) *dto.ItemResponse {
	t.Helper()
	item, err := uc.Register(dto.RegisterItemRequest{
		Name:     "Arroz",
		Category: "Grãos",
		Quantity: 10,
		MinStock: 5,
	})
	require.NoError(t, err)
	return item
}

// ── Register ──────────────────────────────────────────────────────────────────

func TestRegister_ConMovimientoDeApertura(t *testing.T) {
	uc := newUseCase(t)

	item := registerRice(t, uc)
	assert.Equal(t, 10, item.Quantity)
	assert.Equal(t, entity.DefaultCode, item.Code, "lote vacío recibe N/A")
	assert.Equal(t, entity.DefaultLocation, item.Location)
	assert.False(t, item.LowStock)

	movs, err := uc.Movements()
	require.NoError(t, err)
	require.Len(t, movs, 1, "exactamente un movimiento de apertura")

	opening := movs[0]
	assert.Equal(t, entity.MovementTypeIn, opening.Type)
	assert.Equal(t, 10, opening.Quantity)
	assert.Equal(t, 10, opening.StockAfter)
	assert.Equal(t, entity.SystemResponsible, opening.Responsible)
	assert.Equal(t, entity.InitialMovementReason, opening.Reason)
	assert.Equal(t, item.ID, opening.ItemID)
	assert.Equal(t, "Arroz", opening.ItemName)
}

func TestRegister_CantidadCeroSinApertura(t *testing.T) {
	uc := newUseCase(t)

	item, err := uc.Register(dto.RegisterItemRequest{Name: "Leite", Category: "Laticínios", Quantity: 0, MinStock: 3})
	require.NoError(t, err)
	assert.True(t, item.Critical)
	assert.True(t, item.LowStock)

	movs, err := uc.Movements()
	require.NoError(t, err)
	assert.Empty(t, movs, "cantidad cero no sintetiza movimiento")
}

func TestRegister_EntradaInvalida(t *testing.T) {
	uc := newUseCase(t)

	cases := []dto.RegisterItemRequest{
		{Name: "", Category: "Grãos", Quantity: 1, MinStock: 1},
		{Name: "Arroz", Category: "", Quantity: 1, MinStock: 1},
		{Name: "Arroz", Category: "Grãos", Quantity: -1, MinStock: 1},
		{Name: "Arroz", Category: "Grãos", Quantity: 1, MinStock: -1},
	}
	for _, in := range cases {
		_, err := uc.Register(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	items, err := uc.ListItems()
	require.NoError(t, err)
	assert.Empty(t, items, "las entradas rechazadas no mutan nada")
}

// movementWriteFailStore simula un medio que acepta alimentos pero falla al
// persistir movimientos, el punto exacto de la atomicidad débil de Register.
type movementWriteFailStore struct {
	inner repository.KVStore
}

func (s *movementWriteFailStore) Get(key string) (string, bool, error) { return s.inner.Get(key) }

func (s *movementWriteFailStore) Set(key, value string) error {
	if key == localstore.KeyMovements {
		return errors.New("disco lleno")
	}
	return s.inner.Set(key, value)
}

func TestRegister_AperturaFallidaEntregaElAlimentoEnElError(t *testing.T) {
	base, err := localstore.NewFileStore(afero.NewMemMapFs(), "data")
	require.NoError(t, err)
	repo := localstore.NewRecordRepository(&movementWriteFailStore{inner: base}, logger.Nop())
	require.NoError(t, repo.Load())
	uc := stock.NewUseCase(repo, logger.Nop())

	resp, err := uc.Register(dto.RegisterItemRequest{Name: "Arroz", Category: "Grãos", Quantity: 10, MinStock: 5})
	require.Error(t, err)
	assert.Nil(t, resp, "el resultado parcial viaja dentro del error, no al lado")

	var opening *stock.OpeningMovementError
	require.ErrorAs(t, err, &opening)
	require.NotNil(t, opening.Item)
	assert.Equal(t, "Arroz", opening.Item.Name)

	// Fail-open: el alimento quedó registrado, sin movimiento de apertura.
	got, err := uc.GetItem(opening.Item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)

	movs, err := uc.Movements()
	require.NoError(t, err)
	assert.Empty(t, movs)
}

// ── ApplyMovement ─────────────────────────────────────────────────────────────

func TestApplyMovement_Salida(t *testing.T) {
	uc := newUseCase(t)
	item := registerRice(t, uc)

	mov, err := uc.ApplyMovement(dto.ApplyMovementRequest{
		ItemID:      item.ID,
		Type:        entity.MovementTypeOut,
		Quantity:    3,
		Responsible: "María",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, mov.StockAfter)
	assert.Equal(t, entity.DefaultReason, mov.Reason, "motivo vacío recibe el valor por defecto")

	got, err := uc.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
}

func TestApplyMovement_Entrada(t *testing.T) {
	uc := newUseCase(t)
	item := registerRice(t, uc)

	mov, err := uc.ApplyMovement(dto.ApplyMovementRequest{
		ItemID:      item.ID,
		Type:        entity.MovementTypeIn,
		Quantity:    5,
		Responsible: "María",
		Reason:      "compra semanal",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, mov.StockAfter)
	assert.Equal(t, "compra semanal", mov.Reason)
}

func TestApplyMovement_StockInsuficiente(t *testing.T) {
	uc := newUseCase(t)
	item := registerRice(t, uc)

	_, err := uc.ApplyMovement(dto.ApplyMovementRequest{
		ItemID:      item.ID,
		Type:        entity.MovementTypeOut,
		Quantity:    50,
		Responsible: "María",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Sin cambio de estado: cantidad intacta y solo el movimiento de apertura.
	got, err := uc.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)

	movs, err := uc.Movements()
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestApplyMovement_Validaciones(t *testing.T) {
	uc := newUseCase(t)
	item := registerRice(t, uc)

	_, err := uc.ApplyMovement(dto.ApplyMovementRequest{ItemID: item.ID, Type: entity.MovementTypeOut, Quantity: 0, Responsible: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.ApplyMovement(dto.ApplyMovementRequest{ItemID: item.ID, Type: entity.MovementTypeOut, Quantity: -2, Responsible: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = uc.ApplyMovement(dto.ApplyMovementRequest{ItemID: item.ID, Type: "ajuste", Quantity: 1, Responsible: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = uc.ApplyMovement(dto.ApplyMovementRequest{ItemID: "nope", Type: entity.MovementTypeIn, Quantity: 1, Responsible: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_NuncaNegativaEnSecuencia(t *testing.T) {
	uc := newUseCase(t)
	item := registerRice(t, uc)

	// Serie de salidas: las que exceden la existencia se rechazan y las
	// demás dejan exactamente un movimiento cada una.
	amounts := []int{4, 4, 4, 4}
	applied := 0
	for _, q := range amounts {
		_, err := uc.ApplyMovement(dto.ApplyMovementRequest{
			ItemID: item.ID, Type: entity.MovementTypeOut, Quantity: q, Responsible: "x",
		})
		if err == nil {
			applied++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}

	got, err := uc.GetItem(item.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Quantity, 0, "la cantidad jamás queda negativa")
	assert.Equal(t, 2, applied, "solo caben dos salidas de 4 en 10")
	assert.Equal(t, 2, got.Quantity)

	movs, err := uc.Movements()
	require.NoError(t, err)
	assert.Len(t, movs, 1+applied, "un movimiento por cambio exitoso, ninguno por rechazo")
}

// ── Edición y borrado ─────────────────────────────────────────────────────────

func TestUpdateItem_NoTocaCantidad(t *testing.T) {
	uc := newUseCase(t)
	item := registerRice(t, uc)

	name := "Arroz Integral"
	updated, err := uc.UpdateItem(item.ID, dto.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Arroz Integral", updated.Name)
	assert.Equal(t, 10, updated.Quantity)
}

func TestUpdateItem_MinStockNegativo(t *testing.T) {
	uc := newUseCase(t)
	item := registerRice(t, uc)

	bad := -3
	_, err := uc.UpdateItem(item.ID, dto.UpdateItemRequest{MinStock: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteItem_HistorialSobrevive(t *testing.T) {
	uc := newUseCase(t)
	item := registerRice(t, uc)

	require.NoError(t, uc.DeleteItem(item.ID))

	_, err := uc.GetItem(item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	movs, err := uc.MovementsByItem(item.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1, "el movimiento huérfano sigue listándose")
	assert.Equal(t, "Arroz", movs[0].ItemName, "con su nombre desnormalizado original")
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func TestMovementsByType(t *testing.T) {
	uc := newUseCase(t)
	item := registerRice(t, uc)

	_, err := uc.ApplyMovement(dto.ApplyMovementRequest{ItemID: item.ID, Type: entity.MovementTypeOut, Quantity: 2, Responsible: "x"})
	require.NoError(t, err)

	outs, err := uc.MovementsByType(entity.MovementTypeOut)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, 8, outs[0].StockAfter)

	ins, err := uc.MovementsByType(entity.MovementTypeIn)
	require.NoError(t, err)
	assert.Len(t, ins, 1)

	_, err = uc.MovementsByType("ajuste")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchItems(t *testing.T) {
	uc := newUseCase(t)
	registerRice(t, uc)
	_, err := uc.Register(dto.RegisterItemRequest{Name: "Feijão", Category: "Grãos", Quantity: 2, MinStock: 1})
	require.NoError(t, err)

	found, err := uc.SearchItems("feij")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Feijão", found[0].Name)
}

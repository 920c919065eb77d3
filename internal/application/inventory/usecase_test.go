package inventory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlite/sqlitetest"
	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlstore"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newLedger(t *testing.T) (*inventory.LedgerUseCase, *sqlstore.Store) {
	t.Helper()
	s := sqlitetest.NewStore(t)
	return inventory.NewLedgerUseCase(s.TxRunner, logger.Nop()), s
}

func TestReceive_CreaParteYRecalculaPromedio(t *testing.T) {
	ctx := context.Background()
	uc, s := newLedger(t)

	res, err := uc.Receive(ctx, inventory.ReceiveInput{PartNumber: "P001", Quantity: 10, UnitCost: dec("8.00")})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 10, res.Quantity)
	assert.True(t, res.AvgCost.Equal(dec("8.00")))

	res, err = uc.Receive(ctx, inventory.ReceiveInput{PartNumber: "P001", Quantity: 5, UnitCost: dec("11.00")})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, 15, res.Quantity)
	assert.True(t, res.AvgCost.Equal(dec("9.00")), res.AvgCost.String())

	p, err := s.Parts.GetByNumber(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 15, p.Quantity)
	assert.True(t, p.AvgCost.Equal(dec("9")))
	assert.Equal(t, "P001", p.Name)
	assert.Equal(t, entity.DefaultPartCategory, p.Category)
	assert.True(t, p.RetailPrice.IsZero())

	movs, err := s.Movements.ListByPart(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeIn, movs[0].Type)
	assert.Equal(t, 15, movs[0].QuantityAfter)
}

func TestReceive_RedondeaEnCadaRecepcion(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t)

	steps := []struct {
		qty  int
		cost string
	}{{1, "1.00"}, {2, "2.00"}, {3, "0.01"}, {7, "9.99"}, {1, "0.00"}, {5, "3.33"}}

	var last *inventory.ReceiveResult
	for _, st := range steps {
		var err error
		last, err = uc.Receive(ctx, inventory.ReceiveInput{PartNumber: "DRIFT", Quantity: st.qty, UnitCost: dec(st.cost)})
		require.NoError(t, err)
	}
	// Redondear en cada paso da 4.83; el promedio exacto sería 4.82.
	assert.True(t, last.AvgCost.Equal(dec("4.83")), last.AvgCost.String())
	assert.Equal(t, 19, last.Quantity)
}

func TestReceive_IgnoraPrecioYCategoriaEnParteExistente(t *testing.T) {
	ctx := context.Background()
	uc, s := newLedger(t)

	retail := dec("25.00")
	_, err := uc.Receive(ctx, inventory.ReceiveInput{
		PartNumber: "PG-77", PartName: "Amortiguador", Quantity: 2, UnitCost: dec("10"),
		RetailPrice: &retail, Category: "Suspensión",
	})
	require.NoError(t, err)

	other := dec("99.00")
	_, err = uc.Receive(ctx, inventory.ReceiveInput{
		PartNumber: "PG-77", Quantity: 1, UnitCost: dec("10"), RetailPrice: &other, Category: "Otra",
	})
	require.NoError(t, err)

	p, err := s.Parts.GetByNumber(ctx, "PG-77")
	require.NoError(t, err)
	assert.True(t, p.RetailPrice.Equal(retail))
	assert.Equal(t, "Suspensión", p.Category)
	assert.Equal(t, "Amortiguador", p.Name)
}

func TestReceive_EntradaInvalida(t *testing.T) {
	ctx := context.Background()
	uc, s := newLedger(t)
	negative := dec("-1")

	cases := []inventory.ReceiveInput{
		{PartNumber: "X", Quantity: 0, UnitCost: dec("1")},
		{PartNumber: "X", Quantity: -3, UnitCost: dec("1")},
		{PartNumber: "X", Quantity: 1, UnitCost: dec("-0.01")},
		{PartNumber: "  ", Quantity: 1, UnitCost: dec("1")},
		{PartNumber: "X", Quantity: 1, UnitCost: dec("1"), RetailPrice: &negative},
	}
	for _, in := range cases {
		_, err := uc.Receive(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	p, err := s.Parts.GetByNumber(ctx, "X")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestConsume_StockInsuficienteNoDescuenta(t *testing.T) {
	ctx := context.Background()
	uc, s := newLedger(t)

	res, err := uc.Receive(ctx, inventory.ReceiveInput{PartNumber: "P002", Quantity: 15, UnitCost: dec("9")})
	require.NoError(t, err)

	_, err = uc.Consume(ctx, res.PartID, 20, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 15, stockErr.Available)
	assert.Equal(t, 20, stockErr.Requested)

	p, err := s.Parts.GetByID(ctx, res.PartID)
	require.NoError(t, err)
	assert.Equal(t, 15, p.Quantity)
}

func TestConsume_NoCambiaCostoPromedio(t *testing.T) {
	ctx := context.Background()
	uc, s := newLedger(t)

	res, err := uc.Receive(ctx, inventory.ReceiveInput{PartNumber: "P003", Quantity: 4, UnitCost: dec("12.50")})
	require.NoError(t, err)

	qty, err := uc.Consume(ctx, res.PartID, 4, "manual")
	require.NoError(t, err)
	assert.Equal(t, 0, qty)

	p, err := s.Parts.GetByID(ctx, res.PartID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.True(t, p.AvgCost.Equal(dec("12.50")))
}

func TestConsume_NoEncontradoYCantidadInvalida(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t)

	_, err := uc.Consume(ctx, 404, 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Consume(ctx, 1, 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsume_ConcurrenteNuncaSobregira(t *testing.T) {
	ctx := context.Background()
	uc, s := newLedger(t)

	res, err := uc.Receive(ctx, inventory.ReceiveInput{PartNumber: "P004", Quantity: 15, UnitCost: dec("3")})
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok, insufficient int
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Consume(ctx, res.PartID, 2, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 7, ok)
	assert.Equal(t, 3, insufficient)
	p, err := s.Parts.GetByID(ctx, res.PartID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Quantity)
}

// lateReadParts simula otra recepción que crea el número después de la lectura con bloqueo:
// la primera búsqueda por número devuelve nil aunque la fila ya exista.
type lateReadParts struct {
	repository.PartRepository
	missed bool
}

func (p *lateReadParts) GetByNumberForUpdate(ctx context.Context, partNumber string) (*entity.Part, error) {
	if !p.missed {
		p.missed = true
		return nil, nil
	}
	return p.PartRepository.GetByNumberForUpdate(ctx, partNumber)
}

type lateReadTxRunner struct {
	inner inventory.TxRunner
}

func (r lateReadTxRunner) Run(ctx context.Context, fn func(repository.PartRepository, repository.StockMovementRepository) error) error {
	return r.inner.Run(ctx, func(parts repository.PartRepository, movements repository.StockMovementRepository) error {
		return fn(&lateReadParts{PartRepository: parts}, movements)
	})
}

func TestReceive_ConflictoAlCrearTomaRamaDeActualizacion(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)
	_, err := inventory.NewLedgerUseCase(s.TxRunner, logger.Nop()).
		Receive(ctx, inventory.ReceiveInput{PartNumber: "P009", Quantity: 10, UnitCost: dec("8")})
	require.NoError(t, err)

	uc := inventory.NewLedgerUseCase(lateReadTxRunner{inner: s.TxRunner}, logger.Nop())
	res, err := uc.Receive(ctx, inventory.ReceiveInput{PartNumber: "P009", Quantity: 10, UnitCost: dec("10")})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, 20, res.Quantity)
	assert.True(t, res.AvgCost.Equal(dec("9")), res.AvgCost.String())

	p, err := s.Parts.GetByNumber(ctx, "P009")
	require.NoError(t, err)
	assert.Equal(t, 20, p.Quantity)
}

func TestReceive_PrimerasRecepcionesConcurrentes(t *testing.T) {
	ctx := context.Background()
	uc, s := newLedger(t)

	const workers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := uc.Receive(ctx, inventory.ReceiveInput{PartNumber: "NUEVA-1", Quantity: 1, UnitCost: dec("5")})
			if err != nil {
				t.Errorf("error inesperado: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if res.Created {
				created++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	p, err := s.Parts.GetByNumber(ctx, "NUEVA-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, workers, p.Quantity)
	assert.True(t, p.AvgCost.Equal(dec("5")))
}

func TestReceive_RegistraLineaDeLog(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)
	var buf bytes.Buffer
	uc := inventory.NewLedgerUseCase(s.TxRunner, logger.FromWriter(&buf).Named("ledger"))

	_, err := uc.Receive(ctx, inventory.ReceiveInput{PartNumber: "P010", Quantity: 4, UnitCost: dec("2.5")})
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "ledger", line["component"])
	assert.Equal(t, "recepción de stock", line["message"])
	assert.Equal(t, "P010", line["part_number"])
	assert.Equal(t, "2.50", line["avg_cost"])
	assert.Equal(t, true, line["created"])
}

package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/domain/store"
	"github.com/jhoicas/negocio-core/internal/infrastructure/snapshot"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSaveLoad_RoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	paidAt := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	s := store.New()
	s.Products = append(s.Products, entity.Product{
		ID: "p1", Name: "Café", Unit: entity.UnitKilograms,
		Quantity: dec("3.25"), CostPrice: dec("18.90"), SalePrice: dec("29.90"),
		MinQuantity: dec("1"), CreatedAt: createdAt, UpdatedAt: createdAt,
	})
	s.Comandas = append(s.Comandas, entity.Comanda{
		ID: "c1", Customer: "Ana", Status: entity.ComandaPaid,
		Items: []entity.ComandaItem{{
			ProductID: "p1", Name: "Café", Quantity: dec("0.5"),
			UnitPrice: dec("29.90"), LineTotal: dec("14.95"),
		}},
		Total: dec("14.95"), CreatedAt: createdAt, PaidAt: &paidAt,
	})
	s.Loans = append(s.Loans, entity.Loan{
		ID: "l1", Customer: "María", Amount: dec("1000"), InterestRate: dec("10"),
		TotalAmount: dec("1100"), Status: entity.LoanOverdue,
		DueDate: createdAt, CreatedAt: createdAt,
	})

	path := filepath.Join(t.TempDir(), "negocio.json")
	require.NoError(t, snapshot.Save(path, s))

	// Las fechas viajan como ISO-8601
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "2026-08-30T15:04:05Z")

	loaded, err := snapshot.Load(path)
	require.NoError(t, err)

	require.Len(t, loaded.Products, 1)
	require.True(t, dec("3.25").Equal(loaded.Products[0].Quantity), "los decimales sobreviven exactos")
	assert.True(t, createdAt.Equal(loaded.Products[0].CreatedAt))

	require.Len(t, loaded.Comandas, 1)
	require.NotNil(t, loaded.Comandas[0].PaidAt)
	assert.True(t, paidAt.Equal(*loaded.Comandas[0].PaidAt))
	assert.Equal(t, entity.ComandaPaid, loaded.Comandas[0].Status)
	require.True(t, dec("14.95").Equal(loaded.Comandas[0].Items[0].LineTotal))

	assert.Equal(t, entity.LoanOverdue, loaded.Loans[0].Status, "los estados derivados también persisten")
}

func TestLoad_ArchivoInexistenteArrancaVacio(t *testing.T) {
	loaded, err := snapshot.Load(filepath.Join(t.TempDir(), "no-existe.json"))
	require.NoError(t, err, "primer arranque: no es un error")
	assert.Empty(t, loaded.Products)
	assert.Empty(t, loaded.Sales)
}

func TestLoad_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "negocio.json")
	require.NoError(t, os.WriteFile(path, []byte("{esto no es json"), 0o644))

	_, err := snapshot.Load(path)
	require.Error(t, err, "un snapshot corrupto se reporta, no se pisa en silencio")
}

func TestSave_NoDejaTemporales(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "negocio.json")
	require.NoError(t, snapshot.Save(path, store.New()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "solo queda el archivo final; el temporal se renombró")
	assert.Equal(t, "negocio.json", entries[0].Name())
}

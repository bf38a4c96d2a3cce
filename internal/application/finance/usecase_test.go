package finance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/negocio-core/internal/application/finance"
	"github.com/jhoicas/negocio-core/internal/domain"
	"github.com/jhoicas/negocio-core/internal/infrastructure/memory"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateEntry_Validaciones(t *testing.T) {
	uc := finance.NewUseCase(memory.New(), fixedNow)

	_, err := uc.CreateEntry(finance.MovementInput{Name: "", Amount: dec("10"), Date: testNow})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateEntry(finance.MovementInput{Name: "Aporte", Amount: dec("0"), Date: testNow})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "el monto debe ser estrictamente positivo")

	_, err = uc.CreateEntry(finance.MovementInput{Name: "Aporte", Amount: dec("10")})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "falta la fecha efectiva")
}

func TestEntry_CicloCompleto(t *testing.T) {
	st := memory.New()
	uc := finance.NewUseCase(st, fixedNow)

	e, err := uc.CreateEntry(finance.MovementInput{
		Name: "Aporte socio", Amount: dec("500.00"),
		Description: "capital inicial",
		Date:        testNow.AddDate(0, 0, 5), // fechada a futuro: válida, solo no cuenta aún
	})
	require.NoError(t, err)
	assert.Equal(t, testNow, e.CreatedAt)

	updated, err := uc.UpdateEntry(e.ID, finance.MovementInput{
		Name: "Aporte socio", Amount: dec("650.00"), Date: testNow,
	})
	require.NoError(t, err)
	require.True(t, dec("650.00").Equal(updated.Amount))

	require.NoError(t, uc.DeleteEntry(e.ID))
	require.ErrorIs(t, uc.DeleteEntry(e.ID), domain.ErrNotFound)
}

func TestExit_CicloCompleto(t *testing.T) {
	st := memory.New()
	uc := finance.NewUseCase(st, fixedNow)

	x, err := uc.CreateExit(finance.MovementInput{
		Name: "Alquiler", Amount: dec("1200.00"), Date: testNow,
	})
	require.NoError(t, err)

	updated, err := uc.UpdateExit(x.ID, finance.MovementInput{
		Name: "Alquiler + expensas", Amount: dec("1350.00"), Date: testNow,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alquiler + expensas", updated.Name)

	require.NoError(t, uc.DeleteExit(x.ID))
	require.ErrorIs(t, uc.DeleteExit(x.ID), domain.ErrNotFound)

	_, err = uc.UpdateExit("no-existe", finance.MovementInput{Name: "X", Amount: dec("1"), Date: testNow})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

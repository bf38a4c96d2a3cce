package notifications_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/negocio-core/internal/application/notifications"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/domain/store"
	"github.com/jhoicas/negocio-core/internal/infrastructure/memory"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func countKind(ns []entity.Notification, kind entity.NotificationKind) int {
	n := 0
	for _, notif := range ns {
		if notif.Kind == kind {
			n++
		}
	}
	return n
}

func TestScan_StockBajoLimiteInclusivo(t *testing.T) {
	st := memory.New()
	require.NoError(t, st.Update(func(s *store.Snapshot) error {
		s.Products = append(s.Products,
			entity.Product{ID: "p1", Name: "Harina", Unit: entity.UnitKilograms, Quantity: dec("5"), MinQuantity: dec("5")},
			entity.Product{ID: "p2", Name: "Azúcar", Unit: entity.UnitKilograms, Quantity: dec("6"), MinQuantity: dec("5")},
		)
		return nil
	}))
	uc := notifications.NewUseCase(st, fixedNow)

	ns, err := uc.Scan()
	require.NoError(t, err)

	require.Equal(t, 1, countKind(ns, entity.NotificationLowStock), "exactamente en el umbral cuenta; por encima no")
	assert.Contains(t, ns[0].Message, "Harina")
}

func TestScan_RegeneraDesdeCero(t *testing.T) {
	st := memory.New()
	require.NoError(t, st.Update(func(s *store.Snapshot) error {
		s.Products = append(s.Products,
			entity.Product{ID: "p1", Name: "Harina", Unit: entity.UnitKilograms, Quantity: dec("2"), MinQuantity: dec("5")},
		)
		return nil
	}))
	uc := notifications.NewUseCase(st, fixedNow)

	ns, err := uc.Scan()
	require.NoError(t, err)
	require.Equal(t, 1, countKind(ns, entity.NotificationLowStock))

	// El stock se repone: el siguiente escaneo descarta la alerta vieja
	require.NoError(t, st.Update(func(s *store.Snapshot) error {
		s.ProductByID("p1").Quantity = dec("20")
		return nil
	}))
	ns, err = uc.Scan()
	require.NoError(t, err)
	assert.Zero(t, countKind(ns, entity.NotificationLowStock), "las derivadas no se acumulan: se regeneran del estado actual")
}

func TestScan_PrestamoVencidoTransicionaUnaVez(t *testing.T) {
	st := memory.New()
	require.NoError(t, st.Update(func(s *store.Snapshot) error {
		s.Loans = append(s.Loans, entity.Loan{
			ID: "loan-1", Customer: "María",
			Amount: dec("100"), TotalAmount: dec("110"),
			Status:  entity.LoanActive,
			DueDate: testNow.AddDate(0, 0, -1), // venció ayer
		})
		return nil
	}))
	uc := notifications.NewUseCase(st, fixedNow)

	ns, err := uc.Scan()
	require.NoError(t, err)

	l := st.View().LoanByID("loan-1")
	assert.Equal(t, entity.LoanOverdue, l.Status, "ACTIVE con vencimiento ayer pasa a OVERDUE")
	require.Equal(t, 1, countKind(ns, entity.NotificationError))

	// Re-escanear no revierte ni duplica la transición
	ns, err = uc.Scan()
	require.NoError(t, err)
	assert.Equal(t, entity.LoanOverdue, st.View().LoanByID("loan-1").Status, "sigue OVERDUE en escaneos posteriores")
	assert.Equal(t, 1, countKind(ns, entity.NotificationError), "el aviso se regenera, no se acumula")
}

func TestScan_VencimientoHoyNoEsVencido(t *testing.T) {
	st := memory.New()
	require.NoError(t, st.Update(func(s *store.Snapshot) error {
		s.Loans = append(s.Loans, entity.Loan{
			ID: "loan-1", Customer: "Pedro",
			Amount: dec("100"), TotalAmount: dec("105"),
			Status:  entity.LoanActive,
			DueDate: time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC), // hoy más temprano
		})
		return nil
	}))
	uc := notifications.NewUseCase(st, fixedNow)

	_, err := uc.Scan()
	require.NoError(t, err)

	assert.Equal(t, entity.LoanActive, st.View().LoanByID("loan-1").Status,
		"la comparación es solo por día y estricta: vencer hoy no es estar vencido")
}

func TestScan_PrestamoPagadoNoSeExamina(t *testing.T) {
	paidAt := testNow.Add(-time.Hour)
	st := memory.New()
	require.NoError(t, st.Update(func(s *store.Snapshot) error {
		s.Loans = append(s.Loans, entity.Loan{
			ID: "loan-1", Customer: "Ana",
			Amount: dec("100"), TotalAmount: dec("110"),
			Status: entity.LoanPaid, PaidAt: &paidAt,
			DueDate: testNow.AddDate(0, 0, -10),
		})
		return nil
	}))
	uc := notifications.NewUseCase(st, fixedNow)

	ns, err := uc.Scan()
	require.NoError(t, err)

	assert.Equal(t, entity.LoanPaid, st.View().LoanByID("loan-1").Status)
	assert.Zero(t, countKind(ns, entity.NotificationError), "un préstamo pagado nunca genera aviso de vencido")
}

func TestPush_AditivaYSobreviveAlEscaneo(t *testing.T) {
	st := memory.New()
	uc := notifications.NewUseCase(st, fixedNow)

	n, err := uc.Push(entity.NotificationSuccess, "Venta registrada")
	require.NoError(t, err)
	assert.False(t, n.Read)

	ns, err := uc.Scan()
	require.NoError(t, err)
	require.Equal(t, 1, countKind(ns, entity.NotificationSuccess), "las del usuario no participan del re-escaneo")

	require.NoError(t, uc.MarkRead(n.ID))
	found := false
	for _, notif := range st.View().AllNotifications() {
		if notif.ID == n.ID {
			found = true
			assert.True(t, notif.Read)
		}
	}
	assert.True(t, found)
}

package gateway_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/negocio-core/internal/application/analytics"
	"github.com/jhoicas/negocio-core/internal/application/catalog"
	"github.com/jhoicas/negocio-core/internal/application/finance"
	"github.com/jhoicas/negocio-core/internal/application/gateway"
	"github.com/jhoicas/negocio-core/internal/application/loans"
	"github.com/jhoicas/negocio-core/internal/application/sales"
	"github.com/jhoicas/negocio-core/internal/domain"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/infrastructure/memory"
	"github.com/jhoicas/negocio-core/pkg/logger"
	"github.com/jhoicas/negocio-core/pkg/money"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, expected string, got decimal.Decimal, msg string) {
	t.Helper()
	require.True(t, dec(expected).Equal(got), "%s: esperado %s, obtenido %s", msg, expected, got)
}

func newGateway(t *testing.T) *gateway.Gateway {
	t.Helper()
	return gateway.New(memory.New(), logger.Nop(), nil, fixedNow)
}

func TestEventos_DevuelvenVistaAgregadaYNotificaciones(t *testing.T) {
	gw := newGateway(t)

	p, res, err := gw.CreateProduct(catalog.ProductInput{
		Name: "Pan", Unit: entity.UnitUnits,
		Quantity: dec("3"), CostPrice: dec("1.00"), SalePrice: dec("2.00"), MinQuantity: dec("5"),
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	// El alta dejó el producto por debajo del mínimo: el evento ya trae la alerta
	assert.Equal(t, 1, res.Dashboard.LowStockCount)
	found := false
	for _, n := range res.Notifications {
		if n.Kind == entity.NotificationLowStock {
			found = true
		}
	}
	assert.True(t, found, "el re-escaneo corre antes de responder el evento")

	// Vender actualiza los agregados en la misma respuesta
	sale, res, err := gw.RecordSale(sales.RecordSaleInput{
		Items:         []sales.LineInput{{ProductID: p.ID, Quantity: dec("1")}},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assertDecimal(t, "2.00", sale.Total, "venta a precio de catálogo")
	assertDecimal(t, "2.00", res.Dashboard.Revenue, "ingresos ya recalculados")
	assertDecimal(t, "1.00", res.Dashboard.NetProfit, "(2.00 - 1.00) × 1")
	assertDecimal(t, "50.00", res.Dashboard.ProfitMargin, "margen sobre ingresos")
}

func TestComandaCicloCompletoViaGateway(t *testing.T) {
	gw := newGateway(t)
	p, _, err := gw.CreateProduct(catalog.ProductInput{
		Name: "Cerveza", Unit: entity.UnitUnits,
		Quantity: dec("50"), CostPrice: dec("4.90"), SalePrice: dec("8.40"), MinQuantity: dec("5"),
	})
	require.NoError(t, err)

	c, _, err := gw.CreateComanda("Carlos")
	require.NoError(t, err)
	_, _, err = gw.AddComandaItems(c.ID, []sales.LineInput{{ProductID: p.ID, Quantity: dec("1")}})
	require.NoError(t, err)

	sale, res, err := gw.PayComanda(c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPix, sale.PaymentMethod)
	// Los dos libros suman cada uno por su lado: venta sintetizada + comanda pagada
	assertDecimal(t, "16.80", res.Dashboard.Revenue, "8.40 del libro de ventas + 8.40 del de comandas")

	_, _, err = gw.PayComanda(c.ID)
	require.ErrorIs(t, err, domain.ErrConflict, "re-pagar se rechaza en la fachada también")
}

func TestPrestamoYFinanzasViaGateway(t *testing.T) {
	gw := newGateway(t)

	l, _, err := gw.CreateLoan(loans.LoanInput{
		Customer: "María", Amount: dec("1000"), InterestRate: dec("10"),
		DueDate: testNow.AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	_, res, err := gw.PayLoan(l.ID)
	require.NoError(t, err)
	assertDecimal(t, "1100.00", res.Dashboard.Revenue, "préstamo pagado suma su total")
	assertDecimal(t, "100.00", res.Dashboard.NetProfit, "solo el interés es ganancia")

	_, res, err = gw.CreateExit(finance.MovementInput{
		Name: "Alquiler", Amount: dec("40.00"), Date: testNow,
	})
	require.NoError(t, err)
	assertDecimal(t, "60.00", res.Dashboard.NetProfit, "100 - 40 de gastos")
}

func TestRunConsistencyScan_TransicionaPrestamos(t *testing.T) {
	gw := newGateway(t)
	l, _, err := gw.CreateLoan(loans.LoanInput{
		Customer: "Pedro", Amount: dec("500"), InterestRate: dec("5"),
		DueDate: testNow.AddDate(0, 0, -2),
	})
	require.NoError(t, err)

	// CreateLoan ya corre el escaneo, así que el préstamo nació y venció ahí
	res, err := gw.RunConsistencyScan()
	require.NoError(t, err)

	errors := 0
	for _, n := range res.Notifications {
		if n.Kind == entity.NotificationError {
			errors++
		}
	}
	assert.Equal(t, 1, errors, "un solo aviso de vencido por préstamo")

	paid, _, err := gw.PayLoan(l.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LoanPaid, paid.Status, "OVERDUE puede pagarse")
}

func TestReport_VentanasDesdeElGateway(t *testing.T) {
	gw := newGateway(t)
	p, _, err := gw.CreateProduct(catalog.ProductInput{
		Name: "Pan", Unit: entity.UnitUnits,
		Quantity: dec("100"), CostPrice: dec("1.00"), SalePrice: dec("2.00"), MinQuantity: dec("1"),
	})
	require.NoError(t, err)
	_, _, err = gw.RecordSale(sales.RecordSaleInput{
		Items:         []sales.LineInput{{ProductID: p.ID, Quantity: dec("4")}},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	r := gw.Report(analytics.Window7Days)
	assert.Equal(t, "7d", r.Window)
	assertDecimal(t, "8.00", r.Revenue, "la venta de hoy entra en 7d")
	require.Len(t, r.TopItems, 1)
	assert.Equal(t, p.ID, r.TopItems[0].ItemID)
}

func TestDashboard_MontosFormateados(t *testing.T) {
	formatter, err := money.NewFormatter("pt-BR", "BRL")
	require.NoError(t, err)
	gw := gateway.New(memory.New(), logger.Nop(), formatter, fixedNow)

	d := gw.Dashboard()
	assert.NotEmpty(t, d.RevenueDisplay, "con formatter los montos salen formateados")
	assert.NotEmpty(t, d.NetProfitDisplay)
}

func TestRestore_ReemplazaElEstado(t *testing.T) {
	gw := newGateway(t)
	_, _, err := gw.CreateComanda("Carlos")
	require.NoError(t, err)

	otro := newGateway(t)
	otro.Restore(gw.CurrentSnapshot())

	require.Len(t, otro.CurrentSnapshot().Comandas, 1, "el snapshot restaurado trae las comandas")
}

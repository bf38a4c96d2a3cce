package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/negocio-core/internal/application/analytics"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/domain/store"
	"github.com/jhoicas/negocio-core/internal/infrastructure/memory"
)

func TestReport_MemoizaPorVersion(t *testing.T) {
	st := memory.New()
	st.Replace(productSaleSnapshot())
	uc := analytics.NewUseCase(st)

	first := uc.Report(analytics.Window30Days, testNow)
	second := uc.Report(analytics.Window30Days, testNow)
	assert.Equal(t, first, second, "mismo snapshot y día: resultado idéntico (memo o no)")

	// Una mutación invalida el memo: el reporte refleja la venta nueva
	err := st.Update(func(s *store.Snapshot) error {
		s.Sales = append(s.Sales, entity.Sale{
			ID: "sale-2", Total: dec("5.00"), NetAmount: dec("5.00"),
			PaymentMethod: entity.PaymentPix, CreatedAt: testNow,
		})
		return nil
	})
	require.NoError(t, err)

	third := uc.Report(analytics.Window30Days, testNow)
	assertDecimal(t, "15.40", third.Revenue, "10.40 + 5.00 tras invalidar el memo")
}

func TestDashboard_EsVistaHistorica(t *testing.T) {
	st := memory.New()
	st.Replace(productSaleSnapshot())
	uc := analytics.NewUseCase(st)

	d := uc.Dashboard(testNow)
	assertDecimal(t, "10.40", d.Revenue, "dashboard usa la ventana histórica completa")
}

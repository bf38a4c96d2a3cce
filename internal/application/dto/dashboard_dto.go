package dto

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
)

// DashboardDTO KPIs financieros para una ventana dada.
//
// Fórmulas canónicas (una sola implementación para dashboard y reportes):
//
//	Ingresos  = Σ venta.total + Σ comanda-pagada.total + Σ préstamo-pagado.total
//	            + Σ entrada.monto con fecha ya llegada
//	Costos    = Σ líneas de producto (costo vigente × cantidad, 0 si el
//	            producto no existe) + capital de préstamos pagados
//	Bruta     = Ingresos - Costos
//	Gastos    = Σ salida.monto con fecha ya llegada
//	Neta      = Bruta - Gastos
//	Margen    = Neta / Ingresos × 100 (0 cuando Ingresos = 0)
type DashboardDTO struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	Expenses     decimal.Decimal `json:"expenses"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"` // porcentaje

	// Productos en o por debajo del umbral mínimo (límite inclusivo).
	LowStockCount int `json:"low_stock_count"`

	// Montos formateados para mostrar (moneda y locale de configuración).
	// Solo en la frontera de presentación; los cálculos usan los decimales.
	RevenueDisplay   string `json:"revenue_display,omitempty"`
	NetProfitDisplay string `json:"net_profit_display,omitempty"`
}

// TopItemDTO agrupado de un producto o servicio en el ranking de ventas.
type TopItemDTO struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	IsService bool            `json:"is_service"`
	Quantity  decimal.Decimal `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// ReportDTO reporte de una ventana (7/30/90 días o histórico completo).
type ReportDTO struct {
	Window string `json:"window"`
	DashboardDTO
	TopItems []TopItemDTO `json:"top_items"`
}

// EventResult respuesta de cada evento del gateway: la vista agregada
// recalculada más la lista de notificaciones vigente.
type EventResult struct {
	Dashboard     DashboardDTO          `json:"dashboard"`
	Notifications []entity.Notification `json:"notifications"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComandaStatus estado de una comanda.
type ComandaStatus string

const (
	ComandaOpen ComandaStatus = "OPEN"
	ComandaPaid ComandaStatus = "PAID" // terminal
)

// ComandaItem línea de una comanda. Mismo snapshot de precio que SaleItem;
// la ganancia de línea se calcula recién al pagar, cuando se sintetiza la venta.
type ComandaItem struct {
	ProductID string          `json:"product_id,omitempty"`
	ServiceID string          `json:"service_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Comanda cuenta corriente abierta de un cliente que acumula consumos hasta
// liquidarse. Solo admite items mientras está OPEN. La transición OPEN→PAID es
// terminal y sintetiza exactamente una venta PIX (las comandas siempre se
// liquidan por PIX en este modelo); comandas y ventas son dos libros que deben
// coincidir en los ingresos históricos.
type Comanda struct {
	ID        string          `json:"id"`
	Customer  string          `json:"customer"`
	Status    ComandaStatus   `json:"status"`
	Items     []ComandaItem   `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
}

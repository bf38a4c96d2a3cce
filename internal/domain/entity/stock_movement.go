package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementIn  = "IN"  // entrada
	MovementOut = "OUT" // salida
)

// StockMovement movimiento de inventario. Bitácora append-only: nunca se
// edita ni se borra, aunque el producto referenciado desaparezca.
type StockMovement struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"` // IN, OUT
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"` // ej. "venta <id>", "ajuste manual"
	CreatedAt time.Time       `json:"created_at"`
}

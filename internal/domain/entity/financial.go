package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialEntry ingreso manual (aporte, venta externa, etc.).
//
// Date es la fecha efectiva y funciona como compuerta: el monto solo cuenta en
// los agregados cuando la fecha ya llegó. Una entrada fechada a futuro
// contribuye cero hasta ese día.
type FinancialEntry struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"` // > 0
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FinancialExit egreso manual (alquiler, compras, servicios). Misma compuerta
// de fecha que FinancialEntry.
type FinancialExit struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"` // > 0
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

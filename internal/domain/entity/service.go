package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service representa un servicio ofrecido. Sin stock ni costo:
// el precio completo es ganancia (margen 100%).
type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"` // debe ser > 0
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

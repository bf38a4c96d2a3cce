package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitMeasure unidad de medida del producto.
type UnitMeasure string

const (
	UnitKilograms UnitMeasure = "kg" // masa
	UnitLiters    UnitMeasure = "l"  // volumen
	UnitMeters    UnitMeasure = "m"  // longitud
	UnitUnits     UnitMeasure = "un" // conteo
)

// Product representa un producto del catálogo con su stock y precios.
//
// Regla de negocio: SalePrice > CostPrice se exige al crear/editar, pero los
// datos históricos que la violan siguen siendo representables (pueden existir
// por ediciones antiguas). Quantity puede quedar negativa por sobreventa; el
// mínimo de cero solo se exige en escrituras nuevas.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Unit        UnitMeasure     `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	MinQuantity decimal.Decimal `json:"min_quantity"` // umbral de alerta de stock bajo
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsLowStock indica si el producto está en o por debajo del umbral mínimo.
// El límite es inclusivo: quantity == min_quantity cuenta como stock bajo.
func (p Product) IsLowStock() bool {
	return p.Quantity.LessThanOrEqual(p.MinQuantity)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod método de pago de una venta.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentPix    PaymentMethod = "PIX"
	PaymentCard   PaymentMethod = "CARD"
	PaymentCredit PaymentMethod = "CREDIT" // fiado
)

// Valid indica si el método de pago es uno de los conocidos.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentPix, PaymentCard, PaymentCredit:
		return true
	}
	return false
}

// SaleItem línea de una venta. Referencia un producto O un servicio, nunca
// ambos. UnitPrice es un snapshot del precio al momento de la venta: ediciones
// posteriores del catálogo no alteran ventas históricas.
type SaleItem struct {
	ProductID  string          `json:"product_id,omitempty"`
	ServiceID  string          `json:"service_id,omitempty"`
	Name       string          `json:"name"` // nombre al momento de la venta
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
	LineProfit decimal.Decimal `json:"line_profit"`
}

// Sale es un asiento del libro de ventas. Inmutable una vez registrada
// (append-only); correcciones se hacen con asientos nuevos, nunca editando.
//
// CardFeeRate/CardFeeAmount solo aplican a ventas con tarjeta: la comisión la
// absorbe el negocio, por eso NetAmount = Total - CardFeeAmount. Los agregados
// usan Total; la comisión es informativa sobre el registro.
type Sale struct {
	ID            string           `json:"id"`
	Items         []SaleItem       `json:"items"`
	Total         decimal.Decimal  `json:"total"`
	Profit        decimal.Decimal  `json:"profit"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	CardFeeRate   *decimal.Decimal `json:"card_fee_rate,omitempty"`   // porcentaje, ej. 3.5
	CardFeeAmount *decimal.Decimal `json:"card_fee_amount,omitempty"` // Total * rate / 100
	NetAmount     decimal.Decimal  `json:"net_amount"`
	CreatedAt     time.Time        `json:"created_at"`
}

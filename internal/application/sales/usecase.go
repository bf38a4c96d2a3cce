// Package sales registra ventas: asientos inmutables del libro de ventas más
// el efecto colateral de descontar stock y dejar un movimiento de auditoría
// por cada línea de producto.
package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/negocio-core/internal/domain"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/domain/store"
	"github.com/jhoicas/negocio-core/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// UseCase caso de uso de ventas.
type UseCase struct {
	store store.Store
	log   *logger.Logger
	now   func() time.Time
}

// NewUseCase construye el caso de uso. now permite fijar el reloj en tests.
func NewUseCase(s store.Store, log *logger.Logger, now func() time.Time) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{store: s, log: log, now: now}
}

// LineInput línea de venta o de comanda. Referencia un producto O un
// servicio. Name y UnitPrice son opcionales: si faltan se toman del catálogo
// vigente (snapshot de precio al momento de la venta).
type LineInput struct {
	ProductID string
	ServiceID string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
}

func (in LineInput) validate() error {
	if (in.ProductID == "") == (in.ServiceID == "") {
		return fmt.Errorf("%w: la línea debe referenciar un producto o un servicio, no ambos", domain.ErrInvalidInput)
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: el precio unitario no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// RecordSaleInput datos para registrar una venta.
type RecordSaleInput struct {
	Items         []LineInput
	PaymentMethod entity.PaymentMethod
	CardFeeRate   *decimal.Decimal // solo ventas con tarjeta
}

// RecordSale registra una venta. Atómicamente: arma las líneas con snapshot de
// precio, calcula la ganancia por línea (producto: (precio - costo) × cantidad;
// servicio: el total de la línea), descuenta stock de cada producto
// referenciado y deja un StockMovement OUT por línea de producto.
//
// Si una línea referencia un producto que ya no existe, el descuento de stock
// de ESA línea se omite y la venta igual se registra; la omisión se loguea
// porque puede desincronizar el stock silenciosamente.
func (uc *UseCase) RecordSale(in RecordSaleInput) (*entity.Sale, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: venta sin líneas", domain.ErrInvalidInput)
	}
	if !in.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: método de pago desconocido %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	for _, line := range in.Items {
		if err := line.validate(); err != nil {
			return nil, err
		}
	}
	if in.CardFeeRate != nil {
		if in.PaymentMethod != entity.PaymentCard {
			return nil, fmt.Errorf("%w: la comisión solo aplica a ventas con tarjeta", domain.ErrInvalidInput)
		}
		if in.CardFeeRate.IsNegative() || in.CardFeeRate.GreaterThan(oneHundred) {
			return nil, fmt.Errorf("%w: comisión de tarjeta fuera de rango", domain.ErrInvalidInput)
		}
	}

	now := uc.now()
	var sale entity.Sale
	var skipped []string
	err := uc.store.Update(func(s *store.Snapshot) error {
		items, err := BuildItems(s, in.Items)
		if err != nil {
			return err
		}

		total := decimal.Zero
		profit := decimal.Zero
		for _, it := range items {
			total = total.Add(it.LineTotal)
			profit = profit.Add(it.LineProfit)
		}

		sale = entity.Sale{
			ID:            uuid.New().String(),
			Items:         items,
			Total:         total,
			Profit:        profit,
			PaymentMethod: in.PaymentMethod,
			NetAmount:     total,
			CreatedAt:     now,
		}
		if in.PaymentMethod == entity.PaymentCard && in.CardFeeRate != nil {
			rate := *in.CardFeeRate
			fee := total.Mul(rate).Div(oneHundred).Round(2)
			sale.CardFeeRate = &rate
			sale.CardFeeAmount = &fee
			sale.NetAmount = total.Sub(fee)
		}

		skipped = DeductStock(s, StockLines(items), fmt.Sprintf("venta %s", sale.ID), now)
		s.Sales = append(s.Sales, sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, id := range skipped {
		uc.log.Warn().Str("product_id", id).Str("sale_id", sale.ID).
			Msg("línea de venta referencia un producto inexistente; descuento de stock omitido")
	}
	return &sale, nil
}

// BuildItems resuelve las líneas contra el catálogo del snapshot: completa
// nombre y precio si faltan y calcula total y ganancia por línea.
//
// Ganancia por línea: producto → (precio unitario - costo vigente) × cantidad;
// si el producto no existe, la línea entera cuenta como ganancia (costo cero);
// servicio → el total de la línea (los servicios no tienen base de costo).
func BuildItems(s *store.Snapshot, lines []LineInput) ([]entity.SaleItem, error) {
	items := make([]entity.SaleItem, 0, len(lines))
	for _, line := range lines {
		it := entity.SaleItem{
			ProductID: line.ProductID,
			ServiceID: line.ServiceID,
			Name:      line.Name,
			Quantity:  line.Quantity,
		}

		switch {
		case line.ProductID != "":
			p := s.ProductByID(line.ProductID)
			if p != nil {
				if it.Name == "" {
					it.Name = p.Name
				}
				if line.UnitPrice == nil {
					it.UnitPrice = p.SalePrice
				} else {
					it.UnitPrice = *line.UnitPrice
				}
				it.LineTotal = it.UnitPrice.Mul(line.Quantity)
				it.LineProfit = it.UnitPrice.Sub(p.CostPrice).Mul(line.Quantity)
			} else {
				if line.UnitPrice == nil {
					return nil, fmt.Errorf("producto %s sin precio: %w", line.ProductID, domain.ErrNotFound)
				}
				it.UnitPrice = *line.UnitPrice
				it.LineTotal = it.UnitPrice.Mul(line.Quantity)
				it.LineProfit = it.LineTotal // costo desconocido: degrada a costo cero
			}
		case line.ServiceID != "":
			sv := s.ServiceByID(line.ServiceID)
			if sv != nil {
				if it.Name == "" {
					it.Name = sv.Name
				}
				if line.UnitPrice == nil {
					it.UnitPrice = sv.Price
				} else {
					it.UnitPrice = *line.UnitPrice
				}
			} else {
				if line.UnitPrice == nil {
					return nil, fmt.Errorf("servicio %s sin precio: %w", line.ServiceID, domain.ErrNotFound)
				}
				it.UnitPrice = *line.UnitPrice
			}
			it.LineTotal = it.UnitPrice.Mul(line.Quantity)
			it.LineProfit = it.LineTotal // margen 100%
		}

		items = append(items, it)
	}
	return items, nil
}

// StockLine par producto-cantidad para el descuento de stock.
type StockLine struct {
	ProductID string
	Quantity  decimal.Decimal
}

// StockLines extrae las líneas de producto de los items de una venta.
func StockLines(items []entity.SaleItem) []StockLine {
	out := make([]StockLine, 0, len(items))
	for _, it := range items {
		if it.ProductID != "" {
			out = append(out, StockLine{ProductID: it.ProductID, Quantity: it.Quantity})
		}
	}
	return out
}

// DeductStock descuenta stock por cada línea y deja un StockMovement OUT con
// el motivo dado. Las líneas cuyo producto no existe se omiten sin fallar y se
// devuelven sus ids. El descuento no se acota en cero: la sobreventa puede
// dejar cantidad negativa (la regla de no negatividad aplica a escrituras del
// catálogo, no al libro de ventas).
func DeductStock(s *store.Snapshot, lines []StockLine, reason string, now time.Time) (skipped []string) {
	for _, line := range lines {
		p := s.ProductByID(line.ProductID)
		if p == nil {
			skipped = append(skipped, line.ProductID)
			continue
		}
		p.Quantity = p.Quantity.Sub(line.Quantity)
		p.UpdatedAt = now
		s.StockMovements = append(s.StockMovements, entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: line.ProductID,
			Type:      entity.MovementOut,
			Quantity:  line.Quantity,
			Reason:    reason,
			CreatedAt: now,
		})
	}
	return skipped
}

// Package comandas maneja el ciclo de vida de las comandas: cuentas abiertas
// por cliente que acumulan consumos hasta liquidarse. Al pagarse, cada comanda
// sintetiza exactamente una venta PIX para que el libro de ventas y el de
// comandas coincidan en los ingresos históricos.
package comandas

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/negocio-core/internal/application/sales"
	"github.com/jhoicas/negocio-core/internal/domain"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/domain/store"
	"github.com/jhoicas/negocio-core/pkg/logger"
)

// UseCase caso de uso de comandas.
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

// Create abre una comanda vacía para el cliente.
func (uc *UseCase) Create(customer string) (*entity.Comanda, error) {
	if customer == "" {
		return nil, fmt.Errorf("%w: nombre de cliente vacío", domain.ErrInvalidInput)
	}
	c := entity.Comanda{
		ID:        uuid.New().String(),
		Customer:  customer,
		Status:    entity.ComandaOpen,
		Total:     decimal.Zero,
		CreatedAt: uc.now(),
	}
	err := uc.store.Update(func(s *store.Snapshot) error {
		s.Comandas = append(s.Comandas, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AddItems agrega líneas a una comanda abierta. El total sube por la suma de
// las líneas nuevas y el stock se descuenta SOLO por esas líneas: las ya
// existentes no se vuelven a descontar.
func (uc *UseCase) AddItems(id string, lines []sales.LineInput) (*entity.Comanda, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: sin líneas que agregar", domain.ErrInvalidInput)
	}

	now := uc.now()
	var updated entity.Comanda
	var skipped []string
	err := uc.store.Update(func(s *store.Snapshot) error {
		c := s.ComandaByID(id)
		if c == nil {
			return fmt.Errorf("comanda %s: %w", id, domain.ErrNotFound)
		}
		if c.Status != entity.ComandaOpen {
			return fmt.Errorf("comanda %s ya pagada: %w", id, domain.ErrConflict)
		}

		items, err := sales.BuildItems(s, lines)
		if err != nil {
			return err
		}

		for _, it := range items {
			c.Items = append(c.Items, entity.ComandaItem{
				ProductID: it.ProductID,
				ServiceID: it.ServiceID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				LineTotal: it.LineTotal,
			})
			c.Total = c.Total.Add(it.LineTotal)
		}

		skipped = sales.DeductStock(s, sales.StockLines(items), fmt.Sprintf("comanda %s", id), now)
		updated = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, pid := range skipped {
		uc.log.Warn().Str("product_id", pid).Str("comanda_id", id).
			Msg("línea de comanda referencia un producto inexistente; descuento de stock omitido")
	}
	return &updated, nil
}

// Pay liquida la comanda: OPEN→PAID (terminal), fija paid_at y sintetiza una
// venta PIX cuyos items espejan los de la comanda. La ganancia por línea se
// calcula igual que en una venta directa, contra el costo vigente del catálogo.
//
// NO descuenta stock: eso ya ocurrió al agregar cada item. Re-pagar una
// comanda PAID se rechaza, garantizando exactamente una venta por comanda.
func (uc *UseCase) Pay(id string) (*entity.Sale, error) {
	now := uc.now()
	var sale entity.Sale
	err := uc.store.Update(func(s *store.Snapshot) error {
		c := s.ComandaByID(id)
		if c == nil {
			return fmt.Errorf("comanda %s: %w", id, domain.ErrNotFound)
		}
		if c.Status != entity.ComandaOpen {
			return fmt.Errorf("comanda %s ya pagada: %w", id, domain.ErrConflict)
		}

		c.Status = entity.ComandaPaid
		paidAt := now
		c.PaidAt = &paidAt

		items := make([]entity.SaleItem, 0, len(c.Items))
		profit := decimal.Zero
		for _, ci := range c.Items {
			it := entity.SaleItem{
				ProductID: ci.ProductID,
				ServiceID: ci.ServiceID,
				Name:      ci.Name,
				Quantity:  ci.Quantity,
				UnitPrice: ci.UnitPrice,
				LineTotal: ci.LineTotal,
			}
			if ci.ProductID != "" {
				if p := s.ProductByID(ci.ProductID); p != nil {
					it.LineProfit = ci.UnitPrice.Sub(p.CostPrice).Mul(ci.Quantity)
				} else {
					it.LineProfit = ci.LineTotal // producto borrado: costo cero
				}
			} else {
				it.LineProfit = ci.LineTotal // servicio: margen 100%
			}
			profit = profit.Add(it.LineProfit)
			items = append(items, it)
		}

		sale = entity.Sale{
			ID:            uuid.New().String(),
			Items:         items,
			Total:         c.Total,
			Profit:        profit,
			PaymentMethod: entity.PaymentPix,
			NetAmount:     c.Total,
			CreatedAt:     now,
		}
		s.Sales = append(s.Sales, sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("comanda_id", id).Str("sale_id", sale.ID).
		Msg("comanda liquidada, venta PIX sintetizada")
	return &sale, nil
}

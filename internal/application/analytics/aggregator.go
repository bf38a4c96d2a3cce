// Package analytics es el motor de agregación: recalcula los números del
// dashboard y de los reportes desde el snapshot completo en cada cambio, sin
// contabilidad incremental. Funciones puras de (snapshot, ventana, ahora);
// correr dos veces sobre el mismo snapshot da resultados idénticos.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/negocio-core/internal/application/dto"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/domain/store"
)

var oneHundred = decimal.NewFromInt(100)

// Window ventana de cálculo. Cada colección se filtra por SU propia fecha
// relevante (venta.created_at, comanda.paid_at, préstamo.paid_at,
// entrada/salida.fecha): "cuándo contó" difiere por tipo de registro.
type Window int

const (
	WindowAll Window = iota
	Window7Days
	Window30Days
	Window90Days
)

// String etiqueta legible de la ventana.
func (w Window) String() string {
	switch w {
	case Window7Days:
		return "7d"
	case Window30Days:
		return "30d"
	case Window90Days:
		return "90d"
	default:
		return "all"
	}
}

// cutoff devuelve el inicio de la ventana. ok=false para histórico completo.
func (w Window) cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case Window7Days:
		return now.AddDate(0, 0, -7), true
	case Window30Days:
		return now.AddDate(0, 0, -30), true
	case Window90Days:
		return now.AddDate(0, 0, -90), true
	default:
		return time.Time{}, false
	}
}

// inWindow indica si la fecha entra en la ventana que arranca en cutoff.
func inWindow(t, cutoff time.Time, bounded bool) bool {
	return !bounded || !t.Before(cutoff)
}

// startOfDay trunca a las 00:00 locales.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dateArrived compuerta de fecha: true si la fecha efectiva ya llegó
// (comparación solo por día; un registro fechado hoy cuenta).
func dateArrived(date, now time.Time) bool {
	return !startOfDay(date).After(startOfDay(now))
}

// Totals calcula los KPIs de la ventana siguiendo las fórmulas canónicas del
// DTO. La búsqueda de costo usa el catálogo vigente: un producto borrado
// degrada a costo cero (la línea entera queda como ganancia) en lugar de
// fallar.
func Totals(snap *store.Snapshot, w Window, now time.Time) dto.DashboardDTO {
	cutoff, bounded := w.cutoff(now)

	revenue := decimal.Zero
	cost := decimal.Zero

	for _, sale := range snap.Sales {
		if !inWindow(sale.CreatedAt, cutoff, bounded) {
			continue
		}
		revenue = revenue.Add(sale.Total)
		cost = cost.Add(saleItemsCost(snap, sale.Items))
	}

	for _, c := range snap.Comandas {
		if c.Status != entity.ComandaPaid || c.PaidAt == nil || !inWindow(*c.PaidAt, cutoff, bounded) {
			continue
		}
		revenue = revenue.Add(c.Total)
		cost = cost.Add(comandaItemsCost(snap, c.Items))
	}

	for _, l := range snap.Loans {
		if l.Status != entity.LoanPaid || l.PaidAt == nil || !inWindow(*l.PaidAt, cutoff, bounded) {
			continue
		}
		revenue = revenue.Add(l.TotalAmount)
		cost = cost.Add(l.Amount) // el capital es costo; el interés queda como ganancia
	}

	for _, e := range snap.Entries {
		if !dateArrived(e.Date, now) || !inWindow(e.Date, cutoff, bounded) {
			continue
		}
		revenue = revenue.Add(e.Amount)
	}

	expenses := decimal.Zero
	for _, e := range snap.Exits {
		if !dateArrived(e.Date, now) || !inWindow(e.Date, cutoff, bounded) {
			continue
		}
		expenses = expenses.Add(e.Amount)
	}

	gross := revenue.Sub(cost)
	net := gross.Sub(expenses)
	margin := decimal.Zero
	if !revenue.IsZero() {
		margin = net.Div(revenue).Mul(oneHundred)
	}

	lowStock := 0
	for _, p := range snap.Products {
		if p.IsLowStock() {
			lowStock++
		}
	}

	return dto.DashboardDTO{
		Revenue:       revenue.Round(2),
		Cost:          cost.Round(2),
		GrossProfit:   gross.Round(2),
		Expenses:      expenses.Round(2),
		NetProfit:     net.Round(2),
		ProfitMargin:  margin.Round(2),
		LowStockCount: lowStock,
	}
}

func saleItemsCost(snap *store.Snapshot, items []entity.SaleItem) decimal.Decimal {
	cost := decimal.Zero
	for _, it := range items {
		if it.ProductID == "" {
			continue // servicios sin base de costo
		}
		if p := snap.ProductByID(it.ProductID); p != nil {
			cost = cost.Add(p.CostPrice.Mul(it.Quantity))
		}
		// producto borrado: costo cero para la línea
	}
	return cost
}

func comandaItemsCost(snap *store.Snapshot, items []entity.ComandaItem) decimal.Decimal {
	cost := decimal.Zero
	for _, it := range items {
		if it.ProductID == "" {
			continue
		}
		if p := snap.ProductByID(it.ProductID); p != nil {
			cost = cost.Add(p.CostPrice.Mul(it.Quantity))
		}
	}
	return cost
}

// TopItems agrupa las líneas de ventas y comandas pagadas de la ventana por
// producto/servicio, sumando cantidad e ingreso. Orden descendente por
// cantidad; los empates conservan el orden de primera aparición. Devuelve a lo
// sumo limit grupos.
func TopItems(snap *store.Snapshot, w Window, now time.Time, limit int) []dto.TopItemDTO {
	cutoff, bounded := w.cutoff(now)

	index := map[string]int{}
	var groups []dto.TopItemDTO

	accumulate := func(itemID, name string, isService bool, qty, lineTotal decimal.Decimal) {
		i, ok := index[itemID]
		if !ok {
			i = len(groups)
			index[itemID] = i
			groups = append(groups, dto.TopItemDTO{
				ItemID:    itemID,
				Name:      name,
				IsService: isService,
				Quantity:  decimal.Zero,
				Revenue:   decimal.Zero,
			})
		}
		groups[i].Quantity = groups[i].Quantity.Add(qty)
		groups[i].Revenue = groups[i].Revenue.Add(lineTotal)
	}

	for _, sale := range snap.Sales {
		if !inWindow(sale.CreatedAt, cutoff, bounded) {
			continue
		}
		for _, it := range sale.Items {
			if it.ProductID != "" {
				accumulate(it.ProductID, it.Name, false, it.Quantity, it.LineTotal)
			} else {
				accumulate(it.ServiceID, it.Name, true, it.Quantity, it.LineTotal)
			}
		}
	}
	for _, c := range snap.Comandas {
		if c.Status != entity.ComandaPaid || c.PaidAt == nil || !inWindow(*c.PaidAt, cutoff, bounded) {
			continue
		}
		for _, it := range c.Items {
			if it.ProductID != "" {
				accumulate(it.ProductID, it.Name, false, it.Quantity, it.LineTotal)
			} else {
				accumulate(it.ServiceID, it.Name, true, it.Quantity, it.LineTotal)
			}
		}
	}

	// SliceStable preserva el orden de primera aparición entre empates
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Quantity.GreaterThan(groups[b].Quantity)
	})
	if len(groups) > limit {
		groups = groups[:limit]
	}
	for i := range groups {
		groups[i].Revenue = groups[i].Revenue.Round(2)
	}
	return groups
}

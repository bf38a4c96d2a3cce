// Package gateway es la puerta de entrada de eventos del negocio: un método
// por tipo de evento, acceso serializado (un solo escritor lógico) y, tras
// cada mutación, la vista agregada recalculada más la lista de notificaciones
// vigente — lo único que la capa de presentación necesita para re-renderizar.
package gateway

import (
	"sync"
	"time"

	"github.com/jhoicas/negocio-core/internal/application/analytics"
	"github.com/jhoicas/negocio-core/internal/application/catalog"
	"github.com/jhoicas/negocio-core/internal/application/comandas"
	"github.com/jhoicas/negocio-core/internal/application/dto"
	"github.com/jhoicas/negocio-core/internal/application/finance"
	"github.com/jhoicas/negocio-core/internal/application/loans"
	"github.com/jhoicas/negocio-core/internal/application/notifications"
	"github.com/jhoicas/negocio-core/internal/application/sales"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/domain/store"
	"github.com/jhoicas/negocio-core/pkg/logger"
	"github.com/jhoicas/negocio-core/pkg/money"
)

// Gateway fachada de acceso serializado. El mutex garantiza un escritor a la
// vez; si alguna vez se expone tras una API con múltiples escritores, este es
// el punto donde agregar cola o chequeos de versión por entidad para
// preservar la síntesis comanda→venta exactamente-una-vez.
type Gateway struct {
	mu        sync.Mutex
	store     store.Store
	log       *logger.Logger
	formatter *money.Formatter // opcional; nil omite los campos formateados

	catalog       *catalog.UseCase
	sales         *sales.UseCase
	comandas      *comandas.UseCase
	loans         *loans.UseCase
	finance       *finance.UseCase
	analytics     *analytics.UseCase
	notifications *notifications.UseCase

	now func() time.Time
}

// New construye el gateway con todos los casos de uso cableados sobre el
// mismo store. formatter puede ser nil. now permite fijar el reloj en tests.
func New(s store.Store, log *logger.Logger, formatter *money.Formatter, now func() time.Time) *Gateway {
	if now == nil {
		now = time.Now
	}
	return &Gateway{
		store:         s,
		log:           log,
		formatter:     formatter,
		catalog:       catalog.NewUseCase(s, now),
		sales:         sales.NewUseCase(s, log, now),
		comandas:      comandas.NewUseCase(s, log, now),
		loans:         loans.NewUseCase(s, now),
		finance:       finance.NewUseCase(s, now),
		analytics:     analytics.NewUseCase(s),
		notifications: notifications.NewUseCase(s, now),
		now:           now,
	}
}

// dashboard vista agregada histórica con montos formateados si hay formatter.
func (g *Gateway) dashboard() dto.DashboardDTO {
	d := g.analytics.Dashboard(g.now())
	if g.formatter != nil {
		d.RevenueDisplay = g.formatter.Format(d.Revenue)
		d.NetProfitDisplay = g.formatter.Format(d.NetProfit)
	}
	return d
}

// result arma la respuesta estándar de un evento. rescan=true para eventos
// que tocan stock o préstamos: el derivador se corre antes de leer la lista.
func (g *Gateway) result(rescan bool) (*dto.EventResult, error) {
	var notifs []entity.Notification
	if rescan {
		var err error
		notifs, err = g.notifications.Scan()
		if err != nil {
			return nil, err
		}
	} else {
		notifs = g.store.View().AllNotifications()
	}
	return &dto.EventResult{Dashboard: g.dashboard(), Notifications: notifs}, nil
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

// CreateProduct da de alta un producto.
func (g *Gateway) CreateProduct(in catalog.ProductInput) (*entity.Product, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, err := g.catalog.CreateProduct(in)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(true)
	return p, res, err
}

// UpdateProduct edita un producto.
func (g *Gateway) UpdateProduct(id string, in catalog.ProductInput) (*entity.Product, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, err := g.catalog.UpdateProduct(id, in)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(true)
	return p, res, err
}

// DeleteProduct elimina un producto.
func (g *Gateway) DeleteProduct(id string) (*dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.catalog.DeleteProduct(id); err != nil {
		return nil, err
	}
	return g.result(true)
}

// CreateService da de alta un servicio.
func (g *Gateway) CreateService(in catalog.ServiceInput) (*entity.Service, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sv, err := g.catalog.CreateService(in)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(false)
	return sv, res, err
}

// UpdateService edita un servicio.
func (g *Gateway) UpdateService(id string, in catalog.ServiceInput) (*entity.Service, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sv, err := g.catalog.UpdateService(id, in)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(false)
	return sv, res, err
}

// DeleteService elimina un servicio.
func (g *Gateway) DeleteService(id string) (*dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.catalog.DeleteService(id); err != nil {
		return nil, err
	}
	return g.result(false)
}

// ── Ventas ───────────────────────────────────────────────────────────────────

// RecordSale registra una venta (con descuento de stock).
func (g *Gateway) RecordSale(in sales.RecordSaleInput) (*entity.Sale, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sale, err := g.sales.RecordSale(in)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(true)
	return sale, res, err
}

// ── Comandas ─────────────────────────────────────────────────────────────────

// CreateComanda abre una comanda para el cliente.
func (g *Gateway) CreateComanda(customer string) (*entity.Comanda, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, err := g.comandas.Create(customer)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(false)
	return c, res, err
}

// AddComandaItems agrega líneas a una comanda abierta (descuenta el stock de
// las líneas nuevas).
func (g *Gateway) AddComandaItems(id string, lines []sales.LineInput) (*entity.Comanda, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, err := g.comandas.AddItems(id, lines)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(true)
	return c, res, err
}

// PayComanda liquida la comanda y devuelve la venta PIX sintetizada.
func (g *Gateway) PayComanda(id string) (*entity.Sale, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sale, err := g.comandas.Pay(id)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(false)
	return sale, res, err
}

// ── Préstamos ────────────────────────────────────────────────────────────────

// CreateLoan da de alta un préstamo.
func (g *Gateway) CreateLoan(in loans.LoanInput) (*entity.Loan, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, err := g.loans.Create(in)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(true)
	return l, res, err
}

// UpdateLoan edita un préstamo no pagado.
func (g *Gateway) UpdateLoan(id string, in loans.LoanInput) (*entity.Loan, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, err := g.loans.Update(id, in)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(true)
	return l, res, err
}

// PayLoan marca un préstamo como pagado.
func (g *Gateway) PayLoan(id string) (*entity.Loan, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, err := g.loans.MarkPaid(id)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(true)
	return l, res, err
}

// ── Finanzas manuales ────────────────────────────────────────────────────────

// CreateEntry registra una entrada financiera.
func (g *Gateway) CreateEntry(in finance.MovementInput) (*entity.FinancialEntry, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, err := g.finance.CreateEntry(in)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(false)
	return e, res, err
}

// UpdateEntry edita una entrada financiera.
func (g *Gateway) UpdateEntry(id string, in finance.MovementInput) (*entity.FinancialEntry, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, err := g.finance.UpdateEntry(id, in)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(false)
	return e, res, err
}

// DeleteEntry elimina una entrada financiera.
func (g *Gateway) DeleteEntry(id string) (*dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.finance.DeleteEntry(id); err != nil {
		return nil, err
	}
	return g.result(false)
}

// CreateExit registra una salida financiera.
func (g *Gateway) CreateExit(in finance.MovementInput) (*entity.FinancialExit, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, err := g.finance.CreateExit(in)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(false)
	return e, res, err
}

// UpdateExit edita una salida financiera.
func (g *Gateway) UpdateExit(id string, in finance.MovementInput) (*entity.FinancialExit, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, err := g.finance.UpdateExit(id, in)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(false)
	return e, res, err
}

// DeleteExit elimina una salida financiera.
func (g *Gateway) DeleteExit(id string) (*dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.finance.DeleteExit(id); err != nil {
		return nil, err
	}
	return g.result(false)
}

// ── Notificaciones y escaneo ─────────────────────────────────────────────────

// PushNotification agrega una notificación disparada por el usuario.
func (g *Gateway) PushNotification(kind entity.NotificationKind, message string) (*entity.Notification, *dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, err := g.notifications.Push(kind, message)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.result(false)
	return n, res, err
}

// MarkNotificationRead marca una notificación como leída.
func (g *Gateway) MarkNotificationRead(id string) (*dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.notifications.MarkRead(id); err != nil {
		return nil, err
	}
	return g.result(false)
}

// RunConsistencyScan corre el escaneo de consistencia (stock bajo, préstamos
// vencidos). Lo invoca el temporizador del shell; nunca corre dentro de una
// lectura.
func (g *Gateway) RunConsistencyScan() (*dto.EventResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result(true)
}

// ── Vistas y snapshot ────────────────────────────────────────────────────────

// Dashboard vista agregada histórica completa sin mutar nada.
func (g *Gateway) Dashboard() dto.DashboardDTO {
	return g.dashboard()
}

// Report reporte de la ventana pedida (7/30/90 días o histórico).
func (g *Gateway) Report(w analytics.Window) dto.ReportDTO {
	return g.analytics.Report(w, g.now())
}

// Notifications lista combinada vigente sin re-escanear.
func (g *Gateway) Notifications() []entity.Notification {
	return g.store.View().AllNotifications()
}

// CurrentSnapshot snapshot vigente para persistir.
func (g *Gateway) CurrentSnapshot() *store.Snapshot {
	return g.store.View()
}

// Restore reemplaza el estado completo (restauración desde persistencia).
func (g *Gateway) Restore(snap *store.Snapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.store.Replace(snap)
	g.log.Info().
		Int("products", len(snap.Products)).
		Int("sales", len(snap.Sales)).
		Int("comandas", len(snap.Comandas)).
		Int("loans", len(snap.Loans)).
		Msg("snapshot restaurado")
}

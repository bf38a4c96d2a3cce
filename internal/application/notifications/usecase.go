// Package notifications deriva las notificaciones desde el estado actual.
// No hay mantenimiento incremental: cada escaneo descarta las derivadas y las
// regenera desde cero. El escaneo es además el único lugar donde un préstamo
// ACTIVE pasa a OVERDUE; es un chequeo de consistencia programado (lo invoca
// el temporizador del shell), no una consulta pura.
package notifications

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/negocio-core/internal/domain"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/domain/store"
)

// UseCase derivador de notificaciones.
type UseCase struct {
	store store.Store
	now   func() time.Time
}

// NewUseCase construye el caso de uso. now permite fijar el reloj en tests.
func NewUseCase(s store.Store, now func() time.Time) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{store: s, now: now}
}

// Scan regenera las notificaciones derivadas y aplica la transición a vencido.
// En un solo Update atómico:
//
//   - Cada préstamo ACTIVE cuya fecha de vencimiento (solo día) es
//     estrictamente anterior a hoy pasa a OVERDUE y emite un ERROR. La
//     transición y la notificación salen juntas del mismo Update, así que un
//     re-escaneo posterior no vuelve a disparar la transición (solo se
//     examinan préstamos ACTIVE; OVERDUE se omite y sigue emitiendo su aviso).
//   - Cada producto en o por debajo del mínimo emite un LOW_STOCK.
//
// Devuelve la lista combinada (derivadas + del usuario) vigente tras el escaneo.
func (uc *UseCase) Scan() ([]entity.Notification, error) {
	now := uc.now()
	today := startOfDay(now)

	var result []entity.Notification
	err := uc.store.Update(func(s *store.Snapshot) error {
		derived := make([]entity.Notification, 0)

		for i := range s.Loans {
			l := &s.Loans[i]
			switch l.Status {
			case entity.LoanActive:
				if startOfDay(l.DueDate).Before(today) {
					l.Status = entity.LoanOverdue
					derived = append(derived, entity.Notification{
						ID:        uuid.New().String(),
						Kind:      entity.NotificationError,
						Message:   fmt.Sprintf("Préstamo vencido: %s debe %s desde el %s", l.Customer, l.TotalAmount.StringFixed(2), l.DueDate.Format("2006-01-02")),
						CreatedAt: now,
					})
				}
			case entity.LoanOverdue:
				// ya transicionado en un escaneo anterior; el aviso se regenera
				derived = append(derived, entity.Notification{
					ID:        uuid.New().String(),
					Kind:      entity.NotificationError,
					Message:   fmt.Sprintf("Préstamo vencido: %s debe %s desde el %s", l.Customer, l.TotalAmount.StringFixed(2), l.DueDate.Format("2006-01-02")),
					CreatedAt: now,
				})
			}
		}

		for _, p := range s.Products {
			if p.IsLowStock() {
				derived = append(derived, entity.Notification{
					ID:        uuid.New().String(),
					Kind:      entity.NotificationLowStock,
					Message:   fmt.Sprintf("Stock bajo: %s (%s %s, mínimo %s)", p.Name, p.Quantity.String(), p.Unit, p.MinQuantity.String()),
					CreatedAt: now,
				})
			}
		}

		s.Notifications.Derived = derived
		result = s.AllNotifications()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Push agrega una notificación disparada por el usuario (venta registrada,
// item guardado). Aditiva: el escaneo no la toca.
func (uc *UseCase) Push(kind entity.NotificationKind, message string) (*entity.Notification, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: mensaje vacío", domain.ErrInvalidInput)
	}
	n := entity.Notification{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		CreatedAt: uc.now(),
	}
	err := uc.store.Update(func(s *store.Snapshot) error {
		s.Notifications.User = append(s.Notifications.User, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkRead marca una notificación (derivada o del usuario) como leída.
func (uc *UseCase) MarkRead(id string) error {
	return uc.store.Update(func(s *store.Snapshot) error {
		for i := range s.Notifications.Derived {
			if s.Notifications.Derived[i].ID == id {
				s.Notifications.Derived[i].Read = true
				return nil
			}
		}
		for i := range s.Notifications.User {
			if s.Notifications.User[i].ID == id {
				s.Notifications.User[i].Read = true
				return nil
			}
		}
		return fmt.Errorf("notificación %s: %w", id, domain.ErrNotFound)
	})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Package finance maneja entradas y salidas financieras manuales. La fecha
// efectiva de cada registro funciona como compuerta en la agregación: un monto
// fechado a futuro no cuenta hasta que el día llegue.
package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/negocio-core/internal/domain"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/domain/store"
)

// UseCase caso de uso de movimientos financieros manuales.
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

// MovementInput datos de una entrada o salida financiera.
type MovementInput struct {
	Name        string
	Amount      decimal.Decimal // > 0
	Description string
	Date        time.Time // fecha efectiva
}

func (in MovementInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: falta la fecha efectiva", domain.ErrInvalidInput)
	}
	return nil
}

// CreateEntry registra una entrada financiera.
func (uc *UseCase) CreateEntry(in MovementInput) (*entity.FinancialEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	e := entity.FinancialEntry{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		CreatedAt:   uc.now(),
	}
	err := uc.store.Update(func(s *store.Snapshot) error {
		s.Entries = append(s.Entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEntry edita una entrada financiera existente.
func (uc *UseCase) UpdateEntry(id string, in MovementInput) (*entity.FinancialEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var updated entity.FinancialEntry
	err := uc.store.Update(func(s *store.Snapshot) error {
		e := s.EntryByID(id)
		if e == nil {
			return fmt.Errorf("entrada %s: %w", id, domain.ErrNotFound)
		}
		e.Name = in.Name
		e.Amount = in.Amount
		e.Description = in.Description
		e.Date = in.Date
		updated = *e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEntry elimina una entrada financiera.
func (uc *UseCase) DeleteEntry(id string) error {
	return uc.store.Update(func(s *store.Snapshot) error {
		for i := range s.Entries {
			if s.Entries[i].ID == id {
				s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("entrada %s: %w", id, domain.ErrNotFound)
	})
}

// CreateExit registra una salida financiera.
func (uc *UseCase) CreateExit(in MovementInput) (*entity.FinancialExit, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	e := entity.FinancialExit{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		CreatedAt:   uc.now(),
	}
	err := uc.store.Update(func(s *store.Snapshot) error {
		s.Exits = append(s.Exits, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExit edita una salida financiera existente.
func (uc *UseCase) UpdateExit(id string, in MovementInput) (*entity.FinancialExit, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var updated entity.FinancialExit
	err := uc.store.Update(func(s *store.Snapshot) error {
		e := s.ExitByID(id)
		if e == nil {
			return fmt.Errorf("salida %s: %w", id, domain.ErrNotFound)
		}
		e.Name = in.Name
		e.Amount = in.Amount
		e.Description = in.Description
		e.Date = in.Date
		updated = *e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteExit elimina una salida financiera.
func (uc *UseCase) DeleteExit(id string) error {
	return uc.store.Update(func(s *store.Snapshot) error {
		for i := range s.Exits {
			if s.Exits[i].ID == id {
				s.Exits = append(s.Exits[:i], s.Exits[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("salida %s: %w", id, domain.ErrNotFound)
	})
}

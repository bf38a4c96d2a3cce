// Package loans maneja préstamos a clientes: alta, edición y pago. La
// transición automática a vencido NO vive acá sino en el escaneo de
// consistencia (package notifications), invocado por un temporizador externo.
package loans

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/negocio-core/internal/domain"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/domain/store"
)

var oneHundred = decimal.NewFromInt(100)

// UseCase caso de uso de préstamos.
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

// LoanInput datos para crear o actualizar un préstamo.
type LoanInput struct {
	Customer     string
	Phone        string
	Amount       decimal.Decimal // capital
	InterestRate decimal.Decimal // porcentaje sobre el capital
	DueDate      time.Time
	Notes        string
}

func (in LoanInput) validate() error {
	if in.Customer == "" {
		return fmt.Errorf("%w: nombre de cliente vacío", domain.ErrInvalidInput)
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: el capital debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.InterestRate.IsNegative() {
		return fmt.Errorf("%w: la tasa de interés no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.DueDate.IsZero() {
		return fmt.Errorf("%w: falta la fecha de vencimiento", domain.ErrInvalidInput)
	}
	return nil
}

// totalAmount capital + interés simple sobre el capital, redondeado a 2.
func totalAmount(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Add(amount.Mul(rate).Div(oneHundred)).Round(2)
}

// Create da de alta un préstamo ACTIVE.
func (uc *UseCase) Create(in LoanInput) (*entity.Loan, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	l := entity.Loan{
		ID:           uuid.New().String(),
		Customer:     in.Customer,
		Phone:        in.Phone,
		Amount:       in.Amount,
		InterestRate: in.InterestRate,
		TotalAmount:  totalAmount(in.Amount, in.InterestRate),
		Status:       entity.LoanActive,
		DueDate:      in.DueDate,
		CreatedAt:    uc.now(),
		Notes:        in.Notes,
	}
	err := uc.store.Update(func(s *store.Snapshot) error {
		s.Loans = append(s.Loans, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Update edita un préstamo no pagado y recalcula el total. Editar un préstamo
// PAID se rechaza: es un asiento cerrado.
func (uc *UseCase) Update(id string, in LoanInput) (*entity.Loan, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var updated entity.Loan
	err := uc.store.Update(func(s *store.Snapshot) error {
		l := s.LoanByID(id)
		if l == nil {
			return fmt.Errorf("préstamo %s: %w", id, domain.ErrNotFound)
		}
		if l.Status == entity.LoanPaid {
			return fmt.Errorf("préstamo %s ya pagado: %w", id, domain.ErrConflict)
		}
		l.Customer = in.Customer
		l.Phone = in.Phone
		l.Amount = in.Amount
		l.InterestRate = in.InterestRate
		l.TotalAmount = totalAmount(in.Amount, in.InterestRate)
		l.DueDate = in.DueDate
		l.Notes = in.Notes
		updated = *l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// MarkPaid marca el préstamo como PAID (terminal) y fija paid_at. Vale tanto
// desde ACTIVE como desde OVERDUE; re-pagar un préstamo PAID se rechaza.
//
// No crea una venta: el motor de agregación trata los préstamos pagados como
// fuente de ingreso directamente (el interés es la ganancia).
func (uc *UseCase) MarkPaid(id string) (*entity.Loan, error) {
	now := uc.now()
	var updated entity.Loan
	err := uc.store.Update(func(s *store.Snapshot) error {
		l := s.LoanByID(id)
		if l == nil {
			return fmt.Errorf("préstamo %s: %w", id, domain.ErrNotFound)
		}
		if l.Status == entity.LoanPaid {
			return fmt.Errorf("préstamo %s ya pagado: %w", id, domain.ErrConflict)
		}
		l.Status = entity.LoanPaid
		paidAt := now
		l.PaidAt = &paidAt
		updated = *l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

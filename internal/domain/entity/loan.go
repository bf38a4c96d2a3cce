package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus estado de un préstamo.
//
// Máquina de estados: ACTIVE → PAID (acción del usuario, terminal) o
// ACTIVE → OVERDUE (automática por fecha, NO terminal: puede pagarse después).
// PAID siempre es terminal.
type LoanStatus string

const (
	LoanActive  LoanStatus = "ACTIVE"
	LoanPaid    LoanStatus = "PAID"
	LoanOverdue LoanStatus = "OVERDUE"
)

// Loan préstamo a un cliente. Amount es el capital; TotalAmount el capital más
// el interés. Al pagarse, el motor de agregación lo trata como fuente de
// ingreso: TotalAmount suma a ingresos, Amount (capital) suma a costos, por lo
// que el interés queda como ganancia.
type Loan struct {
	ID           string          `json:"id"`
	Customer     string          `json:"customer"`
	Phone        string          `json:"phone,omitempty"`
	Amount       decimal.Decimal `json:"amount"`        // capital
	InterestRate decimal.Decimal `json:"interest_rate"` // porcentaje sobre el capital
	TotalAmount  decimal.Decimal `json:"total_amount"`  // capital + interés
	Status       LoanStatus      `json:"status"`
	DueDate      time.Time       `json:"due_date"`
	CreatedAt    time.Time       `json:"created_at"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// Interest devuelve el interés del préstamo (TotalAmount - Amount).
func (l Loan) Interest() decimal.Decimal {
	return l.TotalAmount.Sub(l.Amount)
}

// Package store define el agregado Snapshot (todas las colecciones del
// negocio) y el contrato Store para mutarlo de forma atómica. Las colecciones
// son slices para preservar el orden de inserción en los listados.
package store

import (
	"slices"

	"github.com/jhoicas/negocio-core/internal/domain/entity"
)

// Snapshot estado completo del negocio en un instante. Quien lo obtiene vía
// Store.View debe tratarlo como de solo lectura; toda mutación pasa por
// Store.Update sobre una copia.
type Snapshot struct {
	Products       []entity.Product        `json:"products"`
	Services       []entity.Service        `json:"services"`
	Sales          []entity.Sale           `json:"sales"`
	Comandas       []entity.Comanda        `json:"comandas"`
	Loans          []entity.Loan           `json:"loans"`
	Entries        []entity.FinancialEntry `json:"entries"`
	Exits          []entity.FinancialExit  `json:"exits"`
	StockMovements []entity.StockMovement  `json:"stock_movements"`

	// Derived la regenera cada escaneo de consistencia; User es aditiva
	// (notificaciones disparadas por acciones del usuario).
	Notifications struct {
		Derived []entity.Notification `json:"derived"`
		User    []entity.Notification `json:"user"`
	} `json:"notifications"`
}

// New devuelve un snapshot vacío.
func New() *Snapshot {
	return &Snapshot{}
}

// Clone copia profunda del snapshot, incluidas las slices de items anidadas.
// Los montos decimal y los time.Time se copian por valor sin problema.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Products:       slices.Clone(s.Products),
		Services:       slices.Clone(s.Services),
		Sales:          slices.Clone(s.Sales),
		Comandas:       slices.Clone(s.Comandas),
		Loans:          slices.Clone(s.Loans),
		Entries:        slices.Clone(s.Entries),
		Exits:          slices.Clone(s.Exits),
		StockMovements: slices.Clone(s.StockMovements),
	}
	for i := range c.Sales {
		c.Sales[i].Items = slices.Clone(c.Sales[i].Items)
	}
	for i := range c.Comandas {
		c.Comandas[i].Items = slices.Clone(c.Comandas[i].Items)
	}
	c.Notifications.Derived = slices.Clone(s.Notifications.Derived)
	c.Notifications.User = slices.Clone(s.Notifications.User)
	return c
}

// ProductByID devuelve un puntero al producto dentro del snapshot, para
// mutarlo en el sitio durante un Update. nil si no existe.
func (s *Snapshot) ProductByID(id string) *entity.Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// ServiceByID análogo a ProductByID para servicios.
func (s *Snapshot) ServiceByID(id string) *entity.Service {
	for i := range s.Services {
		if s.Services[i].ID == id {
			return &s.Services[i]
		}
	}
	return nil
}

// ComandaByID devuelve la comanda con ese id, o nil.
func (s *Snapshot) ComandaByID(id string) *entity.Comanda {
	for i := range s.Comandas {
		if s.Comandas[i].ID == id {
			return &s.Comandas[i]
		}
	}
	return nil
}

// LoanByID devuelve el préstamo con ese id, o nil.
func (s *Snapshot) LoanByID(id string) *entity.Loan {
	for i := range s.Loans {
		if s.Loans[i].ID == id {
			return &s.Loans[i]
		}
	}
	return nil
}

// EntryByID devuelve la entrada financiera con ese id, o nil.
func (s *Snapshot) EntryByID(id string) *entity.FinancialEntry {
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			return &s.Entries[i]
		}
	}
	return nil
}

// ExitByID devuelve la salida financiera con ese id, o nil.
func (s *Snapshot) ExitByID(id string) *entity.FinancialExit {
	for i := range s.Exits {
		if s.Exits[i].ID == id {
			return &s.Exits[i]
		}
	}
	return nil
}

// AllNotifications lista combinada: derivadas primero, luego las del usuario,
// cada grupo en orden de inserción.
func (s *Snapshot) AllNotifications() []entity.Notification {
	out := make([]entity.Notification, 0, len(s.Notifications.Derived)+len(s.Notifications.User))
	out = append(out, s.Notifications.Derived...)
	out = append(out, s.Notifications.User...)
	return out
}

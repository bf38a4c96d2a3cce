// Package catalog casos de uso del catálogo de productos y servicios.
package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/negocio-core/internal/domain"
	"github.com/jhoicas/negocio-core/internal/domain/entity"
	"github.com/jhoicas/negocio-core/internal/domain/store"
)

// UseCase altas, bajas y modificaciones del catálogo. La regla central es
// precio de venta > precio de costo: se rechaza en escrituras nuevas, aunque
// los datos históricos que la violen siguen siendo representables.
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

// ProductInput datos para crear o actualizar un producto.
type ProductInput struct {
	Name        string
	Unit        entity.UnitMeasure
	Quantity    decimal.Decimal
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
	MinQuantity decimal.Decimal
}

func (in ProductInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	if in.Quantity.IsNegative() || in.CostPrice.IsNegative() || in.MinQuantity.IsNegative() {
		return fmt.Errorf("%w: cantidades y precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	if !in.SalePrice.GreaterThan(in.CostPrice) {
		return fmt.Errorf("%w: el precio de venta debe superar al de costo", domain.ErrInvalidInput)
	}
	return nil
}

// CreateProduct da de alta un producto.
func (uc *UseCase) CreateProduct(in ProductInput) (*entity.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := uc.now()
	p := entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Unit:        in.Unit,
		Quantity:    in.Quantity,
		CostPrice:   in.CostPrice,
		SalePrice:   in.SalePrice,
		MinQuantity: in.MinQuantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.store.Update(func(s *store.Snapshot) error {
		s.Products = append(s.Products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct reemplaza los campos editables del producto. Re-valida la
// regla venta > costo con los valores nuevos.
func (uc *UseCase) UpdateProduct(id string, in ProductInput) (*entity.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var updated entity.Product
	err := uc.store.Update(func(s *store.Snapshot) error {
		p := s.ProductByID(id)
		if p == nil {
			return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		p.Name = in.Name
		p.Unit = in.Unit
		p.Quantity = in.Quantity
		p.CostPrice = in.CostPrice
		p.SalePrice = in.SalePrice
		p.MinQuantity = in.MinQuantity
		p.UpdatedAt = uc.now()
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct elimina el producto del catálogo. Las ventas históricas que lo
// referencian quedan como están: el motor de agregación degrada el costo a
// cero cuando la búsqueda falla.
func (uc *UseCase) DeleteProduct(id string) error {
	return uc.store.Update(func(s *store.Snapshot) error {
		for i := range s.Products {
			if s.Products[i].ID == id {
				s.Products = append(s.Products[:i], s.Products[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	})
}

// ServiceInput datos para crear o actualizar un servicio.
type ServiceInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

func (in ServiceInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: el precio del servicio debe ser mayor a cero", domain.ErrInvalidInput)
	}
	return nil
}

// CreateService da de alta un servicio.
func (uc *UseCase) CreateService(in ServiceInput) (*entity.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := uc.now()
	sv := entity.Service{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.store.Update(func(s *store.Snapshot) error {
		s.Services = append(s.Services, sv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sv, nil
}

// UpdateService reemplaza los campos editables del servicio.
func (uc *UseCase) UpdateService(id string, in ServiceInput) (*entity.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var updated entity.Service
	err := uc.store.Update(func(s *store.Snapshot) error {
		sv := s.ServiceByID(id)
		if sv == nil {
			return fmt.Errorf("servicio %s: %w", id, domain.ErrNotFound)
		}
		sv.Name = in.Name
		sv.Description = in.Description
		sv.Price = in.Price
		sv.UpdatedAt = uc.now()
		updated = *sv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteService elimina el servicio del catálogo.
func (uc *UseCase) DeleteService(id string) error {
	return uc.store.Update(func(s *store.Snapshot) error {
		for i := range s.Services {
			if s.Services[i].ID == id {
				s.Services = append(s.Services[:i], s.Services[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("servicio %s: %w", id, domain.ErrNotFound)
	})
}

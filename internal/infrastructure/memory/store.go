// Package memory implementa store.Store en memoria con la semántica
// clonar-aplicar-publicar: el commit es un intercambio de puntero, así que los
// lectores concurrentes (el ticker de escaneo, el shell) siempre ven un
// snapshot consistente, nunca uno a medio mutar.
package memory

import (
	"sync"

	"github.com/jhoicas/negocio-core/internal/domain/store"
)

// Store implementación en memoria de store.Store.
type Store struct {
	mu      sync.RWMutex
	current *store.Snapshot
	version uint64
}

// New crea un store con un snapshot vacío.
func New() *Store {
	return &Store{current: store.New()}
}

// View devuelve el snapshot vigente. El llamador no debe mutarlo.
func (s *Store) View() *store.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update clona el snapshot, aplica fn y publica la copia solo si fn devuelve
// nil. El error de fn se propaga tal cual y la copia se descarta.
func (s *Store) Update(fn func(*store.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.current = next
	s.version++
	return nil
}

// Replace sustituye el snapshot completo (restauración).
func (s *Store) Replace(snap *store.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap
	s.version++
}

// Version contador de mutaciones exitosas.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

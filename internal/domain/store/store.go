package store

// Store acceso serializado al snapshot vigente.
//
// Update clona el snapshot, aplica fn sobre la copia y recién si fn devuelve
// nil publica la copia como snapshot vigente. Un error descarta la copia
// entera: ningún evento deja estado a medio mutar.
type Store interface {
	// View devuelve el snapshot vigente (solo lectura).
	View() *Snapshot
	// Update aplica fn sobre una copia y la publica si fn devuelve nil.
	Update(fn func(*Snapshot) error) error
	// Replace sustituye el snapshot completo (restauración desde persistencia).
	Replace(s *Snapshot)
	// Version contador que crece con cada Update/Replace exitoso. Sirve como
	// clave de memoización para los agregados.
	Version() uint64
}

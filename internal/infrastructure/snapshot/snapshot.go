// Package snapshot persiste el snapshot completo como JSON en disco.
// Las fechas viajan como RFC 3339 (time.Time estándar) y los montos como
// números decimales exactos.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/negocio-core/internal/domain/store"
)

// Save escribe el snapshot en path. Escribe a un archivo temporal y renombra:
// si el proceso muere a mitad de escritura el snapshot anterior queda intacto.
func Save(path string, snap *store.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: serializar: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("snapshot: archivo temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: escribir: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: cerrar: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: renombrar: %w", err)
	}
	return nil
}

// Load lee el snapshot desde path. Si el archivo no existe devuelve un
// snapshot vacío sin error (primer arranque).
func Load(path string) (*store.Snapshot, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: leer: %w", err)
	}

	snap := store.New()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("snapshot: deserializar: %w", err)
	}
	return snap, nil
}

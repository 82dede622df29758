package localstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/despensa-core/internal/domain/repository"
)

// Claves del medio durable. Se conservan las de la app original (la clave de
// alimentos es "epis", no "items") para que un directorio de datos existente
// siga siendo legible tal cual y coincida con el campo "epis" del archivo de
// backup versión 1.0.
const (
	KeyItems     = "epis"
	KeyMovements = "movements"
)

// Ensure FileStore implements repository.KVStore.
var _ repository.KVStore = (*FileStore)(nil)

// FileStore adaptador clave→valor sobre un sistema de archivos: cada clave
// vive en <dir>/<clave>.json. Sin lógica de negocio.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore construye el adaptador y garantiza que el directorio exista.
// En tests se usa con afero.NewMemMapFs para no tocar disco.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: crear directorio %s: %w", dir, err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get devuelve el valor de la clave; ok=false si la clave no existe.
func (s *FileStore) Get(key string) (string, bool, error) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("localstore: leer %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set escribe el valor de forma atómica (archivo temporal + rename) para no
// dejar una clave a medio escribir si el proceso muere durante la escritura.
func (s *FileStore) Set(key, value string) error {
	target := s.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("localstore: escribir %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		return fmt.Errorf("localstore: renombrar %s: %w", key, err)
	}
	return nil
}

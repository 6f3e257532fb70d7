package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/facturacion-api/internal/application/auth"
)

var _ auth.AssetStore = (*LocalStore)(nil)

// LocalStore guarda los logos subidos en una carpeta del disco servida como
// estático. La clave de borrado es el nombre del archivo generado.
type LocalStore struct {
	dir        string
	publicBase string // prefijo público, ej. /uploads
}

// NewLocalStore crea la carpeta de subidas si no existe.
func NewLocalStore(dir, publicBase string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear carpeta de subidas: %w", err)
	}
	return &LocalStore{dir: dir, publicBase: strings.TrimSuffix(publicBase, "/")}, nil
}

// Store escribe el archivo con un nombre único (limpio de espacios) y
// devuelve la URL pública y la clave de borrado.
func (s *LocalStore) Store(ctx context.Context, r io.Reader, filename string) (*auth.StoredAsset, error) {
	clean := strings.ReplaceAll(filepath.Base(filename), " ", "_")
	name := fmt.Sprintf("logo-%d-%d-%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), clean)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("guardar logo: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dst.Name())
		return nil, fmt.Errorf("guardar logo: %w", err)
	}
	return &auth.StoredAsset{
		URL:       path.Join(s.publicBase, name),
		DeleteKey: name,
	}, nil
}

// Delete elimina un logo por su clave. Idempotente: que no exista no es error.
func (s *LocalStore) Delete(ctx context.Context, deleteKey string) error {
	// La clave es un nombre generado por Store; nunca una ruta.
	err := os.Remove(filepath.Join(s.dir, filepath.Base(deleteKey)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("borrar logo: %w", err)
	}
	return nil
}

// Dir expone la carpeta en disco para montarla como estático en el servidor.
func (s *LocalStore) Dir() string { return s.dir }

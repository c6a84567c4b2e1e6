package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"syscall"

	"github.com/spf13/afero"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.KeyValueStore = (*File)(nil)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// File guarda cada clave en <dir>/<namespace>/<clave>.json sobre un afero.Fs.
// Las escrituras van a un temporal que luego se renombra.
type File struct {
	fs  afero.Fs
	dir string
}

// NewFile crea el directorio del namespace si no existe.
func NewFile(fsys afero.Fs, dir, namespace string) (*File, error) {
	base := filepath.Join(dir, sanitize(namespace))
	if err := fsys.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: crear directorio %s: %w", base, err)
	}
	return &File{fs: fsys, dir: base}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, sanitize(key)+".json")
}

func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := afero.ReadFile(f.fs, f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kvstore: leer %q: %w", key, err)
	}
	return b, true, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	final := f.path(key)
	tmp := final + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, value, 0o644); err != nil {
		_ = f.fs.Remove(tmp)
		return wrapWriteErr(key, err)
	}
	if err := f.fs.Rename(tmp, final); err != nil {
		_ = f.fs.Remove(tmp)
		return wrapWriteErr(key, err)
	}
	return nil
}

func (f *File) Remove(_ context.Context, key string) error {
	err := f.fs.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("kvstore: eliminar %q: %w", key, err)
	}
	return nil
}

// wrapWriteErr traduce disco lleno / cuota del sistema de archivos a ErrQuotaExceeded.
func wrapWriteErr(key string, err error) error {
	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
		return fmt.Errorf("kvstore: escribir %q: %w: %v", key, repository.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("kvstore: escribir %q: %w", key, err)
}

func sanitize(s string) string {
	if s == "" {
		return "_"
	}
	return unsafeChars.ReplaceAllString(s, "_")
}

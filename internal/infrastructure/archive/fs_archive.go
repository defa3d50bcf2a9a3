package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FSArchive escribe los PDF bajo un directorio raíz.
type FSArchive struct {
	root string
}

// NewFSArchive archivo en disco bajo root.
func NewFSArchive(root string) *FSArchive {
	return &FSArchive{root: root}
}

// Store escribe el PDF en root/key creando los directorios intermedios.
func (a *FSArchive) Store(ctx context.Context, key string, pdf []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(a.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("archive: crear directorio: %w", err)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("archive: escribir %s: %w", key, err)
	}
	return path, nil
}

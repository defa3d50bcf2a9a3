// Package archive guarda copias de los PDF exportados (sistema de archivos o S3).
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-print/pkg/config"
)

// Archive destino de las copias archivadas.
type Archive interface {
	Store(ctx context.Context, key string, pdf []byte) (location string, err error)
}

// Key clave de archivo: <companyID>/<AAAA>/<MM>/<uuid>.pdf
func Key(companyID string, at time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d/%s.pdf", companyID, at.Year(), int(at.Month()), uuid.NewString())
}

// New construye el archivo configurado; con driver "none" devuelve (nil, nil).
func New(ctx context.Context, cfg config.StorageConfig) (Archive, error) {
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "fs":
		return NewFSArchive(cfg.Dir), nil
	case "s3":
		a, err := NewS3Archive(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("archive: driver desconocido %q", cfg.Driver)
	}
}

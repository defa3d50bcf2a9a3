package repository

import (
	"context"

	"github.com/jhoicas/Inventario-print/internal/domain/entity"
)

// DocumentRepository define el puerto de lectura de documentos imprimibles (DIP).
// La implementación vive en infrastructure. Devuelve (nil, nil) si el documento no existe.
type DocumentRepository interface {
	GetDocument(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error)
}

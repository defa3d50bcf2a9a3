// Package printing orquesta el motor de impresión: carga del documento,
// maquetación, vista previa, rasterizado, ensamblado del PDF y estado persistido
// (ajustes de rasterizado y repartos de bultos).
package printing

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/Inventario-print/internal/domain/layout"
)

// HTMLPage una página física como documento HTML autónomo.
type HTMLPage struct {
	Number int
	Size   layout.PageSize
	HTML   []byte
}

// PreviewOptions enlaces y textos de la barra de herramientas de la vista previa.
type PreviewOptions struct {
	Localizer      layout.Localizer
	ExportURL      string
	PrintURL       string
	AllocationsURL string // sólo etiquetas
}

// AllocationView reparto editable de una línea.
type AllocationView struct {
	ItemKey   string `json:"item_key"`
	Title     string `json:"title"`
	Total     int    `json:"total"`
	Count     int    `json:"count"`
	MaxPieces int    `json:"max_pieces"` // total - (bultos - 1)
	Pieces    []int  `json:"pieces"`
}

// Rasterizer dibuja una página HTML en un contenedor del tamaño físico exacto y
// devuelve la captura PNG a resolución × escala.
type Rasterizer interface {
	Rasterize(ctx context.Context, html []byte, size layout.PageSize, scale, resolution int) ([]byte, error)
}

// Encoder lleva la captura a width×height px y la codifica en JPEG.
type Encoder interface {
	Encode(capture []byte, width, height, quality int) ([]byte, error)
}

// Assembler arma el PDF con una página por bitmap.
type Assembler interface {
	Assemble(title string, size layout.PageSize, jpegs [][]byte) ([]byte, error)
}

// VectorGenerator exportación vectorial de los mismos Sheet.
type VectorGenerator interface {
	GenerateSheet(ctx context.Context, s layout.Sheet) ([]byte, error)
	GenerateLabels(ctx context.Context, s layout.LabelSheet) ([]byte, error)
}

// PageRenderer adaptador batch (no interactivo).
type PageRenderer interface {
	DocumentPages(s layout.Sheet) ([]HTMLPage, error)
	LabelPages(s layout.LabelSheet) ([]HTMLPage, error)
	PrintPage(w io.Writer, locale, title string, size layout.PageSize, jpegs [][]byte) error
	Document(w io.Writer, s layout.Sheet) error
	LabelDocument(w io.Writer, s layout.LabelSheet) error
}

// PreviewRenderer adaptador interactivo.
type PreviewRenderer interface {
	Document(w io.Writer, s layout.Sheet, opts PreviewOptions) error
	Labels(w io.Writer, s layout.LabelSheet, allocations []AllocationView, opts PreviewOptions) error
}

// Archive guarda una copia del PDF exportado. Opcional.
type Archive interface {
	Store(ctx context.Context, key string, pdf []byte) (location string, err error)
}

// Metrics contadores de exportación. Opcional.
type Metrics interface {
	PageRasterized(kind string)
	ExportFinished(kind, format string, elapsed time.Duration, err error)
}

// LocalizerFunc elige textos y formatos por país de la contraparte.
type LocalizerFunc func(country string) layout.Localizer

type noopMetrics struct{}

func (noopMetrics) PageRasterized(string)                                {}
func (noopMetrics) ExportFinished(string, string, time.Duration, error) {}

// Package layout es el módulo compartido de maquetación de documentos impresos.
// Es puro: no depende de HTML, PDF ni navegador. Los adaptadores de render
// (vista previa interactiva y plantilla batch) consumen sus estructuras tal cual.
//
// Página A4 vertical (mm):
//
//	┌──────────────────────────────────────────────┐  0
//	│  CABECERA: membrete | título | pág. X de N   │ 10
//	│  CONTRAPARTE + campos del documento          │
//	│  ──────────────────────────────────────────  │ 72
//	│  TABLA: Pos | Parte | Descripción | Cant ... │ 80
//	│  (35 líneas; 11 en la página terminal)       │
//	│  ──────────────────────────────────────────  │
//	│  NOTAS (sólo terminal, comparten la tabla)   │
//	│  RESUMEN: subtotal / IVA                     │138
//	│                      [TOTAL]                 │160
//	│                      [nota IVA] [firmante]   │
//	│  PIE: dirección | banco | contacto           │269
//	└──────────────────────────────────────────────┘297
package layout

import "math"

// PageSize dimensiones físicas de la página en milímetros.
type PageSize struct {
	Name     string
	WidthMM  float64
	HeightMM float64
}

// Tamaños de página usados por el motor.
var (
	A4Portrait  = PageSize{Name: "A4", WidthMM: 210, HeightMM: 297}
	A4Landscape = PageSize{Name: "A4", WidthMM: 297, HeightMM: 210}
)

// Landscape indica si la página es horizontal.
func (p PageSize) Landscape() bool { return p.WidthMM > p.HeightMM }

// BaseDPI resolución CSS de referencia (1px = 1/96").
const BaseDPI = 96.0

const mmPerInch = 25.4

// MMToPixels convierte milímetros a píxeles a la resolución y escala dadas.
func MMToPixels(mm, dpi, scale float64) int {
	return int(math.Round(mm / mmPerInch * dpi * scale))
}

// Pixels devuelve el tamaño en píxeles de la página a la resolución y escala dadas.
func (p PageSize) Pixels(dpi, scale float64) (width, height int) {
	return MMToPixels(p.WidthMM, dpi, scale), MMToPixels(p.HeightMM, dpi, scale)
}

// Margins márgenes de página en milímetros.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins márgenes de los documentos A4.
func DefaultMargins() Margins { return Margins{Top: 10, Right: 10, Bottom: 10, Left: 10} }

// LabelMargins márgenes de las hojas de etiquetas.
func LabelMargins() Margins { return Margins{Top: 8, Right: 8, Bottom: 8, Left: 8} }

// Constantes de maquetación del documento (mm y líneas). Cualquier cambio aplica a
// los dos adaptadores porque ambos leen el Sheet resultante.
const (
	HeaderHeight         = 62.0
	TableTop             = 72.0 // margen superior + cabecera
	TableHeaderHeight    = 8.0
	RowLineHeight        = 5.0
	FullPageCapacity     = 35
	TerminalPageCapacity = 11
	SummaryTop           = 138.0
	SummaryHeight        = 20.0
	FooterHeight         = 18.0
	OverlayWidth         = 80.0
)

// RowsTop posición vertical de la primera fila de items.
func RowsTop() float64 { return TableTop + TableHeaderHeight }

// FooterTop posición vertical de las columnas del pie en una página del tamaño dado.
func FooterTop(size PageSize, m Margins) float64 {
	return size.HeightMM - m.Bottom - FooterHeight
}

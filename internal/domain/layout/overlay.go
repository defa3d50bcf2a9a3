package layout

// BlockKind nombre de un bloque superpuesto de la página terminal.
type BlockKind string

// Bloques superpuestos. Title aparece en todas las páginas; el resto sólo en la terminal.
const (
	BlockTitle      BlockKind = "title"
	BlockTotalBadge BlockKind = "total_badge"
	BlockVATNote    BlockKind = "vat_note"
	BlockSignatory  BlockKind = "signatory"
	BlockForeign    BlockKind = "foreign_note"
	BlockFooter     BlockKind = "footer"
)

// Offsets medidos de la plantilla (mm). Las notas tienen altura fija pre-medida,
// no medida en render, por eso el apilado es una tabla de constantes.
const (
	TitleTop            = 12.0
	TitleHeight         = 10.0
	TotalBadgeTop       = 160.0
	TotalBadgeHeight    = 16.0
	VATNoteHeight       = 18.0
	SignatoryHeight     = 26.0
	ForeignNoteHeight   = 14.0
	SignatoryAfterBadge = TotalBadgeHeight
	SignatoryAfterVAT   = TotalBadgeHeight + VATNoteHeight
)

// Presence bloques opcionales presentes en la página terminal.
type Presence struct {
	VATNote     bool
	Signatory   bool
	ForeignNote bool
}

// Block entrada de la tabla de apilado: orden fijo, altura declarada y presencia.
type Block struct {
	Kind    BlockKind
	Height  float64
	Present func(Presence) bool
}

// stackOrder orden de apilado hacia abajo desde el total. Los bloques nunca se reordenan;
// la presencia es el único interruptor.
var stackOrder = []Block{
	{Kind: BlockTotalBadge, Height: TotalBadgeHeight, Present: func(Presence) bool { return true }},
	{Kind: BlockVATNote, Height: VATNoteHeight, Present: func(p Presence) bool { return p.VATNote }},
	{Kind: BlockSignatory, Height: SignatoryHeight, Present: func(p Presence) bool { return p.Signatory }},
	{Kind: BlockForeign, Height: ForeignNoteHeight, Present: func(p Presence) bool { return p.ForeignNote }},
}

// Placement posición absoluta de un bloque (mm desde la esquina superior izquierda).
type Placement struct {
	Kind   BlockKind
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Bottom borde inferior del bloque.
func (p Placement) Bottom() float64 { return p.Top + p.Height }

// Stack calcula la posición de los bloques presentes, anclados al margen derecho.
// Cada offset es TotalBadgeTop más la suma de alturas de los bloques presentes que
// lo preceden. El firmante queda en SignatoryAfterVAT o SignatoryAfterBadge según
// haya nota de IVA.
func Stack(p Presence, size PageSize, m Margins) []Placement {
	left := size.WidthMM - m.Right - OverlayWidth
	top := TotalBadgeTop
	out := make([]Placement, 0, len(stackOrder))
	for _, b := range stackOrder {
		if !b.Present(p) {
			continue
		}
		out = append(out, Placement{Kind: b.Kind, Top: top, Left: left, Width: OverlayWidth, Height: b.Height})
		top += b.Height
	}
	return out
}

// TitlePlacement posición del título (todas las páginas).
func TitlePlacement(size PageSize, m Margins) Placement {
	return Placement{
		Kind:   BlockTitle,
		Top:    TitleTop,
		Left:   size.WidthMM - m.Right - OverlayWidth,
		Width:  OverlayWidth,
		Height: TitleHeight,
	}
}

// FooterPlacement posición de las columnas del pie (página terminal).
func FooterPlacement(size PageSize, m Margins) Placement {
	return Placement{
		Kind:   BlockFooter,
		Top:    FooterTop(size, m),
		Left:   m.Left,
		Width:  size.WidthMM - m.Left - m.Right,
		Height: FooterHeight,
	}
}

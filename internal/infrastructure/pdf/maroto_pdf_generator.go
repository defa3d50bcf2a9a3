// Package pdf produce los PDF del motor de impresión: el ensamblado de bitmaps
// rasterizados (gofpdf) y la exportación vectorial del mismo Sheet (Maroto v2).
//
// Export vectorial de una página A4 del documento:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + dirección  │  Título + página X de N     │
//	│  CONTRAPARTE                  │  Campos del documento       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Pos | Parte | Descripción | Cant | Ud | P.Unit | Total│
//	│  ─────────────────────────────────────────────────────────  │
//	│  (terminal) NOTAS / RESUMEN / TOTAL / NOTA IVA / FIRMANTE   │
//	│  (terminal) PIE en tres columnas                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-print/internal/domain/layout"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// gridSizes ancho en la rejilla de 12 columnas de Maroto para cada columna de la tabla.
var gridSizes = map[string]int{
	"pos": 1, "part": 2, "description": 4, "qty": 1, "unit": 1, "price": 1, "total": 2,
}

const (
	lineStep       = 4.0 // avance vertical entre líneas de texto de 8 pt
	labelCodeRow   = 26.0
	minRowHeight   = layout.RowLineHeight
	overlayRowBase = 6.0
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator exporta Sheet y LabelSheet como PDF vectorial. Respeta la
// paginación del layout: una página Maroto por página maquetada.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func builder(title, author string, size layout.PageSize, m layout.Margins) *entity.Config {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(m.Left).WithRightMargin(m.Right).
		WithTopMargin(m.Top).WithBottomMargin(m.Bottom).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true)
	if author != "" {
		b = b.WithAuthor(author, true)
	}
	if size.Landscape() {
		b = b.WithOrientation(orientation.Horizontal)
	}
	return b.Build()
}

// GenerateSheet genera el PDF del documento y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSheet(ctx context.Context, s layout.Sheet) ([]byte, error) {
	author := ""
	if len(s.Pages) > 0 {
		author = s.Pages[0].Header.CompanyName
	}
	m := maroto.New(builder(s.Title, author, s.Size, s.Margins))

	for _, sp := range s.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := page.New()
		p.Add(headerRow(sp))
		p.Add(counterpartRow(sp.Header))
		p.Add(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
		p.Add(tableHeaderRow(sp.Columns))
		p.Add(itemRows(sp)...)
		if sp.Terminal {
			p.Add(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
			p.Add(terminalRows(sp)...)
		}
		m.AddPages(p)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateLabels genera las hojas de etiquetas: filas de dos celdas con el texto
// arriba y el Code128 del número de parte debajo.
func (g *MarotoPDFGenerator) GenerateLabels(ctx context.Context, s layout.LabelSheet) ([]byte, error) {
	m := maroto.New(builder(s.Title, "", s.Size, s.Margins))
	_, cellHeight := layout.CellSize(s.Size, s.Margins)

	for _, lp := range s.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := page.New()
		for i := 0; i < len(lp.Cells); i += layout.LabelColumns {
			end := min(i+layout.LabelColumns, len(lp.Cells))
			pair := lp.Cells[i:end]
			if i > 0 {
				p.Add(row.New(layout.LabelGap))
			}
			p.Add(labelTextRow(pair, cellHeight-labelCodeRow))
			p.Add(labelCodeRowFor(pair))
		}
		m.AddPages(p)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y título + paginación (der).
func headerRow(sp layout.SheetPage) core.Row {
	h := sp.Header
	left := []core.Component{
		text.New(h.CompanyName, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
	}
	left = append(left, stacked(h.CompanyLines, 8, props.Text{Size: 8, Color: colorGray})...)

	right := []core.Component{
		text.New(strings.Join(sp.Title.Lines, " "), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
	}
	if sp.PageLabel != "" {
		right = append(right, text.New(sp.PageLabel, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}))
	}
	return row.New(24).Add(col.New(7).Add(left...), col.New(5).Add(right...))
}

// counterpartRow: contraparte (izq) y campos del documento (der).
func counterpartRow(h layout.Header) core.Row {
	left := []core.Component{
		text.New(h.CustomerTitle, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(h.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
	}
	left = append(left, stacked(h.CustomerLines, 11, props.Text{Size: 8, Color: colorGray})...)

	fields := make([]string, len(h.DocumentFields))
	for i, f := range h.DocumentFields {
		fields[i] = f.Label + ": " + f.Value
	}
	right := stacked(fields, 1, props.Text{Size: 8, Align: align.Right})
	return row.New(26).Add(col.New(7).Add(left...), col.New(5).Add(right...))
}

// tableHeaderRow: cabecera de la tabla de items con fondo azul.
func tableHeaderRow(columns []layout.Column) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(gridSizes[c.Key]).Add(text.New(c.Label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignOf(c.Align),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(layout.TableHeaderHeight).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// itemRows: una fila por item de la página, con la altura estimada por el layout.
func itemRows(sp layout.SheetPage) []core.Row {
	rows := make([]core.Row, 0, len(sp.Rows))
	for _, r := range sp.Rows {
		values := map[string]string{
			"pos": r.Position, "part": r.PartNumber, "description": r.Description,
			"qty": r.Quantity, "unit": r.Unit, "price": r.UnitPrice, "total": r.Total,
		}
		cols := make([]core.Col, 0, len(sp.Columns))
		for _, c := range sp.Columns {
			cols = append(cols, col.New(gridSizes[c.Key]).Add(text.New(values[c.Key], props.Text{
				Size: 8, Align: alignOf(c.Align), Top: 1, Left: 1, Right: 1,
			})))
		}
		rows = append(rows, row.New(max(r.Height, minRowHeight)).Add(cols...))
	}
	return rows
}

// terminalRows: notas, resumen, bloques superpuestos y pie, en ese orden.
func terminalRows(sp layout.SheetPage) []core.Row {
	var rows []core.Row
	if n := sp.Notes; n != nil {
		comps := []core.Component{text.New(n.Title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})}
		comps = append(comps, stacked(n.Paragraphs, 5, props.Text{Size: 8})...)
		rows = append(rows, row.New(max(n.Height, 8)).Add(col.New(12).Add(comps...)))
	}
	if s := sp.Summary; s != nil {
		labels := make([]string, len(s.Lines))
		values := make([]string, len(s.Lines))
		for i, f := range s.Lines {
			labels[i], values[i] = f.Label, f.Value
		}
		rows = append(rows, row.New(float64(len(s.Lines))*lineStep+4).Add(
			col.New(6),
			col.New(3).Add(stacked(labels, 1, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})...),
			col.New(3).Add(stacked(values, 1, props.Text{Size: 9, Align: align.Right, Right: 1})...),
		))
	}
	for _, o := range sp.Overlays {
		style := props.Text{Size: 8, Align: align.Right, Color: colorGray}
		if o.Kind == layout.BlockTotalBadge {
			style = props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary}
		}
		rows = append(rows, row.New(float64(len(o.Lines))*lineStep+overlayRowBase).Add(
			col.New(6),
			col.New(6).Add(stacked(o.Lines, 1, style)...),
		))
	}
	if f := sp.Footer; f != nil {
		rows = append(rows, line.NewRow(3, props.Line{Color: colorGray, Thickness: 0.3}))
		size := 12 / max(len(f.Columns), 1)
		cols := make([]core.Col, 0, len(f.Columns))
		height := 0
		for _, c := range f.Columns {
			cols = append(cols, col.New(size).Add(stacked(c, 1, props.Text{Size: 7, Color: colorGray})...))
			height = max(height, len(c))
		}
		rows = append(rows, row.New(float64(height)*lineStep+2).Add(cols...))
	}
	return rows
}

// labelTextRow: textos de hasta dos etiquetas lado a lado.
func labelTextRow(cells []layout.LabelCell, height float64) core.Row {
	size := 12 / layout.LabelColumns
	cols := make([]core.Col, 0, layout.LabelColumns)
	for _, c := range cells {
		comps := []core.Component{
			text.New(c.CustomerName, props.Text{Style: fontstyle.Bold, Size: 12, Top: 2, Left: 2}),
		}
		comps = append(comps, stacked(c.AddressLines, 9, props.Text{Size: 9, Left: 2, Color: colorGray})...)
		lines := []string{c.PartNumber, c.Description}
		for _, f := range c.Fields {
			lines = append(lines, f.Label+": "+f.Value)
		}
		comps = append(comps, stacked(lines, 10+lineStep*float64(len(c.AddressLines)+1), props.Text{Size: 10, Left: 2})...)
		cols = append(cols, col.New(size).Add(comps...))
	}
	for len(cols) < layout.LabelColumns {
		cols = append(cols, col.New(size))
	}
	return row.New(height).Add(cols...)
}

// labelCodeRowFor: Code128 del número de parte de cada etiqueta.
func labelCodeRowFor(cells []layout.LabelCell) core.Row {
	size := 12 / layout.LabelColumns
	cols := make([]core.Col, 0, layout.LabelColumns)
	for _, c := range cells {
		cl := col.New(size)
		if c.PartNumber != "" {
			cl.Add(code.NewBar(c.PartNumber, props.Barcode{Percent: 80, Center: true}))
		}
		cols = append(cols, cl)
	}
	for len(cols) < layout.LabelColumns {
		cols = append(cols, col.New(size))
	}
	return row.New(labelCodeRow).Add(cols...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// stacked apila líneas de texto desde top con el mismo estilo.
func stacked(lines []string, top float64, style props.Text) []core.Component {
	out := make([]core.Component, 0, len(lines))
	for i, l := range lines {
		p := style
		p.Top = top + float64(i)*lineStep
		out = append(out, text.New(l, p))
	}
	return out
}

func alignOf(a string) align.Type {
	switch a {
	case "right":
		return align.Right
	case "center":
		return align.Center
	default:
		return align.Left
	}
}

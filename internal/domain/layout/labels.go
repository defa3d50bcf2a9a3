package layout

import (
	"fmt"

	"github.com/jhoicas/Inventario-print/internal/domain/entity"
)

// Rejilla fija de etiquetas en A4 horizontal.
const (
	LabelColumns = 2
	LabelRows    = 2
	LabelGap     = 4.0
)

// LabelsPerPage celdas por hoja.
const LabelsPerPage = LabelColumns * LabelRows

// LabelCell una etiqueta: un bulto de una línea.
type LabelCell struct {
	Slot         int
	Top          float64
	Left         float64
	Width        float64
	Height       float64
	ItemKey      string
	OrderNumber  string
	CustomerName string
	AddressLines []string
	PartNumber   string
	Description  string
	Package      int // 1..Packages
	Packages     int
	Pieces       int
	Fields       []Field
}

// LabelPage una hoja de etiquetas.
type LabelPage struct {
	Number    int
	Total     int
	PageLabel string
	Cells     []LabelCell
}

// LabelSheet juego de etiquetas maquetado.
type LabelSheet struct {
	DocumentID string
	Number     string
	Title      string
	Locale     string
	Size       PageSize
	Margins    Margins
	Pages      []LabelPage
}

// CellSize tamaño de cada celda de la rejilla.
func CellSize(size PageSize, m Margins) (width, height float64) {
	width = (size.WidthMM - m.Left - m.Right - LabelGap*(LabelColumns-1)) / LabelColumns
	height = (size.HeightMM - m.Top - m.Bottom - LabelGap*(LabelRows-1)) / LabelRows
	return width, height
}

// BuildLabelSheet genera una etiqueta por bulto, en el orden de las líneas y de los
// bultos. pieces mapea la clave de línea a las piezas por bulto; las líneas sin
// reparto van en un único bulto.
func BuildLabelSheet(doc *entity.Document, pieces map[string][]int, loc Localizer) (LabelSheet, error) {
	if doc == nil {
		return LabelSheet{}, fmt.Errorf("layout: documento nil")
	}
	size, m := A4Landscape, LabelMargins()
	cw, ch := CellSize(size, m)

	var cells []LabelCell
	for _, it := range doc.Items {
		alloc := pieces[it.Key]
		if len(alloc) == 0 {
			alloc = []int{it.Quantity}
		}
		for p, n := range alloc {
			cells = append(cells, LabelCell{
				ItemKey:      it.Key,
				OrderNumber:  doc.Number,
				CustomerName: doc.Customer.Name,
				AddressLines: nonEmptyLines(doc.Customer.Address, joinNonEmpty(", ", doc.Customer.City, doc.Customer.Country)),
				PartNumber:   it.PartNumber(),
				Description:  it.Description,
				Package:      p + 1,
				Packages:     len(alloc),
				Pieces:       n,
				Fields: []Field{
					{Label: loc.Label("order"), Value: doc.Number},
					{Label: loc.Label("package"), Value: fmt.Sprintf("%d / %d", p+1, len(alloc))},
					{Label: loc.Label("pieces"), Value: fmt.Sprintf("%d %s", n, it.Unit())},
					{Label: loc.Label("net_weight"), Value: formatWeight(it.Weight(n))},
				},
			})
		}
	}

	total := (len(cells) + LabelsPerPage - 1) / LabelsPerPage
	if total == 0 {
		total = 1
	}
	sheet := LabelSheet{
		DocumentID: doc.ID,
		Number:     doc.Number,
		Title:      loc.Label("labels.title") + " " + doc.Number,
		Locale:     loc.Locale(),
		Size:       size,
		Margins:    m,
		Pages:      make([]LabelPage, total),
	}
	for i := range sheet.Pages {
		sheet.Pages[i] = LabelPage{Number: i + 1, Total: total}
		if total > 1 {
			sheet.Pages[i].PageLabel = fmt.Sprintf("%s %d %s %d", loc.Label("page"), i+1, loc.Label("of"), total)
		}
	}
	for i, c := range cells {
		slot := i % LabelsPerPage
		row, col := slot/LabelColumns, slot%LabelColumns
		c.Slot = slot
		c.Left = m.Left + float64(col)*(cw+LabelGap)
		c.Top = m.Top + float64(row)*(ch+LabelGap)
		c.Width, c.Height = cw, ch
		page := &sheet.Pages[i/LabelsPerPage]
		page.Cells = append(page.Cells, c)
	}
	return sheet, nil
}

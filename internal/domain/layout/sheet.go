package layout

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-print/internal/domain/entity"
)

// Localizer textos y formatos de la contraparte. Los formatos nunca fallan: ante
// un error devuelven un literal de respaldo.
type Localizer interface {
	Locale() string
	Label(key string) string
	Money(amount decimal.Decimal, currency string) string
	Date(t time.Time) string
}

// Field par etiqueta/valor impreso.
type Field struct {
	Label string
	Value string
}

// Header cabecera corrida (se repite en todas las páginas).
type Header struct {
	LogoURL        string
	CompanyName    string
	CompanyLines   []string
	CustomerTitle  string
	CustomerName   string
	CustomerLines  []string
	DocumentFields []Field
}

// Column cabecera de columna de la tabla de items.
type Column struct {
	Key   string
	Label string
	Width float64 // mm
	Align string  // left | right | center
}

// Row fila de la tabla de items ya formateada.
type Row struct {
	ItemKey     string
	Top         float64
	Height      float64
	Lines       int
	Position    string
	PartNumber  string
	Description string
	Quantity    string
	Unit        string
	UnitPrice   string
	Total       string
}

// NotesBlock bloque de notas libres de la página terminal.
type NotesBlock struct {
	Top        float64
	Height     float64
	Title      string
	Paragraphs []string
}

// Summary resumen numérico de la página terminal.
type Summary struct {
	Top   float64
	Lines []Field
}

// Overlay bloque superpuesto ya posicionado con su texto.
type Overlay struct {
	Placement
	Lines []string
}

// Footer columnas del pie de la página terminal.
type Footer struct {
	Placement
	Columns [][]string
}

// SheetPage una página física lista para cualquier adaptador.
type SheetPage struct {
	Number    int
	Total     int
	PageLabel string // "página X de N"; vacío si hay una sola página
	Title     Overlay
	Header    Header
	Columns   []Column
	Rows      []Row
	Terminal  bool
	Notes     *NotesBlock
	Summary   *Summary
	Overlays  []Overlay
	Footer    *Footer
}

// Sheet documento maquetado: páginas de tamaño físico fijo.
type Sheet struct {
	Kind       entity.DocumentKind
	DocumentID string
	Number     string
	Title      string
	Locale     string
	Size       PageSize
	Margins    Margins
	Pages      []SheetPage
}

// tableColumns anchos de la tabla de items; suman el ancho útil (190 mm).
var tableColumns = []Column{
	{Key: "pos", Width: 10, Align: "center"},
	{Key: "part", Width: 28, Align: "left"},
	{Key: "description", Width: 80, Align: "left"},
	{Key: "qty", Width: 14, Align: "right"},
	{Key: "unit", Width: 12, Align: "center"},
	{Key: "price", Width: 22, Align: "right"},
	{Key: "total", Width: 24, Align: "right"},
}

// BuildSheet pagina el documento y compone cada página. El resumen, las notas,
// los overlays y el pie sólo aparecen en la página terminal.
func BuildSheet(doc *entity.Document, loc Localizer) (Sheet, error) {
	if doc == nil {
		return Sheet{}, fmt.Errorf("layout: documento nil")
	}
	if doc.Kind != entity.KindInvoice && doc.Kind != entity.KindOrderConfirmation {
		return Sheet{}, fmt.Errorf("layout: %q no es un documento paginable", doc.Kind)
	}

	size, margins := A4Portrait, DefaultMargins()
	descriptions := make([]string, len(doc.Items))
	for i, it := range doc.Items {
		descriptions[i] = it.Description
	}
	lines := EstimateItemLines(descriptions)

	caps := DocumentCapacities()
	notesHeight := EstimateNotesHeight(doc.Notes, NotesCharsPerLine)
	caps.Terminal = NotesCapacity(caps.Terminal, notesHeight, RowLineHeight)

	pages := Paginate(lines, caps)
	title := titleFor(doc, loc)
	header := buildHeader(doc, loc)
	columns := make([]Column, len(tableColumns))
	for i, c := range tableColumns {
		c.Label = loc.Label("col." + c.Key)
		columns[i] = c
	}

	sheet := Sheet{
		Kind:       doc.Kind,
		DocumentID: doc.ID,
		Number:     doc.Number,
		Title:      title,
		Locale:     loc.Locale(),
		Size:       size,
		Margins:    margins,
		Pages:      make([]SheetPage, 0, len(pages)),
	}
	for _, p := range pages {
		sp := SheetPage{
			Number:   p.Index + 1,
			Total:    len(pages),
			Title:    Overlay{Placement: TitlePlacement(size, margins), Lines: []string{title}},
			Header:   header,
			Columns:  columns,
			Terminal: p.Terminal,
		}
		if len(pages) > 1 {
			sp.PageLabel = fmt.Sprintf("%s %d %s %d", loc.Label("page"), sp.Number, loc.Label("of"), sp.Total)
		}
		top := RowsTop()
		for i := p.Start; i < p.End; i++ {
			row := buildRow(doc, doc.Items[i], lines[i], loc)
			row.Top = top
			top += row.Height
			sp.Rows = append(sp.Rows, row)
		}
		if p.Terminal {
			if notesHeight > 0 {
				sp.Notes = &NotesBlock{
					Top:        top,
					Height:     notesHeight,
					Title:      loc.Label("notes"),
					Paragraphs: strings.Split(strings.ReplaceAll(doc.Notes, "\r\n", "\n"), "\n"),
				}
			}
			sp.Summary = buildSummary(doc, loc)
			sp.Overlays = buildOverlays(doc, loc, size, margins)
			sp.Footer = buildFooter(doc, loc, size, margins)
		}
		sheet.Pages = append(sheet.Pages, sp)
	}
	return sheet, nil
}

func titleFor(doc *entity.Document, loc Localizer) string {
	key := "invoice.title"
	switch doc.Kind {
	case entity.KindOrderConfirmation:
		key = "order.title"
	case entity.KindLabels:
		key = "labels.title"
	}
	return loc.Label(key) + " " + doc.Number
}

func buildHeader(doc *entity.Document, loc Localizer) Header {
	c, cu := doc.Company, doc.Customer
	h := Header{
		LogoURL:       c.LogoURL,
		CompanyName:   c.Name,
		CompanyLines:  nonEmptyLines(c.Address, joinNonEmpty(", ", c.City, c.Country), labeled(loc.Label("tax_id"), c.NIT)),
		CustomerTitle: loc.Label("customer"),
		CustomerName:  cu.Name,
		CustomerLines: nonEmptyLines(cu.Address, joinNonEmpty(", ", cu.City, cu.Country), labeled(loc.Label("tax_id"), cu.TaxID)),
	}
	h.DocumentFields = append(h.DocumentFields,
		Field{Label: loc.Label("number"), Value: doc.Number},
		Field{Label: loc.Label("issue_date"), Value: loc.Date(doc.IssueDate)},
	)
	switch doc.Kind {
	case entity.KindInvoice:
		h.DocumentFields = append(h.DocumentFields, Field{Label: loc.Label("due_date"), Value: loc.Date(doc.DueDate)})
	default:
		h.DocumentFields = append(h.DocumentFields, Field{Label: loc.Label("shipping_date"), Value: loc.Date(doc.ShippingDate)})
	}
	h.DocumentFields = append(h.DocumentFields, Field{Label: loc.Label("currency"), Value: doc.Currency})
	return h
}

func buildRow(doc *entity.Document, it entity.LineItem, lines int, loc Localizer) Row {
	return Row{
		ItemKey:     it.Key,
		Height:      float64(lines) * RowLineHeight,
		Lines:       lines,
		Position:    fmt.Sprintf("%d", it.Position),
		PartNumber:  it.PartNumber(),
		Description: it.Description,
		Quantity:    fmt.Sprintf("%d", it.Quantity),
		Unit:        it.Unit(),
		UnitPrice:   loc.Money(it.UnitPrice, doc.Currency),
		Total:       loc.Money(it.Total, doc.Currency),
	}
}

func buildSummary(doc *entity.Document, loc Localizer) *Summary {
	t := doc.Totals
	vatLabel := fmt.Sprintf("%s %s%%", loc.Label("vat"), doc.VATRate.Mul(decimal.NewFromInt(100)).StringFixed(0))
	s := &Summary{
		Top: SummaryTop,
		Lines: []Field{
			{Label: loc.Label("subtotal"), Value: loc.Money(t.Subtotal, doc.Currency)},
			{Label: vatLabel, Value: loc.Money(t.VATAmount, doc.Currency)},
		},
	}
	if !t.NetWeight.IsZero() {
		s.Lines = append(s.Lines, Field{Label: loc.Label("net_weight"), Value: formatWeight(t.NetWeight)})
		s.Lines = append(s.Lines, Field{Label: loc.Label("gross_weight"), Value: formatWeight(t.GrossWeight)})
	}
	if t.PackageCount > 0 {
		s.Lines = append(s.Lines, Field{Label: loc.Label("packages"), Value: fmt.Sprintf("%d", t.PackageCount)})
	}
	return s
}

// PresenceFor decide qué bloques opcionales lleva la página terminal del documento.
func PresenceFor(doc *entity.Document) Presence {
	foreign := doc.IsForeign()
	return Presence{
		VATNote:     doc.Kind == entity.KindInvoice && foreign,
		Signatory:   doc.Company.Signatory != "",
		ForeignNote: doc.Kind == entity.KindOrderConfirmation && foreign,
	}
}

func buildOverlays(doc *entity.Document, loc Localizer, size PageSize, m Margins) []Overlay {
	placements := Stack(PresenceFor(doc), size, m)
	out := make([]Overlay, 0, len(placements))
	for _, p := range placements {
		o := Overlay{Placement: p}
		switch p.Kind {
		case BlockTotalBadge:
			o.Lines = []string{loc.Label("grand_total"), loc.Money(doc.Totals.GrandTotal, doc.Currency)}
		case BlockVATNote:
			o.Lines = []string{loc.Label("vat_exempt_note")}
		case BlockSignatory:
			o.Lines = []string{loc.Label("signatory"), doc.Company.Signatory}
		case BlockForeign:
			o.Lines = []string{loc.Label("foreign_note")}
		}
		out = append(out, o)
	}
	return out
}

func buildFooter(doc *entity.Document, loc Localizer, size PageSize, m Margins) *Footer {
	c := doc.Company
	return &Footer{
		Placement: FooterPlacement(size, m),
		Columns: [][]string{
			nonEmptyLines(c.Name, c.Address, joinNonEmpty(", ", c.City, c.Country)),
			nonEmptyLines(labeled(loc.Label("bank_account"), c.BankAccount), labeled(loc.Label("tax_id"), c.NIT)),
			nonEmptyLines(c.Phone, c.Email),
		},
	}
}

func formatWeight(w decimal.Decimal) string {
	return w.StringFixed(2) + " kg"
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func joinNonEmpty(sep string, parts ...string) string {
	return strings.Join(nonEmptyLines(parts...), sep)
}

func nonEmptyLines(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

package layout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-print/internal/domain/entity"
	"github.com/jhoicas/Inventario-print/internal/domain/layout"
)

func TestBuildSheet_UnaPaginaSinIndicador(t *testing.T) {
	doc := buildDocument(entity.KindInvoice, 3, "Tornillo hexagonal M8x40")
	sheet, err := layout.BuildSheet(doc, fakeLocalizer{})
	require.NoError(t, err)

	require.Len(t, sheet.Pages, 1)
	p := sheet.Pages[0]
	assert.Empty(t, p.PageLabel, "con una sola página no hay 'página X de N'")
	assert.True(t, p.Terminal)
	assert.NotNil(t, p.Summary)
	assert.NotNil(t, p.Footer)
	assert.Len(t, p.Rows, 3)
	assert.Equal(t, "invoice.title 2026-0042", p.Title.Lines[0])
	assert.Equal(t, layout.A4Portrait, sheet.Size)
}

// Resumen, overlays y pie sólo en la página terminal; título y cabecera en todas.
func TestBuildSheet_BloquesSoloEnTerminal(t *testing.T) {
	doc := buildDocument(entity.KindInvoice, 40, "Perfil de aluminio")
	sheet, err := layout.BuildSheet(doc, fakeLocalizer{})
	require.NoError(t, err)

	require.Len(t, sheet.Pages, 2)
	first, last := sheet.Pages[0], sheet.Pages[1]

	assert.Equal(t, "page 1 of 2", first.PageLabel)
	assert.Equal(t, "page 2 of 2", last.PageLabel)
	assert.Nil(t, first.Summary)
	assert.Nil(t, first.Footer)
	assert.Empty(t, first.Overlays)
	assert.NotEmpty(t, first.Title.Lines)
	assert.Equal(t, first.Header, last.Header)

	require.NotNil(t, last.Summary)
	require.NotEmpty(t, last.Overlays)
	assert.Equal(t, layout.BlockTotalBadge, last.Overlays[0].Kind)
	assert.Len(t, first.Rows, 35)
	assert.Len(t, last.Rows, 5)
}

// El total del badge es el GrandTotal calculado una vez en el documento.
func TestBuildSheet_TotalNoSeRecalcula(t *testing.T) {
	doc := buildDocument(entity.KindInvoice, 2, "Eje")
	sheet, err := layout.BuildSheet(doc, fakeLocalizer{})
	require.NoError(t, err)

	badge := sheet.Pages[0].Overlays[0]
	assert.Equal(t, []string{"grand_total", doc.Totals.GrandTotal.StringFixed(2) + " EUR"}, badge.Lines)
	assert.True(t, doc.Totals.GrandTotal.Equal(doc.Totals.Subtotal.Add(doc.Totals.VATAmount)))
}

func TestBuildSheet_FilasApiladas(t *testing.T) {
	doc := buildDocument(entity.KindInvoice, 2, strings.Repeat("x", 60))
	sheet, err := layout.BuildSheet(doc, fakeLocalizer{})
	require.NoError(t, err)

	rows := sheet.Pages[0].Rows
	assert.Equal(t, layout.RowsTop(), rows[0].Top)
	assert.Equal(t, 2, rows[0].Lines)
	assert.Equal(t, rows[0].Top+rows[0].Height, rows[1].Top)
}

// Contraparte extranjera: factura lleva nota de IVA; pedido lleva nota extranjera.
func TestBuildSheet_NotasPorContraparte(t *testing.T) {
	inv := buildDocument(entity.KindInvoice, 1, "Brida")
	inv.Customer.Country = "Germany"
	sheet, err := layout.BuildSheet(inv, fakeLocalizer{})
	require.NoError(t, err)
	kinds := overlayKinds(sheet.Pages[0].Overlays)
	assert.Equal(t, []layout.BlockKind{layout.BlockTotalBadge, layout.BlockVATNote, layout.BlockSignatory}, kinds)

	ord := buildDocument(entity.KindOrderConfirmation, 1, "Brida")
	ord.Customer.Country = "Germany"
	sheet, err = layout.BuildSheet(ord, fakeLocalizer{})
	require.NoError(t, err)
	kinds = overlayKinds(sheet.Pages[0].Overlays)
	assert.Equal(t, []layout.BlockKind{layout.BlockTotalBadge, layout.BlockSignatory, layout.BlockForeign}, kinds)
}

// Las notas reducen la capacidad terminal y se colocan tras la última fila.
func TestBuildSheet_NotasReducenCapacidad(t *testing.T) {
	doc := buildDocument(entity.KindOrderConfirmation, 11, "Rodamiento")
	doc.Notes = "Entrega en muelle 3.\nHorario 8-14h."
	sheet, err := layout.BuildSheet(doc, fakeLocalizer{})
	require.NoError(t, err)

	// notas: 6 + 2×4.5 = 15 mm → 3 líneas menos → capacidad terminal 8
	require.Len(t, sheet.Pages, 2)
	last := sheet.Pages[1]
	require.NotNil(t, last.Notes)
	assert.Equal(t, []string{"Entrega en muelle 3.", "Horario 8-14h."}, last.Notes.Paragraphs)
	lastRow := last.Rows[len(last.Rows)-1]
	assert.Equal(t, lastRow.Top+lastRow.Height, last.Notes.Top)
	assert.LessOrEqual(t, len(last.Rows), 8)
}

func TestBuildSheet_RechazaEtiquetas(t *testing.T) {
	_, err := layout.BuildSheet(buildDocument(entity.KindLabels, 1, "x"), fakeLocalizer{})
	assert.Error(t, err)
}

func overlayKinds(os []layout.Overlay) []layout.BlockKind {
	out := make([]layout.BlockKind, len(os))
	for i, o := range os {
		out[i] = o.Kind
	}
	return out
}

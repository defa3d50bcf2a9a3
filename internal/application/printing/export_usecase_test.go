package printing_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-print/internal/application/printing"
	"github.com/jhoicas/Inventario-print/internal/domain"
	"github.com/jhoicas/Inventario-print/internal/domain/entity"
)

// ── Carga y permisos ─────────────────────────────────────────────────────────

func TestDocument_Errores(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 1))
	ctx := context.Background()

	_, err := h.uc.Document(ctx, "company-1", entity.DocumentKind("receipt"), "order-1")
	assert.True(t, errors.Is(err, domain.ErrUnsupported))

	_, err = h.uc.Document(ctx, "company-1", entity.KindInvoice, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = h.uc.Document(ctx, "company-2", entity.KindOrderConfirmation, "order-1")
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	h.docs.err = errors.New("conexión rechazada")
	_, err = h.uc.Document(ctx, "company-1", entity.KindOrderConfirmation, "order-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión rechazada")
}

// ── Exportación ──────────────────────────────────────────────────────────────

func TestExport_RasterUnaPaginaPDFPorPagina(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 40))

	res, err := h.uc.Export(context.Background(), printing.ExportRequest{
		CompanyID: "company-1", UserID: "user-1", Kind: entity.KindOrderConfirmation, ID: "order-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 2, pdfPages(res.PDF))
	assert.Equal(t, "order_confirmation_OC-2026-15_2026-10-15.pdf", res.Filename)
	assert.Equal(t, "mem://company-1/2026/10.pdf", res.Location)
	assert.Len(t, h.rasterizer.calls, 2)
	assert.Equal(t, 2, h.metrics.pages)
	assert.Equal(t, []string{"order_confirmation:raster:ok"}, h.metrics.results)
}

// La exportación usa los ajustes guardados del usuario.
func TestExport_UsaAjustesDelUsuario(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 1))
	ctx := context.Background()
	_, err := h.settings.Save(ctx, "user-1", printing.Settings{Scale: 2, Quality: 60, Resolution: 150})
	require.NoError(t, err)

	_, err = h.uc.Export(ctx, printing.ExportRequest{CompanyID: "company-1", UserID: "user-1", Kind: entity.KindInvoice, ID: "order-1"})
	require.NoError(t, err)
	require.Len(t, h.rasterizer.calls, 1)
	assert.True(t, strings.HasPrefix(h.rasterizer.calls[0], "A4:2:150:"))
}

func TestExport_Vectorial(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 40))

	res, err := h.uc.Export(context.Background(), printing.ExportRequest{
		CompanyID: "company-1", Kind: entity.KindInvoice, ID: "order-1", Format: printing.FormatVector,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF-")))
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "invoice_OC-2026-15_2026-10-15.pdf", res.Filename)
	assert.Empty(t, h.rasterizer.calls)
	assert.Equal(t, []string{"invoice:vector:ok"}, h.metrics.results)
}

func TestExport_FormatoInvalido(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 1))
	_, err := h.uc.Export(context.Background(), printing.ExportRequest{
		CompanyID: "company-1", Kind: entity.KindInvoice, ID: "order-1", Format: "tiff",
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Ante un fallo de rasterizado no se devuelve ni se archiva un PDF parcial.
func TestExport_FalloSinArchivoParcial(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 40))
	h.rasterizer.failAt = 2

	res, err := h.uc.Export(context.Background(), printing.ExportRequest{
		CompanyID: "company-1", Kind: entity.KindInvoice, ID: "order-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRasterization))
	assert.Nil(t, res)
	assert.Empty(t, h.archive.keys)
	assert.Equal(t, []string{"invoice:raster:error"}, h.metrics.results)
}

func TestExport_FalloDelArchivoNoInvalida(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 1))
	h.archive.err = errors.New("bucket inexistente")

	res, err := h.uc.Export(context.Background(), printing.ExportRequest{
		CompanyID: "company-1", Kind: entity.KindInvoice, ID: "order-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.PDF)
	assert.Empty(t, res.Location)
}

func TestExport_OtraEmpresa(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 1))
	_, err := h.uc.Export(context.Background(), printing.ExportRequest{
		CompanyID: "company-9", Kind: entity.KindInvoice, ID: "order-1",
	})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Empty(t, h.rasterizer.calls)
}

// ── Impresión directa y vista previa ─────────────────────────────────────────

func TestPrint_UnaImagenPorPagina(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 40))

	html, err := h.uc.Print(context.Background(), printing.ExportRequest{
		CompanyID: "company-1", UserID: "user-1", Kind: entity.KindInvoice, ID: "order-1",
	})
	require.NoError(t, err)
	out := string(html)
	assert.Equal(t, 2, strings.Count(out, `<img class="sheet"`))
	assert.Contains(t, out, "window.print()")
	assert.Equal(t, []string{"invoice:print:ok"}, h.metrics.results)
}

func TestStandalone_TodasLasPaginasSinRasterizar(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 40))

	html, name, err := h.uc.Standalone(context.Background(), "company-1", entity.KindOrderConfirmation, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order_confirmation_OC-2026-15_2026-10-15.html", name)
	out := string(html)
	assert.Contains(t, out, `data-page="1"`)
	assert.Contains(t, out, `data-page="2"`)
	assert.NotContains(t, out, `class="toolbar"`)
	assert.Empty(t, h.rasterizer.calls)

	_, _, err = h.uc.Standalone(context.Background(), "company-2", entity.KindOrderConfirmation, "order-1")
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestPreview_Documento(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 3))
	var buf bytes.Buffer
	err := h.uc.Preview(context.Background(), "company-1", entity.KindInvoice, "order-1", &buf, printing.PreviewOptions{
		ExportURL: "/api/documents/invoice/order-1/export", PrintURL: "/api/documents/invoice/order-1/print",
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `class="toolbar"`)
	assert.Contains(t, out, `data-page="1"`)
	assert.Contains(t, out, `lang="es"`)
	assert.Empty(t, h.rasterizer.calls)
}

// ── Etiquetas ────────────────────────────────────────────────────────────────

func TestLabels_FlujoCompleto(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 2))
	ctx := context.Background()

	views, err := h.uc.Allocations(ctx, "company-1", "order-1")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, []int{4, 3, 3}, views[0].Pieces)

	v, err := h.uc.SetPackageCount(ctx, "company-1", "order-1", "order-1-item-0", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 5}, v.Pieces)
	assert.Equal(t, 9, v.MaxPieces)

	v, err = h.uc.EditPackagePieces(ctx, "company-1", "order-1", "order-1-item-1", 0, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 1, 2}, v.Pieces)

	require.NoError(t, h.uc.CloseAllocations(ctx, "company-1", "order-1"))

	// 2 + 3 bultos = 5 etiquetas → 2 hojas de 4.
	res, err := h.uc.Export(ctx, printing.ExportRequest{CompanyID: "company-1", Kind: entity.KindLabels, ID: "order-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 2, pdfPages(res.PDF))
	assert.Equal(t, "labels_OC-2026-15_2026-10-15.pdf", res.Filename)
	assert.True(t, strings.HasPrefix(h.rasterizer.calls[0], "A4:"))
}

func TestLabels_VistaPreviaConEditor(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 2))
	var buf bytes.Buffer
	err := h.uc.Preview(context.Background(), "company-1", entity.KindLabels, "order-1", &buf, printing.PreviewOptions{
		AllocationsURL: "/api/orders/order-1/labels/allocations",
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `data-endpoint="/api/orders/order-1/labels/allocations"`)
	assert.Contains(t, out, `data-item="order-1-item-0"`)
	assert.Equal(t, 6, strings.Count(out, `data-field="pieces"`))
}

func TestLabels_OtraEmpresa(t *testing.T) {
	h := newHarness(t, sampleOrder("order-1", 1))
	_, err := h.uc.SetPackageCount(context.Background(), "company-2", "order-1", "order-1-item-0", 2)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestFilename_Determinista(t *testing.T) {
	at := time.Date(2026, 1, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "invoice_FV-1001_2026-01-02.pdf", printing.Filename(entity.KindInvoice, "FV-1001", at))
	assert.Equal(t, "labels_OC-7-A_2026-01-02.pdf", printing.Filename(entity.KindLabels, "OC/7 A", at))
}

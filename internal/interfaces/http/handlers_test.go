package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-print/internal/application/dto"
	"github.com/jhoicas/Inventario-print/internal/application/printing"
	"github.com/jhoicas/Inventario-print/internal/domain/entity"
	"github.com/jhoicas/Inventario-print/internal/domain/layout"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/i18n"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/metrics"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/raster"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/render"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/state"
	apphttp "github.com/jhoicas/Inventario-print/internal/interfaces/http"
	"github.com/jhoicas/Inventario-print/pkg/logger"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type docStore map[string]*entity.Document

func (s docStore) GetDocument(_ context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	d, ok := s[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	cp.Kind = kind
	return &cp, nil
}

// pngRasterizer devuelve siempre una captura blanca pequeña.
type pngRasterizer struct{}

func (pngRasterizer) Rasterize(context.Context, []byte, layout.PageSize, int, int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 14))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func order(id string, n int) *entity.Document {
	items := make([]entity.LineItem, n)
	for i := range items {
		items[i] = entity.NewLineItem(fmt.Sprintf("%s-item-%d", id, i), i+1, "Arandela plana 8mm", 10, decimal.NewFromInt(350),
			&entity.Product{PartNumber: fmt.Sprintf("AP-%03d", i), UnitMeasure: "pcs", PiecesPerPackage: 4})
	}
	return entity.NewDocument(entity.DocumentHeader{
		ID: id, CompanyID: testCompanyID, Kind: entity.KindOrderConfirmation, Number: "OC-77",
		IssueDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Currency: "COP",
	}, entity.Company{Name: "Metalúrgica Andina", Country: "Colombia"},
		entity.Customer{Name: "Ferretería Central", Country: "Colombia"}, items)
}

// buildPrintApp arma el router completo sobre el caso de uso real con dependencias en memoria.
func buildPrintApp(t *testing.T, docs ...*entity.Document) *fiber.App {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "error", Out: io.Discard})
	store := state.NewMemoryStore()
	rec := metrics.NewRecorder()
	batch, err := render.NewBatchRenderer()
	require.NoError(t, err)
	preview, err := render.NewPreviewRenderer()
	require.NoError(t, err)

	ds := docStore{}
	for _, d := range docs {
		ds[d.ID] = d
	}
	now := func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }
	settings := printing.NewSettingsService(store, printing.Settings{Scale: 1, Quality: 80, Resolution: 96}, log)
	uc := printing.NewExportUseCase(printing.Dependencies{
		Documents:   ds,
		Settings:    settings,
		Allocations: printing.NewAllocationService(store, log),
		Pages:       batch,
		Preview:     preview,
		Pipeline:    printing.NewPipeline(pngRasterizer{}, raster.NewJPEGEncoder(), rec, log),
		Assembler:   pdf.NewBitmapAssembler(now),
		Vector:      pdf.NewMarotoPDFGenerator(),
		Metrics:     rec,
		Localizer:   func(country string) layout.Localizer { return i18n.ForCountry(country) },
		Now:         now,
		Log:         log,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Export:    uc,
		Settings:  settings,
		Metrics:   rec.Handler(),
		JWTSecret: testJWTSecret,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, target, auth string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &e))
	return e.Code
}

// ── Documentos ───────────────────────────────────────────────────────────────

func TestPrintHandler_ExportDescargaPDF(t *testing.T) {
	app := buildPrintApp(t, order("doc-1", 3))
	resp := do(t, app, http.MethodGet, "/api/documents/order_confirmation/doc-1/export", tokenForRole(t, "admin"), nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="order_confirmation_OC-77_2026-10-15.pdf"`)
	assert.Equal(t, "1", resp.Header.Get("X-Page-Count"))
	assert.True(t, bytes.HasPrefix(readBody(t, resp), []byte("%PDF-")))
}

func TestPrintHandler_ExportVectorial(t *testing.T) {
	app := buildPrintApp(t, order("doc-1", 3))
	resp := do(t, app, http.MethodGet, "/api/documents/invoice/doc-1/export?format=vector", tokenForRole(t, "vendedor"), nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, bytes.HasPrefix(readBody(t, resp), []byte("%PDF-")))
}

func TestPrintHandler_Errores(t *testing.T) {
	app := buildPrintApp(t, order("doc-1", 1))
	auth := tokenForRole(t, "admin")

	cases := []struct {
		name   string
		target string
		auth   string
		status int
		code   string
	}{
		{"formato desconocido", "/api/documents/invoice/doc-1/export?format=tiff", auth, fiber.StatusBadRequest, "VALIDATION"},
		{"tipo no soportado", "/api/documents/quote/doc-1/export", auth, fiber.StatusBadRequest, "UNSUPPORTED_KIND"},
		{"documento inexistente", "/api/documents/invoice/nope/export", auth, fiber.StatusNotFound, "NOT_FOUND"},
		{"sin token", "/api/documents/invoice/doc-1/export", "", fiber.StatusUnauthorized, "MISSING_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, app, http.MethodGet, tc.target, tc.auth, nil)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
}

func TestPrintHandler_OtraEmpresaProhibido(t *testing.T) {
	doc := order("doc-1", 1)
	doc.CompanyID = "otra-empresa"
	app := buildPrintApp(t, doc)

	resp := do(t, app, http.MethodGet, "/api/documents/invoice/doc-1/preview", tokenForRole(t, "admin"), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// La vista previa se abre en el navegador con ?token= y lo propaga a sus enlaces.
func TestPrintHandler_PreviewConTokenEnQuery(t *testing.T) {
	app := buildPrintApp(t, order("doc-1", 2))
	tok := strings.TrimPrefix(tokenForRole(t, "admin"), "Bearer ")

	resp := do(t, app, http.MethodGet, "/api/documents/invoice/doc-1/preview?token="+tok, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	out := string(readBody(t, resp))
	assert.Contains(t, out, `class="toolbar"`)
	assert.Contains(t, out, "/api/documents/invoice/doc-1/export?token="+tok)
	assert.Contains(t, out, "/api/documents/invoice/doc-1/print?token="+tok)
}

func TestPrintHandler_PrintUnaImagenPorPagina(t *testing.T) {
	app := buildPrintApp(t, order("doc-1", 40))
	resp := do(t, app, http.MethodGet, "/api/documents/order_confirmation/doc-1/print", tokenForRole(t, "admin"), nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, strings.Count(string(readBody(t, resp)), `<img class="sheet"`))
}

func TestPrintHandler_StandaloneAdjunto(t *testing.T) {
	app := buildPrintApp(t, order("doc-1", 2))
	resp := do(t, app, http.MethodGet, "/api/documents/invoice/doc-1/html", tokenForRole(t, "admin"), nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="invoice_OC-77_2026-10-15.html"`)
	assert.Contains(t, string(readBody(t, resp)), `data-page="1"`)
}

// ── Etiquetas ────────────────────────────────────────────────────────────────

func TestLabelHandler_EdicionDeBultos(t *testing.T) {
	app := buildPrintApp(t, order("order-1", 2))
	auth := tokenForRole(t, "bodeguero")

	resp := do(t, app, http.MethodGet, "/api/orders/order-1/labels/allocations", auth, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.AllocationResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &list))
	require.Len(t, list, 2)
	assert.Equal(t, []int{4, 3, 3}, list[0].Pieces)
	assert.Equal(t, "AP-000 · Arandela plana 8mm", list[0].Title)

	resp = do(t, app, http.MethodPut, "/api/orders/order-1/labels/allocations/order-1-item-0/count", auth, map[string]int{"count": 2})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.AllocationResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &got))
	assert.Equal(t, []int{5, 5}, got.Pieces)
	assert.Equal(t, 9, got.MaxPieces)

	resp = do(t, app, http.MethodPut, "/api/orders/order-1/labels/allocations/order-1-item-1/pieces", auth, map[string]int{"index": 0, "pieces": 7})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(readBody(t, resp), &got))
	assert.Equal(t, []int{7, 1, 2}, got.Pieces)

	resp = do(t, app, http.MethodPost, "/api/orders/order-1/labels/allocations/close", auth, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// 2 + 3 bultos = 5 etiquetas → 2 hojas.
	resp = do(t, app, http.MethodGet, "/api/orders/order-1/labels/export", auth, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-Page-Count"))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "labels_OC-77_2026-10-15.pdf")
}

func TestLabelHandler_CuerposInvalidos(t *testing.T) {
	app := buildPrintApp(t, order("order-1", 1))
	auth := tokenForRole(t, "admin")
	base := "/api/orders/order-1/labels/allocations/order-1-item-0"

	resp := do(t, app, http.MethodPut, base+"/count", auth, map[string]int{"count": 0})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = do(t, app, http.MethodPut, base+"/pieces", auth, map[string]int{"pieces": 3})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPut, "/api/orders/order-1/labels/allocations/desconocido/count", auth, map[string]int{"count": 2})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLabelHandler_PreviewConEditor(t *testing.T) {
	app := buildPrintApp(t, order("order-1", 2))
	resp := do(t, app, http.MethodGet, "/api/orders/order-1/labels/preview", tokenForRole(t, "admin"), nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := string(readBody(t, resp))
	assert.Contains(t, out, `data-endpoint="/api/orders/order-1/labels/allocations"`)
	assert.Equal(t, 6, strings.Count(out, `data-field="pieces"`))
}

// ── Ajustes ──────────────────────────────────────────────────────────────────

func TestSettingsHandler_GuardaYLee(t *testing.T) {
	app := buildPrintApp(t)
	auth := tokenForRole(t, "vendedor")

	resp := do(t, app, http.MethodGet, "/api/settings/raster", auth, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var s dto.RasterSettingsResponse
	require.NoError(t, json.Unmarshal(readBody(t, resp), &s))
	assert.Equal(t, dto.RasterSettingsResponse{Scale: 1, Quality: 80, Resolution: 96}, s)

	resp = do(t, app, http.MethodPut, "/api/settings/raster", auth, map[string]int{"scale": 3, "quality": 70, "resolution": 300})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/settings/raster", auth, nil)
	require.NoError(t, json.Unmarshal(readBody(t, resp), &s))
	assert.Equal(t, dto.RasterSettingsResponse{Scale: 3, Quality: 70, Resolution: 300}, s)
}

func TestSettingsHandler_FueraDeRango(t *testing.T) {
	app := buildPrintApp(t)
	resp := do(t, app, http.MethodPut, "/api/settings/raster", tokenForRole(t, "admin"), map[string]int{"scale": 9, "quality": 70})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

// ── Métricas ─────────────────────────────────────────────────────────────────

func TestRouter_MetricasTrasExportar(t *testing.T) {
	app := buildPrintApp(t, order("doc-1", 1))
	resp := do(t, app, http.MethodGet, "/api/documents/invoice/doc-1/export", tokenForRole(t, "admin"), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := string(readBody(t, resp))
	assert.Contains(t, out, metrics.MetricPagesRasterized+`{kind="invoice"} 1`)
	assert.Contains(t, out, metrics.MetricExportsTotal)
}

package printing_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-print/internal/application/printing"
	"github.com/jhoicas/Inventario-print/internal/domain/entity"
	"github.com/jhoicas/Inventario-print/internal/domain/layout"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/i18n"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/raster"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/render"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/state"
	"github.com/jhoicas/Inventario-print/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeDocuments struct {
	docs map[string]*entity.Document
	err  error
}

func (f *fakeDocuments) GetDocument(_ context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	cp.Kind = kind
	return &cp, nil
}

// fakeRasterizer devuelve un PNG pequeño y registra las llamadas.
type fakeRasterizer struct {
	mu     sync.Mutex
	calls  []string
	failAt int // número de página (1..n) que falla; 0 = nunca
	onCall func(n int)
}

func (f *fakeRasterizer) Rasterize(_ context.Context, html []byte, size layout.PageSize, scale, resolution int) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf("%s:%d:%d:%d", size.Name, scale, resolution, len(html)))
	n := len(f.calls)
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall(n)
	}
	if f.failAt == n {
		return nil, errors.New("chrome caído")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 28))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type sizeRecordingEncoder struct {
	sizes [][2]int
	inner printing.Encoder
}

func (e *sizeRecordingEncoder) Encode(capture []byte, width, height, quality int) ([]byte, error) {
	e.sizes = append(e.sizes, [2]int{width, height})
	return e.inner.Encode(capture, width, height, quality)
}

type fakeMetrics struct {
	mu      sync.Mutex
	pages   int
	results []string
}

func (m *fakeMetrics) PageRasterized(string) {
	m.mu.Lock()
	m.pages++
	m.mu.Unlock()
}

func (m *fakeMetrics) ExportFinished(kind, format string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := "ok"
	if err != nil {
		r = "error"
	}
	m.results = append(m.results, kind+":"+format+":"+r)
}

type memArchive struct {
	keys []string
	err  error
}

func (a *memArchive) Store(_ context.Context, key string, _ []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.keys = append(a.keys, key)
	return "mem://" + key, nil
}

// failingStore simula un almacén caído.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("redis caído") }
func (failingStore) Set(context.Context, string, []byte) error   { return errors.New("redis caído") }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func defaultSettings() printing.Settings {
	return printing.Settings{Scale: 1, Quality: 80, Resolution: 96}
}

func sampleOrder(id string, n int) *entity.Document {
	items := make([]entity.LineItem, n)
	for i := range items {
		items[i] = entity.NewLineItem(fmt.Sprintf("%s-item-%d", id, i), i+1, "Tornillo hexagonal M8x40", 10, decimal.NewFromInt(1200),
			&entity.Product{PartNumber: fmt.Sprintf("TH-%03d", i), UnitMeasure: "pcs", UnitWeight: decimal.NewFromFloat(0.05), PiecesPerPackage: 4})
	}
	return entity.NewDocument(entity.DocumentHeader{
		ID: id, CompanyID: "company-1", Kind: entity.KindOrderConfirmation, Number: "OC/2026-15",
		IssueDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Currency: "COP",
		VATRate: decimal.NewFromFloat(0.19),
	}, entity.Company{Name: "Metalúrgica Andina", Country: "Colombia"},
		entity.Customer{Name: "Ferretería El Tornillo", Country: "Colombia"}, items)
}

type harness struct {
	uc          *printing.ExportUseCase
	docs        *fakeDocuments
	rasterizer  *fakeRasterizer
	metrics     *fakeMetrics
	archive     *memArchive
	store       *state.MemoryStore
	settings    *printing.SettingsService
	allocations *printing.AllocationService
}

func newHarness(t *testing.T, docs ...*entity.Document) *harness {
	t.Helper()
	h := &harness{
		docs:       &fakeDocuments{docs: map[string]*entity.Document{}},
		rasterizer: &fakeRasterizer{},
		metrics:    &fakeMetrics{},
		archive:    &memArchive{},
		store:      state.NewMemoryStore(),
	}
	for _, d := range docs {
		h.docs.docs[d.ID] = d
	}
	log := testLogger()
	batch, err := render.NewBatchRenderer()
	require.NoError(t, err)
	preview, err := render.NewPreviewRenderer()
	require.NoError(t, err)

	h.settings = printing.NewSettingsService(h.store, defaultSettings(), log)
	h.allocations = printing.NewAllocationService(h.store, log)
	h.uc = printing.NewExportUseCase(printing.Dependencies{
		Documents:   h.docs,
		Settings:    h.settings,
		Allocations: h.allocations,
		Pages:       batch,
		Preview:     preview,
		Pipeline:    printing.NewPipeline(h.rasterizer, raster.NewJPEGEncoder(), h.metrics, log),
		Assembler:   pdf.NewBitmapAssembler(func() time.Time { return fixedNow }),
		Vector:      pdf.NewMarotoPDFGenerator(),
		Archive:     h.archive,
		ArchiveKey:  func(companyID string, at time.Time) string { return fmt.Sprintf("%s/%s.pdf", companyID, at.Format("2006/01")) },
		Metrics:     h.metrics,
		Localizer:   func(country string) layout.Localizer { return i18n.ForCountry(country) },
		Now:         func() time.Time { return fixedNow },
		Log:         log,
	})
	return h
}

func pdfPages(doc []byte) int {
	return bytes.Count(doc, []byte("/Type /Page\n"))
}

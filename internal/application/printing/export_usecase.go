package printing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-print/internal/domain"
	"github.com/jhoicas/Inventario-print/internal/domain/entity"
	"github.com/jhoicas/Inventario-print/internal/domain/layout"
	"github.com/jhoicas/Inventario-print/internal/domain/repository"
	"github.com/jhoicas/Inventario-print/pkg/logger"
)

// Formatos de exportación.
const (
	FormatRaster = "raster"
	FormatVector = "vector"
	formatPrint  = "print"
)

// Dependencies colaboradores del caso de uso. Archive y Metrics son opcionales.
type Dependencies struct {
	Documents   repository.DocumentRepository
	Settings    *SettingsService
	Allocations *AllocationService
	Pages       PageRenderer
	Preview     PreviewRenderer
	Pipeline    *Pipeline
	Assembler   Assembler
	Vector      VectorGenerator
	Archive     Archive
	ArchiveKey  func(companyID string, at time.Time) string
	Metrics     Metrics
	Localizer   LocalizerFunc
	Now         func() time.Time
	Log         *logger.Logger
}

// ExportUseCase vista previa, exportación a PDF, impresión directa y edición de
// bultos de etiquetas. Todo documento se comprueba contra la empresa del token.
type ExportUseCase struct {
	d Dependencies
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(d Dependencies) *ExportUseCase {
	if d.Metrics == nil {
		d.Metrics = noopMetrics{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &ExportUseCase{d: d}
}

// ExportRequest petición de exportación o impresión.
type ExportRequest struct {
	CompanyID string
	UserID    string
	Kind      entity.DocumentKind
	ID        string
	Format    string // raster | vector; vacío = raster
}

// ExportResult PDF generado.
type ExportResult struct {
	PDF      []byte
	Filename string
	Pages    int
	Location string // copia archivada; vacío si no hay archivo configurado
}

// ── Carga ─────────────────────────────────────────────────────────────────────

// Document carga el documento y verifica que pertenece a la empresa.
//
// Retorna:
//   - domain.ErrUnsupported  si el tipo no existe.
//   - domain.ErrNotFound     si el documento no existe.
//   - domain.ErrForbidden    si pertenece a otra empresa.
func (uc *ExportUseCase) Document(ctx context.Context, companyID string, kind entity.DocumentKind, id string) (*entity.Document, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupported, kind)
	}
	doc, err := uc.d.Documents.GetDocument(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("printing: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}

func (uc *ExportUseCase) localizer(doc *entity.Document) layout.Localizer {
	return uc.d.Localizer(doc.Customer.Country)
}

// sheets maqueta el documento; para etiquetas usa los repartos actuales.
type sheets struct {
	doc    *entity.Document
	loc    layout.Localizer
	sheet  *layout.Sheet
	labels *layout.LabelSheet
	allocs Allocations
}

func (s sheets) title() string {
	if s.labels != nil {
		return s.labels.Title
	}
	return s.sheet.Title
}

func (s sheets) locale() string { return s.loc.Locale() }

func (s sheets) size() layout.PageSize {
	if s.labels != nil {
		return s.labels.Size
	}
	return s.sheet.Size
}

func (uc *ExportUseCase) build(ctx context.Context, doc *entity.Document) (sheets, error) {
	out := sheets{doc: doc, loc: uc.localizer(doc)}
	if doc.Kind == entity.KindLabels {
		allocs, err := uc.d.Allocations.Load(ctx, doc)
		if err != nil {
			return out, err
		}
		ls, err := layout.BuildLabelSheet(doc, allocs.Pieces(), out.loc)
		if err != nil {
			return out, err
		}
		out.labels, out.allocs = &ls, allocs
		return out, nil
	}
	s, err := layout.BuildSheet(doc, out.loc)
	if err != nil {
		return out, err
	}
	out.sheet = &s
	return out, nil
}

func (uc *ExportUseCase) htmlPages(s sheets) ([]HTMLPage, error) {
	if s.labels != nil {
		return uc.d.Pages.LabelPages(*s.labels)
	}
	return uc.d.Pages.DocumentPages(*s.sheet)
}

// ── Vista previa ─────────────────────────────────────────────────────────────

// Preview escribe la vista previa interactiva. Para etiquetas incluye el editor de bultos.
func (uc *ExportUseCase) Preview(ctx context.Context, companyID string, kind entity.DocumentKind, id string, w io.Writer, opts PreviewOptions) error {
	doc, err := uc.Document(ctx, companyID, kind, id)
	if err != nil {
		return err
	}
	s, err := uc.build(ctx, doc)
	if err != nil {
		return err
	}
	opts.Localizer = s.loc
	if s.labels != nil {
		return uc.d.Preview.Labels(w, *s.labels, Views(doc, s.allocs), opts)
	}
	return uc.d.Preview.Document(w, *s.sheet, opts)
}

// ── Exportación ──────────────────────────────────────────────────────────────

// Export genera el PDF. En formato raster cada página pasa por la tubería de
// rasterizado con los ajustes del usuario; en vector se dibuja el mismo Sheet.
// Nunca devuelve un PDF parcial.
func (uc *ExportUseCase) Export(ctx context.Context, req ExportRequest) (res *ExportResult, err error) {
	format := req.Format
	if format == "" {
		format = FormatRaster
	}
	if format != FormatRaster && format != FormatVector {
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, req.Format)
	}
	start := uc.d.Now()
	defer func() { uc.d.Metrics.ExportFinished(string(req.Kind), format, time.Since(start), err) }()

	doc, err := uc.Document(ctx, req.CompanyID, req.Kind, req.ID)
	if err != nil {
		return nil, err
	}
	s, err := uc.build(ctx, doc)
	if err != nil {
		return nil, err
	}

	var (
		pdf   []byte
		pages int
	)
	switch format {
	case FormatVector:
		if s.labels != nil {
			pdf, err = uc.d.Vector.GenerateLabels(ctx, *s.labels)
			pages = len(s.labels.Pages)
		} else {
			pdf, err = uc.d.Vector.GenerateSheet(ctx, *s.sheet)
			pages = len(s.sheet.Pages)
		}
		if err != nil {
			return nil, fmt.Errorf("printing: export vectorial: %w", err)
		}
	default:
		jpegs, err := uc.rasterize(ctx, req.UserID, s)
		if err != nil {
			return nil, err
		}
		pdf, err = uc.d.Assembler.Assemble(s.title(), s.size(), jpegs)
		if err != nil {
			return nil, fmt.Errorf("printing: ensamblar pdf: %w", err)
		}
		pages = len(jpegs)
	}

	res = &ExportResult{PDF: pdf, Pages: pages, Filename: Filename(doc.Kind, doc.Number, uc.d.Now())}
	res.Location = uc.archive(ctx, doc, pdf)
	uc.d.Log.Info().
		Str("kind", string(doc.Kind)).Str("document_id", doc.ID).Str("format", format).
		Int("pages", pages).Str("location", res.Location).Msg("documento exportado")
	return res, nil
}

// Print rasteriza el documento y devuelve la página HTML de impresión con un
// bitmap por página física. No se ensambla PDF.
func (uc *ExportUseCase) Print(ctx context.Context, req ExportRequest) (html []byte, err error) {
	start := uc.d.Now()
	defer func() { uc.d.Metrics.ExportFinished(string(req.Kind), formatPrint, time.Since(start), err) }()

	doc, err := uc.Document(ctx, req.CompanyID, req.Kind, req.ID)
	if err != nil {
		return nil, err
	}
	s, err := uc.build(ctx, doc)
	if err != nil {
		return nil, err
	}
	jpegs, err := uc.rasterize(ctx, req.UserID, s)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := uc.d.Pages.PrintPage(&buf, s.locale(), s.title(), s.size(), jpegs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Standalone devuelve el documento completo como un único HTML autónomo (todas las
// páginas, sin barra de herramientas) para enviarlo o archivarlo sin rasterizar.
func (uc *ExportUseCase) Standalone(ctx context.Context, companyID string, kind entity.DocumentKind, id string) (html []byte, filename string, err error) {
	doc, err := uc.Document(ctx, companyID, kind, id)
	if err != nil {
		return nil, "", err
	}
	s, err := uc.build(ctx, doc)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if s.labels != nil {
		err = uc.d.Pages.LabelDocument(&buf, *s.labels)
	} else {
		err = uc.d.Pages.Document(&buf, *s.sheet)
	}
	if err != nil {
		return nil, "", err
	}
	name := strings.TrimSuffix(Filename(doc.Kind, doc.Number, uc.d.Now()), ".pdf") + ".html"
	return buf.Bytes(), name, nil
}

func (uc *ExportUseCase) rasterize(ctx context.Context, userID string, s sheets) ([][]byte, error) {
	settings, err := uc.d.Settings.Get(ctx, userID)
	if err != nil {
		uc.d.Log.Warn().Err(err).Str("user_id", userID).Msg("ajustes no disponibles; se usan los valores por defecto")
	}
	pages, err := uc.htmlPages(s)
	if err != nil {
		return nil, err
	}
	return uc.d.Pipeline.Run(ctx, string(s.doc.Kind), pages, settings)
}

// archive guarda una copia si hay archivo configurado. Un fallo del archivo no
// invalida la exportación: se registra y se devuelve el PDF igualmente.
func (uc *ExportUseCase) archive(ctx context.Context, doc *entity.Document, pdf []byte) string {
	if uc.d.Archive == nil || uc.d.ArchiveKey == nil {
		return ""
	}
	loc, err := uc.d.Archive.Store(ctx, uc.d.ArchiveKey(doc.CompanyID, uc.d.Now()), pdf)
	if err != nil {
		uc.d.Log.Error().Err(err).Str("document_id", doc.ID).Msg("no se pudo archivar el pdf")
		return ""
	}
	return loc
}

// Filename nombre determinista: <tipo>_<número>_<AAAA-MM-DD>.pdf
func Filename(kind entity.DocumentKind, number string, at time.Time) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':', '"':
			return '-'
		}
		return r
	}, number)
	return fmt.Sprintf("%s_%s_%s.pdf", kind, safe, at.Format("2006-01-02"))
}

// ── Bultos de etiquetas ──────────────────────────────────────────────────────

func (uc *ExportUseCase) order(ctx context.Context, companyID, orderID string) (*entity.Document, error) {
	return uc.Document(ctx, companyID, entity.KindLabels, orderID)
}

// Allocations repartos actuales del pedido, en el orden de las líneas.
func (uc *ExportUseCase) Allocations(ctx context.Context, companyID, orderID string) ([]AllocationView, error) {
	doc, err := uc.order(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	all, err := uc.d.Allocations.Load(ctx, doc)
	if err != nil {
		return nil, err
	}
	return Views(doc, all), nil
}

// SetPackageCount cambia el número de bultos de una línea.
func (uc *ExportUseCase) SetPackageCount(ctx context.Context, companyID, orderID, itemKey string, count int) (AllocationView, error) {
	doc, err := uc.order(ctx, companyID, orderID)
	if err != nil {
		return AllocationView{}, err
	}
	a, err := uc.d.Allocations.SetCount(ctx, doc, itemKey, count)
	if err != nil {
		return AllocationView{}, err
	}
	return viewOf(itemOf(doc, itemKey), a), nil
}

// EditPackagePieces edita las piezas de un bulto de una línea.
func (uc *ExportUseCase) EditPackagePieces(ctx context.Context, companyID, orderID, itemKey string, index, value int) (AllocationView, error) {
	doc, err := uc.order(ctx, companyID, orderID)
	if err != nil {
		return AllocationView{}, err
	}
	a, err := uc.d.Allocations.EditPieces(ctx, doc, itemKey, index, value)
	if err != nil {
		return AllocationView{}, err
	}
	return viewOf(itemOf(doc, itemKey), a), nil
}

// CloseAllocations persiste el estado final al cerrar el diálogo.
func (uc *ExportUseCase) CloseAllocations(ctx context.Context, companyID, orderID string) error {
	doc, err := uc.order(ctx, companyID, orderID)
	if err != nil {
		return err
	}
	return uc.d.Allocations.Close(ctx, doc)
}

func itemOf(doc *entity.Document, key string) entity.LineItem {
	for _, it := range doc.Items {
		if it.Key == key {
			return it
		}
	}
	return entity.LineItem{Key: key}
}

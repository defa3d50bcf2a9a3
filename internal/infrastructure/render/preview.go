package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/jhoicas/Inventario-print/internal/application/printing"
	"github.com/jhoicas/Inventario-print/internal/domain/layout"
)

// PreviewOptions enlaces y textos de la barra de herramientas.
type PreviewOptions = printing.PreviewOptions

// AllocationView reparto editable de una línea en la vista previa de etiquetas.
type AllocationView = printing.AllocationView

type previewData struct {
	Locale         string
	Title          string
	DocumentID     string
	Kind           string
	ExportURL      string
	PrintURL       string
	AllocationsURL string
	ExportLabel    string
	PrintLabel     string
	PackagesLabel  string
	Allocations    []AllocationView
	Documents      []pageView
	Labels         []labelPageView
}

var _ printing.PreviewRenderer = (*PreviewRenderer)(nil)

// PreviewRenderer adaptador interactivo: todas las páginas en un único documento
// con barra de herramientas y, para etiquetas, el editor de bultos.
type PreviewRenderer struct {
	tpl *template.Template
}

// NewPreviewRenderer parsea las plantillas embebidas.
func NewPreviewRenderer() (*PreviewRenderer, error) {
	t, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &PreviewRenderer{tpl: t}, nil
}

// Document escribe la vista previa de una factura o confirmación de pedido.
func (r *PreviewRenderer) Document(w io.Writer, s layout.Sheet, opts PreviewOptions) error {
	data := r.base(s.Locale, s.Title, s.DocumentID, string(s.Kind), opts)
	data.Documents = documentViews(s)
	return r.execute(w, data)
}

// Labels escribe la vista previa de etiquetas con el editor de repartos.
func (r *PreviewRenderer) Labels(w io.Writer, s layout.LabelSheet, allocations []AllocationView, opts PreviewOptions) error {
	data := r.base(s.Locale, s.Title, s.DocumentID, "labels", opts)
	data.Allocations = allocations
	data.Labels = labelViews(s)
	return r.execute(w, data)
}

func (r *PreviewRenderer) base(locale, title, id, kind string, opts PreviewOptions) previewData {
	d := previewData{
		Locale:         locale,
		Title:          title,
		DocumentID:     id,
		Kind:           kind,
		ExportURL:      opts.ExportURL,
		PrintURL:       opts.PrintURL,
		AllocationsURL: opts.AllocationsURL,
	}
	if opts.Localizer != nil {
		d.ExportLabel = opts.Localizer.Label("toolbar.export")
		d.PrintLabel = opts.Localizer.Label("toolbar.print")
		d.PackagesLabel = opts.Localizer.Label("packages")
	}
	return d
}

func (r *PreviewRenderer) execute(w io.Writer, data previewData) error {
	if err := r.tpl.ExecuteTemplate(w, "preview", data); err != nil {
		return fmt.Errorf("render: vista previa: %w", err)
	}
	return nil
}

package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"

	"github.com/jhoicas/Inventario-print/internal/application/printing"
	"github.com/jhoicas/Inventario-print/internal/domain/layout"
)

// Page una página física como documento HTML autónomo, lista para rasterizar.
type Page = printing.HTMLPage

var _ printing.PageRenderer = (*BatchRenderer)(nil)

type batchPageData struct {
	Locale   string
	Title    string
	Size     layout.PageSize
	Document *pageView
	Labels   *labelPageView
}

type batchDocumentData struct {
	Locale    string
	Title     string
	PageCSS   template.CSS
	Documents []pageView
	Labels    []labelPageView
}

type printData struct {
	Locale  string
	Title   string
	PageCSS template.CSS
	Size    layout.PageSize
	Images  []template.URL
}

// BatchRenderer adaptador no interactivo: una página por documento HTML para la
// tubería de rasterizado, y el documento completo para copias archivadas.
type BatchRenderer struct {
	tpl *template.Template
}

// NewBatchRenderer parsea las plantillas embebidas.
func NewBatchRenderer() (*BatchRenderer, error) {
	t, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &BatchRenderer{tpl: t}, nil
}

// DocumentPages un HTML autónomo por página del documento, en orden.
func (r *BatchRenderer) DocumentPages(s layout.Sheet) ([]Page, error) {
	views := documentViews(s)
	pages := make([]Page, 0, len(views))
	for i := range views {
		html, err := r.executeBytes("batch_page", batchPageData{
			Locale: s.Locale, Title: s.Title, Size: s.Size, Document: &views[i],
		})
		if err != nil {
			return nil, err
		}
		pages = append(pages, Page{Number: views[i].Page.Number, Size: s.Size, HTML: html})
	}
	return pages, nil
}

// LabelPages un HTML autónomo por hoja de etiquetas, en orden.
func (r *BatchRenderer) LabelPages(s layout.LabelSheet) ([]Page, error) {
	views := labelViews(s)
	pages := make([]Page, 0, len(views))
	for i := range views {
		html, err := r.executeBytes("batch_page", batchPageData{
			Locale: s.Locale, Title: s.Title, Size: s.Size, Labels: &views[i],
		})
		if err != nil {
			return nil, err
		}
		pages = append(pages, Page{Number: views[i].Page.Number, Size: s.Size, HTML: html})
	}
	return pages, nil
}

// Document escribe el documento completo (todas las páginas) para copias enviadas o archivadas.
func (r *BatchRenderer) Document(w io.Writer, s layout.Sheet) error {
	return r.execute(w, "batch_document", batchDocumentData{
		Locale: s.Locale, Title: s.Title, PageCSS: pageCSS(s.Size), Documents: documentViews(s),
	})
}

// LabelDocument escribe todas las hojas de etiquetas en un único documento.
func (r *BatchRenderer) LabelDocument(w io.Writer, s layout.LabelSheet) error {
	return r.execute(w, "batch_document", batchDocumentData{
		Locale: s.Locale, Title: s.Title, PageCSS: pageCSS(s.Size), Labels: labelViews(s),
	})
}

// PrintPage página de impresión directa: los bitmaps JPEG ya rasterizados, uno por
// página física, y un script que abre el diálogo de impresión al cargar.
func (r *BatchRenderer) PrintPage(w io.Writer, locale, title string, size layout.PageSize, jpegs [][]byte) error {
	images := make([]template.URL, len(jpegs))
	for i, img := range jpegs {
		images[i] = template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(img))
	}
	return r.execute(w, "print", printData{
		Locale: locale, Title: title, PageCSS: pageCSS(size), Size: size, Images: images,
	})
}

func (r *BatchRenderer) executeBytes(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.execute(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *BatchRenderer) execute(w io.Writer, name string, data any) error {
	if err := r.tpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render: %s: %w", name, err)
	}
	return nil
}

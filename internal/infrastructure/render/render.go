// Package render contiene los dos adaptadores HTML del módulo de maquetación:
// la vista previa interactiva y la plantilla batch para rasterizar o archivar.
// Ambos ejecutan la misma plantilla parcial de página ("page" / "label_page")
// sobre las mismas estructuras de layout, así que el marcado de cada página es
// idéntico entre adaptadores.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/jhoicas/Inventario-print/internal/domain/layout"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// pageView datos de la parcial "page".
type pageView struct {
	Size         layout.PageSize
	Margins      layout.Margins
	Page         layout.SheetPage
	TableTop     float64
	ContentWidth float64
	NotesWidth   float64
	SummaryLeft  float64
	OverlayWidth float64
}

// labelPageView datos de la parcial "label_page".
type labelPageView struct {
	Size    layout.PageSize
	Margins layout.Margins
	Page    layout.LabelPage
}

func documentViews(s layout.Sheet) []pageView {
	content := s.Size.WidthMM - s.Margins.Left - s.Margins.Right
	views := make([]pageView, len(s.Pages))
	for i, p := range s.Pages {
		views[i] = pageView{
			Size:         s.Size,
			Margins:      s.Margins,
			Page:         p,
			TableTop:     layout.TableTop,
			ContentWidth: content,
			NotesWidth:   content - layout.OverlayWidth - 4,
			SummaryLeft:  s.Size.WidthMM - s.Margins.Right - layout.OverlayWidth,
			OverlayWidth: layout.OverlayWidth,
		}
	}
	return views
}

func labelViews(s layout.LabelSheet) []labelPageView {
	views := make([]labelPageView, len(s.Pages))
	for i, p := range s.Pages {
		views[i] = labelPageView{Size: s.Size, Margins: s.Margins, Page: p}
	}
	return views
}

// pageCSS valor de @page size.
func pageCSS(size layout.PageSize) template.CSS {
	if size.Landscape() {
		return template.CSS(size.Name + " landscape")
	}
	return template.CSS(size.Name + " portrait")
}

var funcs = template.FuncMap{
	"mm": mm,
	"place": func(p layout.Placement) template.CSS {
		return template.CSS(fmt.Sprintf("top: %s; left: %s; width: %s; height: %s;", mm(p.Top), mm(p.Left), mm(p.Width), mm(p.Height)))
	},
	"barcode": BarcodeDataURI,
}

// mm longitud CSS en milímetros con precisión fija para que la salida sea estable.
func mm(v float64) template.CSS {
	return template.CSS(strconv.FormatFloat(v, 'f', 2, 64) + "mm")
}

func parseTemplates() (*template.Template, error) {
	t, err := template.New("render").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("render: parsear plantillas: %w", err)
	}
	return t, nil
}

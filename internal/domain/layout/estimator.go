package layout

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Presupuestos de caracteres por línea, ligados al ancho físico de cada columna
// y al tamaño de fuente de la plantilla. La descripción (80 mm, Helvetica 9 pt,
// 1 mm de relleno por lado) admite ~48 glifos medios; se deja uno de margen.
const (
	DescriptionCharsPerLine = 47
	NotesCharsPerLine       = 95
	NotesTitleHeight        = 6.0
	NotesLineHeight         = 4.5
)

// EstimateLines estima cuántas líneas visuales ocupa text en una columna de
// charsPerLine caracteres. Es una heurística que sobreestima un poco; nunca devuelve < 1.
func EstimateLines(text string, charsPerLine int) int {
	if charsPerLine <= 0 {
		return 1
	}
	n := utf8.RuneCountInString(text)
	lines := int(math.Ceil(float64(n) / float64(charsPerLine)))
	if lines < 1 {
		return 1
	}
	return lines
}

// EstimateItemLines aplica EstimateLines a cada descripción con el presupuesto de la tabla.
func EstimateItemLines(descriptions []string) []int {
	out := make([]int, len(descriptions))
	for i, d := range descriptions {
		out[i] = EstimateLines(d, DescriptionCharsPerLine)
	}
	return out
}

// EstimateNotesLines cuenta las líneas de un bloque de notas libre: cada párrafo
// vacío cuenta 1 línea y los no vacíos usan la misma fórmula que las descripciones.
func EstimateNotesLines(notes string, charsPerLine int) int {
	if strings.TrimSpace(notes) == "" {
		return 0
	}
	total := 0
	for _, p := range strings.Split(strings.ReplaceAll(notes, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(p) == "" {
			total++
			continue
		}
		total += EstimateLines(p, charsPerLine)
	}
	return total
}

// EstimateNotesHeight devuelve la altura vertical (mm) que ocupa el bloque de notas:
// título + altura de línea × líneas. Sin notas no hay bloque y la altura es 0.
func EstimateNotesHeight(notes string, charsPerLine int) float64 {
	lines := EstimateNotesLines(notes, charsPerLine)
	if lines == 0 {
		return 0
	}
	return NotesTitleHeight + NotesLineHeight*float64(lines)
}

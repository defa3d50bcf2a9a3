package layout

import "math"

// Capacities presupuesto de líneas por página. Terminal es menor que Full para
// dejar espacio al resumen de la última página.
type Capacities struct {
	Full     int
	Terminal int
}

// DocumentCapacities capacidades de factura y confirmación de pedido.
func DocumentCapacities() Capacities {
	return Capacities{Full: FullPageCapacity, Terminal: TerminalPageCapacity}
}

// Page rango contiguo [Start, End) de items de un documento.
type Page struct {
	Index    int
	Start    int
	End      int
	Terminal bool
	Capacity int // capacidad activa al colocar el último item
	Lines    int // líneas estimadas consumidas
}

// Len número de items de la página.
func (p Page) Len() int { return p.End - p.Start }

// Paginate reparte items (representados por sus líneas estimadas) en páginas.
//
// Antes de cada item se comprueba si la página en construcción más todo lo que
// queda cabe en la capacidad terminal; en ese caso la página es la terminal y usa
// esa capacidad. La comprobación se recalcula en cada frontera con las líneas ya
// colocadas en la página actual más el sufijo pendiente. Si eso cabría en una
// página completa pero no como terminal, se corta en la primera frontera cuyo
// sufijo sí cabe en la terminal, aunque la página cerrada quede con un solo item.
// Un item que por sí solo excede la capacidad se coloca igual y desborda
// visualmente. Sin items se devuelve una única página vacía.
func Paginate(lines []int, caps Capacities) []Page {
	suffix := make([]int, len(lines)+1)
	for i := len(lines) - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1] + lines[i]
	}
	capacityFor := func(rest int) int {
		if rest <= caps.Terminal {
			return caps.Terminal
		}
		return caps.Full
	}

	var pages []Page
	cur := Page{}
	for i, l := range lines {
		rest := cur.Lines + suffix[i]
		capacity := capacityFor(rest)
		if cur.Len() > 0 {
			overflow := cur.Lines+l > capacity
			reserve := suffix[i] <= caps.Terminal && rest > caps.Terminal && rest <= caps.Full
			if overflow || reserve {
				pages = append(pages, cur)
				cur = Page{Index: len(pages), Start: i, End: i}
				capacity = capacityFor(suffix[i])
			}
		}
		cur.End = i + 1
		cur.Lines += l
		cur.Capacity = capacity
	}
	if cur.Len() > 0 || len(pages) == 0 {
		if cur.Len() == 0 {
			cur.Capacity = caps.Terminal
		}
		pages = append(pages, cur)
	}
	pages[len(pages)-1].Terminal = true
	return pages
}

// NotesCapacity reduce la capacidad terminal por la altura estimada del bloque de
// notas. Es una aproximación: no se vuelve a comprobar el ajuste si las notas
// reales ocupan más de lo estimado. Nunca baja de 1 línea.
func NotesCapacity(terminal int, notesHeight, lineHeight float64) int {
	if notesHeight <= 0 || lineHeight <= 0 {
		return terminal
	}
	c := terminal - int(math.Ceil(notesHeight/lineHeight))
	if c < 1 {
		return 1
	}
	return c
}

// Package packaging reparte la cantidad de una línea entre N bultos físicos.
// Invariante: la suma de piezas por bulto es siempre igual a la cantidad total
// y ningún bulto tiene menos de 1 pieza.
package packaging

import (
	"fmt"

	"github.com/jhoicas/Inventario-print/internal/domain"
)

// Allocation reparto de una línea del documento en bultos.
type Allocation struct {
	ItemKey string `json:"item_key"`
	Total   int    `json:"total"`
	Pieces  []int  `json:"pieces"`
}

// Count número de bultos.
func (a Allocation) Count() int { return len(a.Pieces) }

// Sum suma de piezas de todos los bultos.
func (a Allocation) Sum() int {
	s := 0
	for _, p := range a.Pieces {
		s += p
	}
	return s
}

// Valid comprueba que la suma coincide con Total y que cada bulto tiene al menos 1 pieza.
func (a Allocation) Valid() bool {
	if a.Total < 1 || len(a.Pieces) == 0 || len(a.Pieces) > a.Total {
		return false
	}
	for _, p := range a.Pieces {
		if p < 1 {
			return false
		}
	}
	return a.Sum() == a.Total
}

// ClampCount acota el número de bultos a [1, total] para que ningún bulto quede vacío.
func ClampCount(total, count int) int {
	if count < 1 {
		count = 1
	}
	if total >= 1 && count > total {
		count = total
	}
	return count
}

// Distribute reparto inicial: base = total/count, y los primeros total%count bultos
// reciben una pieza más.
func Distribute(total, count int) []int {
	if total < 1 {
		return nil
	}
	count = ClampCount(total, count)
	base, rem := total/count, total%count
	out := make([]int, count)
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}

// New crea el reparto inicial de una línea.
func New(itemKey string, total, count int) (Allocation, error) {
	if total < 1 {
		return Allocation{}, fmt.Errorf("%w: cantidad %d de %s", domain.ErrInvalidInput, total, itemKey)
	}
	return Allocation{ItemKey: itemKey, Total: total, Pieces: Distribute(total, count)}, nil
}

// DefaultCount número de bultos sugerido por el catálogo: ceil(cantidad/piezas por bulto),
// o 1 si el producto no lo define.
func DefaultCount(quantity, piecesPerPackage int) int {
	if piecesPerPackage <= 0 {
		return 1
	}
	return ClampCount(quantity, (quantity+piecesPerPackage-1)/piecesPerPackage)
}

// Edit cambia las piezas de un bulto y empuja toda la desviación al bulto siguiente
// (al primero si se edita el último). Cada bulto se acota a mínimo 1; lo que el acotado
// no absorbe sigue en cascada a los siguientes, y si ni así cabe se acota el propio
// valor editado. El vecino queda visiblemente alterado: las etiquetas se generan por
// bulto y deben coincidir con lo mostrado.
func Edit(pieces []int, index, value, total int) ([]int, error) {
	n := len(pieces)
	if n == 0 || index < 0 || index >= n {
		return nil, fmt.Errorf("%w: bulto %d fuera de rango", domain.ErrInvalidInput, index)
	}
	out := append([]int(nil), pieces...)
	if n == 1 {
		out[0] = total
		return out, nil
	}

	if value < 1 {
		value = 1
	}
	if maxValue := total - (n - 1); value > maxValue {
		value = maxValue
	}
	out[index] = value

	sum := 0
	for _, p := range out {
		sum += p
	}
	deviation := total - sum
	for step := 1; deviation != 0 && step < n; step++ {
		j := (index + step) % n
		next := out[j] + deviation
		if next < 1 {
			deviation = next - 1
			next = 1
		} else {
			deviation = 0
		}
		out[j] = next
	}
	return out, nil
}

// Edit aplica una edición de un campo sobre el reparto.
func (a Allocation) Edit(index, value int) (Allocation, error) {
	pieces, err := Edit(a.Pieces, index, value, a.Total)
	if err != nil {
		return a, err
	}
	return Allocation{ItemKey: a.ItemKey, Total: a.Total, Pieces: pieces}, nil
}

// Resize redistribuye desde cero con otro número de bultos.
func (a Allocation) Resize(count int) Allocation {
	return Allocation{ItemKey: a.ItemKey, Total: a.Total, Pieces: Distribute(a.Total, count)}
}

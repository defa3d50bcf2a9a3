package entity

import "github.com/shopspring/decimal"

// LineItem es una línea del documento. Inmutable una vez construida.
type LineItem struct {
	Key         string // identificador estable (id de la línea en la base de datos)
	Position    int
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal // Quantity × UnitPrice
	Product     *Product        // opcional
}

// NewLineItem construye la línea calculando el total.
func NewLineItem(key string, position int, description string, quantity int, unitPrice decimal.Decimal, product *Product) LineItem {
	return LineItem{
		Key:         key,
		Position:    position,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Product:     product,
	}
}

// PartNumber devuelve el número de parte del catálogo o "" si la línea no tiene producto.
func (l LineItem) PartNumber() string {
	if l.Product == nil {
		return ""
	}
	return l.Product.PartNumber
}

// Unit devuelve la unidad de medida del catálogo ("pcs" por defecto).
func (l LineItem) Unit() string {
	if l.Product == nil || l.Product.UnitMeasure == "" {
		return "pcs"
	}
	return l.Product.UnitMeasure
}

// Weight devuelve el peso neto de n piezas de esta línea.
func (l LineItem) Weight(pieces int) decimal.Decimal {
	if l.Product == nil {
		return decimal.Zero
	}
	return l.Product.UnitWeight.Mul(decimal.NewFromInt(int64(pieces)))
}

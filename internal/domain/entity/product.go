package entity

import "github.com/shopspring/decimal"

// Product es la entrada de catálogo referenciada por una línea (peso, unidad, número de parte).
type Product struct {
	ID               string
	PartNumber       string // SKU / número de parte, se imprime en etiquetas como Code128
	Name             string
	UnitMeasure      string
	UnitWeight       decimal.Decimal // kg por pieza
	PiecesPerPackage int             // 0 = sin definir
}

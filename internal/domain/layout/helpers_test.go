package layout_test

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-print/internal/domain/entity"
)

// fakeLocalizer devuelve la clave como etiqueta y formatos triviales.
type fakeLocalizer struct{}

func (fakeLocalizer) Locale() string                            { return "en" }
func (fakeLocalizer) Label(key string) string                   { return key }
func (fakeLocalizer) Money(a decimal.Decimal, cur string) string { return a.StringFixed(2) + " " + cur }
func (fakeLocalizer) Date(t time.Time) string                   { return t.Format("2006-01-02") }

// buildDocument construye un documento con n líneas de descripción desc.
func buildDocument(kind entity.DocumentKind, n int, desc string) *entity.Document {
	items := make([]entity.LineItem, n)
	for i := range items {
		items[i] = entity.NewLineItem(
			fmt.Sprintf("item-%d", i),
			i+1, desc, 2, decimal.NewFromInt(10), &entity.Product{PartNumber: "P-1", UnitWeight: decimal.NewFromFloat(0.5)},
		)
	}
	return entity.NewDocument(entity.DocumentHeader{
		ID:        "doc-1",
		Kind:      kind,
		Number:    "2026-0042",
		IssueDate: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Currency:  "EUR",
		VATRate:   decimal.NewFromFloat(0.19),
	}, entity.Company{Name: "Metalúrgica S.A.S.", Country: "Colombia", Signatory: "Ana Gómez"},
		entity.Customer{Name: "Kunde GmbH", Country: "Colombia"}, items)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind tipo de documento imprimible.
type DocumentKind string

// Tipos de documento soportados por el motor de impresión.
const (
	KindInvoice           DocumentKind = "invoice"
	KindOrderConfirmation DocumentKind = "order_confirmation"
	KindLabels            DocumentKind = "labels"
)

// Valid indica si el tipo es uno de los soportados.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindInvoice, KindOrderConfirmation, KindLabels:
		return true
	}
	return false
}

// Totals agrupa los totales a nivel documento. Se calculan una sola vez en NewDocument.
type Totals struct {
	Subtotal     decimal.Decimal
	VATAmount    decimal.Decimal
	GrandTotal   decimal.Decimal // Subtotal + VATAmount
	NetWeight    decimal.Decimal
	GrossWeight  decimal.Decimal
	PackageCount int
}

// Document es la entrada de sólo lectura del motor: cabecera, líneas y totales.
type Document struct {
	ID           string
	CompanyID    string
	Kind         DocumentKind
	Number       string
	IssueDate    time.Time
	DueDate      time.Time // factura
	ShippingDate time.Time // confirmación de pedido / etiquetas
	Currency     string
	VATRate      decimal.Decimal // 0.19 = 19%
	Notes        string
	Company      Company
	Customer     Customer
	Items        []LineItem
	Totals       Totals
}

// DocumentHeader campos de cabecera para construir un Document.
type DocumentHeader struct {
	ID           string
	CompanyID    string
	Kind         DocumentKind
	Number       string
	IssueDate    time.Time
	DueDate      time.Time
	ShippingDate time.Time
	Currency     string
	VATRate      decimal.Decimal
	Notes        string
	GrossWeight  decimal.Decimal // informado por logística; si es cero se usa el neto
	PackageCount int
}

// NewDocument construye el documento y calcula los totales una única vez.
func NewDocument(h DocumentHeader, company Company, customer Customer, items []LineItem) *Document {
	subtotal := decimal.Zero
	net := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
		net = net.Add(it.Weight(it.Quantity))
	}
	vat := subtotal.Mul(h.VATRate).Round(2)
	gross := h.GrossWeight
	if gross.IsZero() {
		gross = net
	}
	return &Document{
		ID:           h.ID,
		CompanyID:    h.CompanyID,
		Kind:         h.Kind,
		Number:       h.Number,
		IssueDate:    h.IssueDate,
		DueDate:      h.DueDate,
		ShippingDate: h.ShippingDate,
		Currency:     h.Currency,
		VATRate:      h.VATRate,
		Notes:        h.Notes,
		Company:      company,
		Customer:     customer,
		Items:        items,
		Totals: Totals{
			Subtotal:     subtotal,
			VATAmount:    vat,
			GrandTotal:   subtotal.Add(vat),
			NetWeight:    net,
			GrossWeight:  gross,
			PackageCount: h.PackageCount,
		},
	}
}

// IsForeign indica si la contraparte está fuera del país de la empresa emisora.
func (d *Document) IsForeign() bool {
	if d.Customer.Country == "" || d.Company.Country == "" {
		return false
	}
	return d.Customer.Country != d.Company.Country
}

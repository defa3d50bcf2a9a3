// Package i18n resuelve textos y formatos del documento impreso según el país de
// la contraparte. Hay exactamente dos locales conocidos además del base (en).
package i18n

// Locales soportados.
const (
	LocaleBase    = "en"
	LocaleSpanish = "es"
	LocaleGerman  = "de"
)

// countryLocales coincidencia exacta del nombre de país; sin normalizar mayúsculas.
var countryLocales = map[string]string{
	"Colombia": LocaleSpanish,
	"Germany":  LocaleGerman,
}

// LocaleForCountry locale del documento para el país de la contraparte.
func LocaleForCountry(country string) string {
	if l, ok := countryLocales[country]; ok {
		return l
	}
	return LocaleBase
}

var translations = map[string]map[string]string{
	LocaleBase: {
		"invoice.title":   "Invoice",
		"order.title":     "Order confirmation",
		"labels.title":    "Shipping labels",
		"tax_id":          "Tax ID",
		"customer":        "Customer",
		"number":          "Number",
		"issue_date":      "Date",
		"due_date":        "Due date",
		"shipping_date":   "Shipping date",
		"currency":        "Currency",
		"col.pos":         "Pos.",
		"col.part":        "Part no.",
		"col.description": "Description",
		"col.qty":         "Qty",
		"col.unit":        "Unit",
		"col.price":       "Unit price",
		"col.total":       "Total",
		"page":            "Page",
		"of":              "of",
		"notes":           "Notes",
		"subtotal":        "Subtotal",
		"vat":             "VAT",
		"net_weight":      "Net weight",
		"gross_weight":    "Gross weight",
		"packages":        "Packages",
		"grand_total":     "Total amount",
		"vat_exempt_note": "Intra-community / export delivery exempt from VAT.",
		"signatory":       "Authorized signatory",
		"foreign_note":    "Goods shipped abroad. Customs duties are borne by the consignee.",
		"bank_account":    "Bank account",
		"order":           "Order",
		"package":         "Package",
		"pieces":          "Pieces",
		"toolbar.print":   "Print",
		"toolbar.export":  "Download PDF",
	},
	LocaleSpanish: {
		"invoice.title":   "Factura",
		"order.title":     "Confirmación de pedido",
		"labels.title":    "Etiquetas de envío",
		"tax_id":          "NIT",
		"customer":        "Cliente",
		"number":          "Número",
		"issue_date":      "Fecha",
		"due_date":        "Vencimiento",
		"shipping_date":   "Fecha de envío",
		"currency":        "Moneda",
		"col.pos":         "Pos.",
		"col.part":        "Referencia",
		"col.description": "Descripción",
		"col.qty":         "Cant.",
		"col.unit":        "Unidad",
		"col.price":       "Precio unit.",
		"col.total":       "Total",
		"page":            "Página",
		"of":              "de",
		"notes":           "Observaciones",
		"subtotal":        "Subtotal",
		"vat":             "IVA",
		"net_weight":      "Peso neto",
		"gross_weight":    "Peso bruto",
		"packages":        "Bultos",
		"grand_total":     "Total a pagar",
		"vat_exempt_note": "Exportación de bienes exenta de IVA.",
		"signatory":       "Firma autorizada",
		"foreign_note":    "Mercancía para exportación. Los aranceles corren por cuenta del destinatario.",
		"bank_account":    "Cuenta bancaria",
		"order":           "Pedido",
		"package":         "Bulto",
		"pieces":          "Piezas",
		"toolbar.print":   "Imprimir",
		"toolbar.export":  "Descargar PDF",
	},
	LocaleGerman: {
		"invoice.title":   "Rechnung",
		"order.title":     "Auftragsbestätigung",
		"labels.title":    "Versandetiketten",
		"tax_id":          "USt-IdNr.",
		"customer":        "Kunde",
		"number":          "Nummer",
		"issue_date":      "Datum",
		"due_date":        "Fällig am",
		"shipping_date":   "Versanddatum",
		"currency":        "Währung",
		"col.pos":         "Pos.",
		"col.part":        "Teilenr.",
		"col.description": "Bezeichnung",
		"col.qty":         "Menge",
		"col.unit":        "Einheit",
		"col.price":       "Einzelpreis",
		"col.total":       "Gesamt",
		"page":            "Seite",
		"of":              "von",
		"notes":           "Bemerkungen",
		"subtotal":        "Zwischensumme",
		"vat":             "MwSt.",
		"net_weight":      "Nettogewicht",
		"gross_weight":    "Bruttogewicht",
		"packages":        "Packstücke",
		"grand_total":     "Gesamtbetrag",
		"vat_exempt_note": "Steuerfreie Ausfuhrlieferung.",
		"signatory":       "Unterschrift",
		"foreign_note":    "Ware für den Export. Zölle trägt der Empfänger.",
		"bank_account":    "Bankverbindung",
		"order":           "Auftrag",
		"package":         "Packstück",
		"pieces":          "Stück",
		"toolbar.print":   "Drucken",
		"toolbar.export":  "PDF herunterladen",
	},
}

// Label texto traducido; cae al locale base y, si tampoco existe, devuelve la clave.
func Label(locale, key string) string {
	if t, ok := translations[locale][key]; ok {
		return t
	}
	if t, ok := translations[LocaleBase][key]; ok {
		return t
	}
	return key
}

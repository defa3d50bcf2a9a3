package i18n_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-print/internal/infrastructure/i18n"
)

func TestLocaleForCountry_CoincidenciaExacta(t *testing.T) {
	assert.Equal(t, "es", i18n.LocaleForCountry("Colombia"))
	assert.Equal(t, "de", i18n.LocaleForCountry("Germany"))
	assert.Equal(t, "en", i18n.LocaleForCountry("germany"), "no se normalizan mayúsculas")
	assert.Equal(t, "en", i18n.LocaleForCountry("France"))
	assert.Equal(t, "en", i18n.LocaleForCountry(""))
}

func TestLabel_FallbackAlBaseYALaClave(t *testing.T) {
	assert.Equal(t, "Factura", i18n.New("es").Label("invoice.title"))
	assert.Equal(t, "Rechnung", i18n.New("de").Label("invoice.title"))
	assert.Equal(t, "Invoice", i18n.New("fr").Label("invoice.title"))
	assert.Equal(t, "no.existe", i18n.New("es").Label("no.existe"))
}

func TestMoney_COPFormatoPropio(t *testing.T) {
	l := i18n.New("en")
	assert.Equal(t, "1.234.567 COP", l.Money(decimal.NewFromFloat(1234567.4), "COP"))
	assert.Equal(t, "999 COP", l.Money(decimal.NewFromInt(999), "cop"))
	assert.Equal(t, "-12.000 COP", l.Money(decimal.NewFromInt(-12000), "COP"))
}

func TestMoney_LocalizadoConXText(t *testing.T) {
	amount := decimal.NewFromFloat(1234.5)
	assert.Equal(t, "1,234.50 EUR", i18n.New("en").Money(amount, "EUR"))
	assert.Equal(t, "1.234,50 EUR", i18n.New("de").Money(amount, "EUR"))
}

func TestMoney_CodigoDesconocidoUsaLiteral(t *testing.T) {
	assert.Equal(t, "10.00 ZZZ", i18n.New("en").Money(decimal.NewFromInt(10), "ZZZ"))
	assert.Equal(t, "10.00 ", i18n.New("en").Money(decimal.NewFromInt(10), ""))
}

func TestDate_PorLocale(t *testing.T) {
	d := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-09", i18n.New("en").Date(d))
	assert.Equal(t, "09/03/2026", i18n.New("es").Date(d))
	assert.Equal(t, "09.03.2026", i18n.New("de").Date(d))
	assert.Equal(t, "-", i18n.New("es").Date(time.Time{}))
}

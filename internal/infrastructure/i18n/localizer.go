package i18n

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/Inventario-print/internal/domain/layout"
)

var _ layout.Localizer = (*Localizer)(nil)

var dateLayouts = map[string]string{
	LocaleBase:    "2006-01-02",
	LocaleSpanish: "02/01/2006",
	LocaleGerman:  "02.01.2006",
}

// Localizer implementa layout.Localizer para un locale fijo.
type Localizer struct {
	locale  string
	printer *message.Printer
}

// New construye el localizador; un locale desconocido se trata como el base.
func New(locale string) *Localizer {
	if _, ok := translations[locale]; !ok {
		locale = LocaleBase
	}
	return &Localizer{locale: locale, printer: message.NewPrinter(language.Make(locale))}
}

// ForCountry localizador para el país de la contraparte.
func ForCountry(country string) *Localizer {
	return New(LocaleForCountry(country))
}

// Locale código del locale activo.
func (l *Localizer) Locale() string { return l.locale }

// Label texto traducido.
func (l *Localizer) Label(key string) string { return Label(l.locale, key) }

// Money formatea un importe. COP usa su formato propio (puntos de miles, sin
// decimales, sufijo); el resto se localiza con x/text según la escala estándar
// de la moneda. Nunca falla: ante un código desconocido devuelve "<importe> <código>".
func (l *Localizer) Money(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "COP" {
		return FormatCOP(amount)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), code)
	}
	scale, _ := currency.Standard.Rounding(unit)
	f, _ := amount.Round(int32(scale)).Float64()
	return l.printer.Sprintf("%v %s", number.Decimal(f, number.Scale(scale)), code)
}

// Date formatea la fecha según el locale; la fecha cero se imprime como "-".
func (l *Localizer) Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayouts[l.locale])
}

// FormatCOP "1.234.567 COP": redondeo a pesos y puntos de miles.
func FormatCOP(amount decimal.Decimal) string {
	s := amount.Round(0).StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	return sign + groupThousands(s, '.') + " COP"
}

// groupThousands inserta el separador de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string, sep byte) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, sep)
		}
		buf = append(buf, c)
	}
	return string(buf)
}

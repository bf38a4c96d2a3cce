// Package money formatea montos para mostrar. Internamente todo el sistema
// opera con decimales exactos; la conversión a float ocurre únicamente acá,
// en la frontera de presentación.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formatea montos en la moneda y locale configurados.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter construye un formateador. locale en BCP 47 (ej. "pt-BR",
// "es-CO") y code en ISO 4217 (ej. "BRL", "COP").
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("money: locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("money: moneda %q: %w", code, err)
	}
	return &Formatter{printer: message.NewPrinter(tag), unit: unit}, nil
}

// Format devuelve el monto con símbolo de moneda según el locale.
func (f *Formatter) Format(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(v)))
}

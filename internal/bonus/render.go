package bonus

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// symbols stand in for display arguments in symbolic output.
const symbols = "XYZWVUTSRQPONMLKJIHGFEDCBA"

// Renderer turns bonuses into display strings.
type Renderer struct {
	src     TemplateSource
	printer *message.Printer
}

// NewRenderer returns a Renderer printing numbers in English.
func NewRenderer(src TemplateSource) *Renderer {
	return NewRendererFor(src, language.English)
}

// NewRendererFor returns a Renderer printing numbers for lang.
func NewRendererFor(src TemplateSource, lang language.Tag) *Renderer {
	return &Renderer{src: src, printer: message.NewPrinter(lang)}
}

// Display fills b's template with its arguments.
func (r *Renderer) Display(b Bonus) (string, error) {
	tmpl, err := b.DisplayFmt(r.src)
	if err != nil {
		return "", err
	}

	values := b.DisplayArgs()
	args := make([]string, len(values))
	for i, v := range values {
		args[i] = r.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
	}
	return tmpl.Format(args...)
}

// DisplaySymbolic fills b's template with placeholder letters X, Y, Z, ...
// instead of values.
func (r *Renderer) DisplaySymbolic(b Bonus) (string, error) {
	tmpl, err := b.DisplayFmt(r.src)
	if err != nil {
		return "", err
	}

	n := len(b.DisplayArgs())
	args := make([]string, n)
	for i := range n {
		args[i] = string(symbols[i%len(symbols)])
	}
	return tmpl.Format(args...)
}

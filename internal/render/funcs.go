package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ShyamendraHazra/home-config/internal/palette"
)

// templateFuncs returns the template functions available to
// template-substitution targets, bound to the palette being applied.
// They provide consistent colour access and formatting across all templates.
func templateFuncs(p *palette.Palette) template.FuncMap {
	return template.FuncMap{
		// Slot access. Panicking on a bad index is deliberate: a template
		// referencing a slot outside 0-15 is a configuration error.
		"color": func(i int) palette.RGB {
			c, err := p.Slot(i)
			if err != nil {
				panic(err)
			}
			return c
		},
		"background": func() palette.RGB { return p.Background() },
		"foreground": func() palette.RGB { return p.Foreground() },
		"allColors":  func() []palette.RGB { return p.Colors[:] },

		// Format conversion.
		"hex":        func(c palette.RGB) string { return c.Hex() },
		"hexNoHash":  func(c palette.RGB) string { return strings.TrimPrefix(c.Hex(), "#") },
		"rgb":        func(c palette.RGB) string { return c.String() },
		"rgbDecimal": func(c palette.RGB) string { return c.Decimal() },
		"rgba": func(c palette.RGB, alpha float64) string {
			return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", c.R, c.G, c.B, alpha)
		},

		// String manipulation.
		"toLower": strings.ToLower,
		"toUpper": strings.ToUpper,
	}
}

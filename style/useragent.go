// Package style provides the default user-agent stylesheet the cascade
// consults as the lowest-priority origin, built through the same
// Sheet.AppendData/DataDone surface any author stylesheet goes through.
package style

import (
	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/intern"
)

// defaultCSS is CSS 2.1 Appendix D's sample style sheet for HTML 4,
// trimmed to the elements this engine's test fixtures exercise. Kept as
// one literal block rather than split per rule, since a user-agent sheet
// is meant to be read start to end like any other stylesheet.
const defaultCSS = `
table { display: table; border-spacing: 2px; }
tr { display: table-row; }
td, th { display: table-cell; padding: 1px; }

div, p, h1, h2, h3, h4, h5, h6, ul, ol, li, dl, dt, dd,
blockquote, pre, form, fieldset, hr, address, center {
	display: block;
}

h1 { font-size: 2em; margin: 0.67em 0; font-weight: bold; }
h2 { font-size: 1.5em; margin: 0.83em 0; font-weight: bold; }
h3 { font-size: 1.17em; margin: 1em 0; font-weight: bold; }
h4 { font-size: 1em; margin: 1.33em 0; font-weight: bold; }
h5 { font-size: 0.83em; margin: 1.67em 0; font-weight: bold; }
h6 { font-size: 0.67em; margin: 2.33em 0; font-weight: bold; }

p { margin: 1em 0; }

ul, ol { margin: 1em 0; padding-left: 40px; }
li { display: list-item; }

a { color: blue; text-decoration: underline; }

b, strong { font-weight: bold; }
i, em { font-style: italic; }
u { text-decoration: underline; }
code, kbd, samp, tt { font-family: monospace; }
small { font-size: 0.83em; }
big { font-size: 1.17em; }

pre { font-family: monospace; white-space: pre; margin: 1em 0; }

hr { border-top-width: 1px; border-top-style: solid; margin: 0.5em 0; }

blockquote { margin: 1em 40px; }

center { text-align: center; }
`

// DefaultUserAgentStylesheet parses and returns CSS 2.1 Appendix D's
// sample style sheet as an OriginUA sheet, ready to be the first entry in
// Compute's sheet list.
func DefaultUserAgentStylesheet() *css.Sheet {
	sheet := css.CreateSheet("utf-8", "", "user agent", css.OriginUA, css.MediaAll, false, false, intern.New())
	if err := sheet.AppendData([]byte(defaultCSS)); err != css.Ok && err != css.NeedData {
		panic("style: built-in user-agent stylesheet failed to parse: " + err.String())
	}
	if err := sheet.DataDone(); err != css.Ok {
		panic("style: built-in user-agent stylesheet failed to parse: " + err.String())
	}
	return sheet
}

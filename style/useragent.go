// CSS 2.1 §6.4.4: User agent style sheets
package style

import (
	"github.com/lukehoban/browser/css"
)

// DefaultUserAgentStylesheet returns the built-in stylesheet applied
// before the page's own CSS, giving common elements their default
// display kind. It is restricted to spec.md's CSS subset: pixel
// lengths only, no pseudo-classes, no table/list-item display kinds
// (those box types are out of scope). Unlike the teacher's own
// user-agent sheet, it carries no margin defaults: spec.md's block
// layout algorithm (§4.4.3) has no notion of margin collapsing, so a
// nonzero default margin on `p`/headings/lists would double-count
// against every page stylesheet that also sets margins, and would
// make the §8 stacking scenario (S2) produce a parent height other
// than the sum of the children's explicit heights. `display: block`
// is the one default spec.md's layout actually depends on a page
// never setting explicitly.
func DefaultUserAgentStylesheet() (*css.Stylesheet, error) {
	const defaultCSS = `
div, p, h1, h2, h3, h4, h5, h6, ul, ol, li, dl, dt, dd,
blockquote, pre, form, fieldset, hr, address, center {
	display: block;
}
`
	return css.Parse(defaultCSS)
}

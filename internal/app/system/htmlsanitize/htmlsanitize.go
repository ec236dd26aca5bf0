// Package htmlsanitize strips unsafe markup from user-authored HTML
// before it is stored. Note bodies and feedback text are rendered with
// template.HTML, so everything persisted must pass through Sanitize.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	return p
}

// Sanitize returns s with scripts, event handlers, and unsafe URLs removed.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

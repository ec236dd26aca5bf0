// internal/app/features/meetings/templates.go
package meetings

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var tmplFS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "meetings",
		FS:       tmplFS,
		Patterns: []string{"templates/*.gohtml"},
	})
}

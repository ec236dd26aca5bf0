// internal/app/features/reflections/templates.go
package reflections

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var tmplFS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "reflections",
		FS:       tmplFS,
		Patterns: []string{"templates/*.gohtml"},
	})
}

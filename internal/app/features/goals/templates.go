// internal/app/features/goals/templates.go
package goals

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var tmplFS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "goals",
		FS:       tmplFS,
		Patterns: []string{"templates/*.gohtml"},
	})
}

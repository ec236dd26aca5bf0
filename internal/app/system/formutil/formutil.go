// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
// - All the context data needed for the form (dropdowns, etc.)
//
// This package provides a Base struct that can be embedded in form data structs
// to handle the common fields, and helper functions to populate them.
//
// Example usage:
//
//	type logMeetingData struct {
//		formutil.Base
//		Students []studentOption
//		Notes    string
//	}
//
//	// In your handler:
//	data := logMeetingData{Notes: notes}
//	formutil.SetBase(&data.Base, r, "Log Meeting", "/meetings")
//	data.SetError("Select at least one student.")
//	templates.Render(w, r, "meeting_log", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/advisehub/internal/app/system/authz"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	SiteName    string
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	BackURL     string
	CurrentPath string
	CSRFToken   string
	Error       template.HTML
}

// SetBase populates the common Base fields from the request context.
// It extracts user info from authz.UserCtx and sets navigation fields.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	role, uname, _, _ := authz.UserCtx(r)
	b.SiteName = models.DefaultSiteName
	b.Title = title
	b.IsLoggedIn = true
	b.Role = role
	b.UserName = uname
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
	b.CSRFToken = csrf.Token(r)
}

// SetError sets the error message on a Base struct.
// This is a convenience method for setting Error as template.HTML.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(msg)
}

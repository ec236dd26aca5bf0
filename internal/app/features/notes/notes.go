// internal/app/features/notes/notes.go
package notes

import (
	"html/template"
	"net/http"

	uierrors "github.com/dalemusser/advisehub/internal/app/features/errors"
	"github.com/dalemusser/advisehub/internal/app/policy/selection"
	"github.com/dalemusser/advisehub/internal/app/system/authz"
	"github.com/dalemusser/advisehub/internal/app/system/fanout"
	"github.com/dalemusser/advisehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/advisehub/internal/app/system/timeouts"
	"github.com/dalemusser/advisehub/internal/app/system/viewdata"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type noteRow struct {
	models.Note
	BodyHTML template.HTML
}

func toNoteRows(ns []models.Note) []noteRow {
	rows := make([]noteRow, 0, len(ns))
	for _, n := range ns {
		// Body was sanitized before it was stored.
		rows = append(rows, noteRow{Note: n, BodyHTML: template.HTML(n.Body)})
	}
	return rows
}

type listData struct {
	viewdata.BaseVM
	Rows []noteRow
}

// ServeNotesList handles GET /notes. Advisors see notes they wrote;
// students see notes tagged at them.
func (h *Handler) ServeNotesList(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "notes list")
	defer cancel()

	var (
		notes []models.Note
		err   error
	)
	if role == "student" {
		notes, err = h.Notes.ByStudent(ctx, userID)
	} else {
		notes, err = h.Notes.ByAdvisor(ctx, userID)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "notes: list load failed", err, "Could not load notes.", "/dashboard")
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Notes", "/dashboard"),
		Rows:   toNoteRows(notes),
	}
	templates.Render(w, r, "notes_list", data)
}

type formData struct {
	viewdata.BaseVM
	Error    string
	Students []models.User
	Teams    []models.Team
	Warning  string
}

// ServeNewNote handles GET /notes/new.
func (h *Handler) ServeNewNote(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "note form load")
	defer cancel()

	students, err := h.Users.StudentsByAdvisor(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "notes: roster load failed", err, "Could not load the note form.", "/notes")
		return
	}
	teams, err := h.Teams.All(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "notes: team load failed", err, "Could not load the note form.", "/notes")
		return
	}

	data := formData{
		BaseVM:   viewdata.NewBaseVM(r, "New Note", "/notes"),
		Students: students,
		Teams:    teams,
	}
	templates.Render(w, r, "notes_new", data)
}

// HandleCreateNote handles POST /notes. The selection is resolved and
// flattened onto the note; attachments are uploaded one at a time, and
// a failed file does not sink the note or the other files.
func (h *Handler) HandleCreateNote(w http.ResponseWriter, r *http.Request) {
	_, advisorName, advisorID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(maxAttachmentBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "notes: bad form", err, "Could not read the note form.", "/notes/new")
		return
	}

	mode := selection.ParseMode(r.FormValue("mode"))
	body := htmlsanitize.Sanitize(r.FormValue("body"))

	var studentIDs []primitive.ObjectID
	switch mode {
	case selection.ModeSingle:
		if id, err := primitive.ObjectIDFromHex(r.FormValue("student_id")); err == nil {
			studentIDs = append(studentIDs, id)
		}
	case selection.ModeMultiple:
		for _, raw := range r.Form["student_ids"] {
			if id, err := primitive.ObjectIDFromHex(raw); err == nil {
				studentIDs = append(studentIDs, id)
			}
		}
	}
	var teamID primitive.ObjectID
	if mode == selection.ModeTeam {
		teamID, _ = primitive.ObjectIDFromHex(r.FormValue("team_id"))
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "note create")
	defer cancel()

	students, err := h.Users.StudentsByAdvisor(ctx, advisorID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "notes: roster load failed", err, "Could not save the note.", "/notes/new")
		return
	}
	teams, err := h.Teams.All(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "notes: team load failed", err, "Could not save the note.", "/notes/new")
		return
	}

	set := selection.Resolve(mode, studentIDs, teamID, students, teams)
	if set.Empty() {
		h.renderFormError(w, r, advisorID, "Tag the note at a student or a team.")
		return
	}
	if body == "" {
		h.renderFormError(w, r, advisorID, "The note body is empty.")
		return
	}

	note, err := h.Notes.Create(ctx, models.Note{
		AdvisorID:    advisorID,
		AdvisorName:  advisorName,
		StudentIDs:   set.StudentIDs,
		StudentNames: set.StudentNames,
		TeamID:       set.TeamID,
		TeamName:     set.TeamName,
		Body:         body,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "notes: create failed", err, "Could not save the note.", "/notes/new")
		return
	}

	// Upload attachments sequentially; collect per-file outcomes.
	var rep fanout.Report
	var atts []models.Attachment
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["attachments"] {
			att, err := h.storeAttachment(ctx, fh)
			rep.Add(fh.Filename, err)
			if err == nil {
				atts = append(atts, att)
			}
		}
	}
	if err := h.Notes.AddAttachments(ctx, note.ID, atts); err != nil {
		h.ErrLog.LogServerError(w, r, "notes: attach failed", err, "The note was saved but its files were not.", "/notes")
		return
	}

	if len(rep.Failed()) > 0 {
		h.Log.Warn("note attachments partially failed",
			zap.String("note_id", note.ID.Hex()),
			zap.String("summary", rep.Summary()))
		http.Redirect(w, r, "/notes/"+note.ID.Hex()+"?uploads=partial", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/notes/"+note.ID.Hex(), http.StatusSeeOther)
}

type viewDataNote struct {
	viewdata.BaseVM
	Note        noteRow
	Attachments []attachmentLink
	Warning     string
}

type attachmentLink struct {
	models.Attachment
	URL string
}

// ServeNoteView handles GET /notes/{id}.
func (h *Handler) ServeNoteView(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "notes: bad note id", err, "That note link is not valid.", "/notes")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "note view")
	defer cancel()

	n, err := h.Notes.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "notes: lookup failed", err, "That note could not be found.", "/notes")
		return
	}

	if !h.canViewNote(r, n) {
		w.WriteHeader(http.StatusForbidden)
		uierrors.RenderForbidden(w, r, "You do not have access to this note.", "/notes")
		return
	}

	links := make([]attachmentLink, 0, len(n.Attachments))
	for _, a := range n.Attachments {
		links = append(links, attachmentLink{Attachment: a, URL: h.Media.URL(a.Path)})
	}

	var warning string
	if r.URL.Query().Get("uploads") == "partial" {
		warning = "Some attachments could not be uploaded."
	}

	data := viewDataNote{
		BaseVM:      viewdata.NewBaseVM(r, "Note", "/notes"),
		Note:        noteRow{Note: n, BodyHTML: template.HTML(n.Body)},
		Attachments: links,
		Warning:     warning,
	}
	templates.Render(w, r, "notes_view", data)
}

// canViewNote: the authoring advisor, a tagged student, or an admin.
func (h *Handler) canViewNote(r *http.Request, n models.Note) bool {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case "admin", "superadmin":
		return true
	case "advisor":
		return n.AdvisorID == userID
	case "student":
		for _, sid := range n.StudentIDs {
			if sid == userID {
				return true
			}
		}
	}
	return false
}

func (h *Handler) renderFormError(w http.ResponseWriter, r *http.Request, advisorID primitive.ObjectID, msg string) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "note form reload")
	defer cancel()

	students, _ := h.Users.StudentsByAdvisor(ctx, advisorID)
	teams, _ := h.Teams.All(ctx)

	data := formData{
		BaseVM:   viewdata.NewBaseVM(r, "New Note", "/notes"),
		Error:    msg,
		Students: students,
		Teams:    teams,
	}
	templates.Render(w, r, "notes_new", data)
}

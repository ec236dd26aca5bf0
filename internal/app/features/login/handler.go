// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/advisehub/internal/app/features/errors"
	userstore "github.com/dalemusser/advisehub/internal/app/store/users"
	"github.com/dalemusser/advisehub/internal/app/system/auth"
	"github.com/dalemusser/advisehub/internal/app/system/normalize"
	"github.com/dalemusser/advisehub/internal/app/system/status"
	"github.com/dalemusser/advisehub/internal/app/system/timeouts"
	"github.com/dalemusser/advisehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Users  *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
		Users:  userstore.New(db),
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign In", "/"),
		ReturnURL: r.URL.Query().Get("return"),
	}
	templates.Render(w, r, "login", data)
}

// HandleLoginPost handles POST /login.
//
// Failed attempts get the same generic message whether the email is
// unknown, the password is wrong, or the account has no password yet,
// so the form does not leak which accounts exist.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "login: bad form", err, "Could not read the sign-in form.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	if email == "" || password == "" {
		h.renderError(w, r, email, returnURL, "Email and password are required.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login lookup")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			h.renderError(w, r, email, returnURL, "Invalid email or password.")
			return
		}
		h.ErrLog.LogServerError(w, r, "login: user lookup failed", err, "Could not sign you in right now.", "/login")
		return
	}

	if u.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		h.renderError(w, r, email, returnURL, "Invalid email or password.")
		return
	}

	if u.Status != status.Active {
		h.renderError(w, r, email, returnURL, "This account is disabled. Contact your program admin.")
		return
	}

	sessUser := &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}
	if err := auth.SignIn(w, r, sessUser); err != nil {
		h.ErrLog.LogServerError(w, r, "login: session save failed", err, "Could not sign you in right now.", "/login")
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", u.Role))

	http.Redirect(w, r, safeReturnURL(returnURL), http.StatusSeeOther)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, email, returnURL, msg string) {
	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign In", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: returnURL,
	}
	templates.Render(w, r, "login", data)
}

// safeReturnURL only honors same-site relative paths; anything else
// falls back to the dashboard.
func safeReturnURL(ret string) string {
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") {
		return "/dashboard"
	}
	return ret
}

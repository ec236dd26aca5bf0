// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/dalemusser/advisehub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/advisehub/internal/app/features/errors"
	goalsfeature "github.com/dalemusser/advisehub/internal/app/features/goals"
	healthfeature "github.com/dalemusser/advisehub/internal/app/features/health"
	homefeature "github.com/dalemusser/advisehub/internal/app/features/home"
	loginfeature "github.com/dalemusser/advisehub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/advisehub/internal/app/features/logout"
	meetingsfeature "github.com/dalemusser/advisehub/internal/app/features/meetings"
	notesfeature "github.com/dalemusser/advisehub/internal/app/features/notes"
	reflectionsfeature "github.com/dalemusser/advisehub/internal/app/features/reflections"
	webhooksfeature "github.com/dalemusser/advisehub/internal/app/features/webhooks"
	"github.com/dalemusser/advisehub/internal/app/system/auth"
	"github.com/dalemusser/advisehub/internal/app/system/media"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// AdviseHub initializes the session store and template engine, mounts the
// Calendly webhook outside the browser middleware (its authenticity comes
// from the payload signature, not cookies), and wraps everything else in
// CSRF protection and session loading.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Local disk storage for note attachments.
	mediaStore, err := media.NewLocal(appCfg.UploadPath, appCfg.UploadURL)
	if err != nil {
		logger.Error("media store init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Calendly webhook ingestion. Mounted before the CSRF/session group
	// so signed machine-to-machine POSTs are not rejected for lacking a
	// browser token.
	webhookHandler := webhooksfeature.NewHandler(db, logger, appCfg.CalendlyWebhookSecret)
	r.Mount("/webhooks", webhooksfeature.Routes(webhookHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Stored note attachments, served from local disk.
	mediaPrefix := appCfg.UploadURL
	r.Handle(mediaPrefix+"/*", http.StripPrefix(mediaPrefix+"/", http.FileServer(http.Dir(mediaStore.Root()))))

	// Everything below is browser-facing: CSRF protection plus the
	// session middleware that loads the current user into context.
	r.Group(func(r chi.Router) {
		r.Use(csrf.Protect([]byte(appCfg.SessionKey),
			csrf.Secure(secure),
			csrf.Path("/"),
		))
		r.Use(auth.LoadSessionUser)

		// Public pages
		homeHandler := homefeature.NewHandler(logger)
		r.Mount("/", homefeature.Routes(homeHandler))

		// Authentication
		loginHandler := loginfeature.NewHandler(db, logger)
		r.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(logger)
		r.Mount("/logout", logoutfeature.Routes(logoutHandler))

		// Error pages
		errorsHandler := errorsfeature.NewHandler()
		r.Get("/forbidden", errorsHandler.Forbidden)
		r.Get("/unauthorized", errorsHandler.Unauthorized)

		// Role-based dashboards
		dashboardHandler := dashboardfeature.NewHandler(db, logger)
		r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

		// Meeting lifecycle: lists, advisor logging, attendance,
		// student self-reports.
		meetingsHandler := meetingsfeature.NewHandler(db, logger)
		r.Mount("/meetings", meetingsfeature.Routes(meetingsHandler))

		// Advising notes with attachments
		notesHandler := notesfeature.NewHandler(db, logger, mediaStore)
		r.Mount("/notes", notesfeature.Routes(notesHandler))

		// Student goals
		goalsHandler := goalsfeature.NewHandler(db, logger)
		r.Mount("/goals", goalsfeature.Routes(goalsHandler))

		// Student reflections
		reflectionsHandler := reflectionsfeature.NewHandler(db, logger)
		r.Mount("/reflections", reflectionsfeature.Routes(reflectionsHandler))
	})

	return r, nil
}

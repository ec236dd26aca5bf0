// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); AppConfig is everything specific to AdviseHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Attachment storage (local disk)
	UploadPath string // Directory note attachments are written to (e.g., "./uploads/notes")
	UploadURL  string // URL prefix attachments are served from (e.g., "/media")

	// Calendly webhook ingestion
	CalendlyWebhookSecret string // HMAC secret for webhook signatures (blank disables verification)

	// Admin bootstrap: creates an admin account on startup when both
	// are set and no account with the email exists yet.
	AdminEmail    string
	AdminPassword string
}

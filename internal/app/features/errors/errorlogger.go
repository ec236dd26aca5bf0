// internal/app/features/errors/errorlogger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with user-facing error pages so
// handlers can report a failure in one call: the operational detail goes
// to the log, the friendly message goes to the browser.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger around the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs an internal failure and renders a 500-class error
// page with the given user message and back link.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg,
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.Error(err))
	w.WriteHeader(http.StatusInternalServerError)
	RenderMessage(w, r, "Something went wrong", userMsg, backURL)
}

// LogBadRequest logs a client-input failure and renders a 400-class
// error page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg,
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.Error(err))
	w.WriteHeader(http.StatusBadRequest)
	RenderMessage(w, r, "Invalid request", userMsg, backURL)
}

// LogNotFound logs a lookup miss and renders a 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg,
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.Error(err))
	w.WriteHeader(http.StatusNotFound)
	RenderMessage(w, r, "Not found", userMsg, backURL)
}

// Package logging configures the process-wide slog logger and the HTTP
// request logger.
package logging

import (
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldBytes     = "bytes"
	FieldError     = "error"
	FieldFile      = "file"
	FieldRows      = "rows"
)

// Components
const (
	ComponentCLI    = "cli"
	ComponentHTTP   = "http"
	ComponentLoader = "loader"
	ComponentTUI    = "tui"
)

// Options holds logger configuration.
type Options struct {
	Verbose bool // debug level
	Quiet   bool // warnings and errors only
	JSON    bool
}

// New builds a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case opts.Verbose:
		level = slog.LevelDebug
	case opts.Quiet:
		level = slog.LevelWarn
	}

	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h)
}

// Setup builds a logger and installs it as the slog default.
func Setup(w io.Writer, opts Options) *slog.Logger {
	logger := New(w, opts)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}

// RequestLogger logs one line per HTTP request once the handler returns.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With(FieldComponent, ComponentHTTP)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "request",
				slog.String(FieldRequestID, middleware.GetReqID(r.Context())),
				slog.String(FieldMethod, r.Method),
				slog.String(FieldPath, r.URL.Path),
				slog.Int(FieldStatus, ww.Status()),
				slog.Int(FieldBytes, ww.BytesWritten()),
				slog.Int64(FieldDuration, time.Since(start).Milliseconds()),
			)
		})
	}
}

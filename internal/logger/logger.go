package logger

import (
	"io"
	"log/slog"
)

// New builds the application logger and installs it as the slog default.
// Development gets debug level with source locations in text form;
// anything else logs JSON at info level.
func New(environment string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if environment == "development" {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Err returns an "error" attribute, or an empty attribute for a nil error
// so it can be passed unconditionally.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

const serviceName = "roibeauty-api"

func init() {
	level := slog.LevelInfo
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			panic(fmt.Sprintf("invalid LOG_LEVEL: %s", s))
		}
	}

	format := os.Getenv("LOG_FORMAT")
	if format == "" {
		format = "json"
		if env := os.Getenv("ENVIRONMENT"); env == "" || env == "development" {
			format = "text"
		}
	}

	slog.SetDefault(newLogger(os.Stderr, level, format))
}

// newLogger returns colored text output for local work and JSON
// otherwise. Debug level adds trimmed source locations.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	addSource := level <= slog.LevelDebug

	if format == "text" {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			AddSource:  addSource,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if err, ok := a.Value.Any().(error); ok {
					colored := tint.Err(err)
					colored.Key = a.Key
					return colored
				}
				return trimSource(a)
			},
		}))
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return trimSource(a)
		},
	})).With("service", serviceName)
}

func trimSource(a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}
	if src, ok := a.Value.Any().(*slog.Source); ok {
		src.File = relativeSource(src.File)
	}
	return a
}

// relativeSource shortens an absolute build path to its package-relative
// form, e.g. ".../storefront/internal/checkout/confirm.go" becomes
// "internal/checkout/confirm.go".
func relativeSource(file string) string {
	for _, dir := range []string{"/internal/", "/service/", "/storage/", "/cmd/"} {
		if i := strings.LastIndex(file, dir); i != -1 {
			return file[i+1:]
		}
	}
	return file
}

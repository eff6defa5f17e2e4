// Package sl holds small slog attribute helpers used across the service.
package sl

import (
	"fmt"
	"log/slog"
)

func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Secret masks a sensitive value, keeping only a short prefix so log lines
// stay correlatable.
func Secret(key, value string) slog.Attr {
	masked := "?"
	switch {
	case len(value) > 5:
		masked = fmt.Sprintf("%s***", value[:5])
	case len(value) > 0:
		masked = "***"
	}
	return slog.String(key, masked)
}

func Module(mod string) slog.Attr {
	return slog.String("mod", mod)
}

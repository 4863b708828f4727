package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New writes text records to stderr, keeping stdout for the progress
// output of the commands.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(name string) (level slog.Level, err error) {
	if err = level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		err = fmt.Errorf("unknown log level [%s]", name)
	}
	return
}

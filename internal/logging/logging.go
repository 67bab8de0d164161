// Package logging installs a file-backed slog handler as the process
// default. The TUI owns the terminal, so nothing may log to stdout or
// stderr; the server shares the same setup so both binaries log the
// same way.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const logFile = "kanri.log"

// Init opens (or creates) the log file under dir and wires both slog and
// the standard log package to it. An empty dir falls back to
// ~/.kanri/logs. The level comes from KANRI_LOG_LEVEL (debug, info, warn,
// error); unset or unrecognized means info.
func Init(dir string) error {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".kanri", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	file, err := os.OpenFile(filepath.Join(dir, logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	install(file)
	return nil
}

func install(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	slog.SetDefault(slog.New(handler))

	// Third-party code using the standard log package lands in the same
	// file.
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("KANRI_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init builds the process logger with dual sinks: a console writer on
// stderr and a rotating file under the profile directory. APOLLO_LOGS
// overrides the file location; a .env next to the database is read
// first so the override works without exporting anything.
func Init(profileDir string, verbose bool) zerolog.Logger {
	_ = godotenv.Load(filepath.Join(profileDir, ".env"))

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	logDir := os.Getenv("APOLLO_LOGS")
	if logDir == "" {
		logDir = filepath.Join(profileDir, "logs")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		// Console-only beats no logs at all.
		return zerolog.New(consoleWriter).Level(level).With().Timestamp().Logger()
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "apollo.log"),
		MaxSize:    16, // megabytes
		MaxBackups: 8,
		MaxAge:     90, // days
		Compress:   true,
	}

	multi := zerolog.MultiLevelWriter(io.Writer(consoleWriter), fileWriter)
	return zerolog.New(multi).Level(level).With().Timestamp().Logger()
}

package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

func get() *log.Logger {
	once.Do(func() {
		singleton = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "shoeview",
		})
		singleton.SetLevel(log.InfoLevel)
	})
	return singleton
}

// SetLevel parses a level name (debug, info, warn, error). Unknown names leave
// the level unchanged and return the parse error.
func SetLevel(level string) error {
	l, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	get().SetLevel(l)
	return nil
}

func SetOutput(w io.Writer) {
	get().SetOutput(w)
}

// Logger returns the process logger for callers that want structured fields.
func Logger() *log.Logger {
	return get()
}

func Debug(msg string, keyvals ...any) {
	get().Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...any) {
	get().Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...any) {
	get().Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...any) {
	get().Error(msg, keyvals...)
}

func Fatal(msg string, keyvals ...any) {
	get().Fatal(msg, keyvals...)
}

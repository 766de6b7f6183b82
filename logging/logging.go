package logging

import (
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options configure SetupLogging.
type Options struct {
	File       string // empty disables logging (except log.Fatal/panic)
	Level      string // debug, info, warn, error
	Format     string // text or json
	MaxSizeMB  int
	MaxBackups int
}

// Fields is an alias kept so callers need not import logrus.
type Fields = logrus.Fields

var (
	mu        sync.RWMutex
	logger    = newDiscardLogger()
	debugMode bool
)

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// SetupLogging configures logging.
// If opts.File is empty, logging is disabled (except log.Fatal/panic).
// If it is set, logs go to that file, rotated by size, and the standard
// library logger (used by Bubble Tea) is routed there too at debug level.
func SetupLogging(opts Options) (cleanup func(), err error) {
	if opts.File == "" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.SetOutput(io.Discard)
		mu.Lock()
		logger = newDiscardLogger()
		debugMode = false
		mu.Unlock()
		return func() {}, nil
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize,
		MaxBackups: opts.MaxBackups,
	}

	l := logrus.New()
	l.SetOutput(rotator)
	l.SetLevel(ParseLevel(opts.Level))
	if strings.EqualFold(opts.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			DisableColors:   true,
		})
	}

	// configure stdlib logger
	std := l.WriterLevel(logrus.DebugLevel)
	log.SetFlags(log.Lshortfile)
	log.SetOutput(std)

	mu.Lock()
	logger = l
	debugMode = l.IsLevelEnabled(logrus.DebugLevel)
	mu.Unlock()

	cleanup = func() {
		log.SetOutput(io.Discard)
		std.Close()
		rotator.Close()
	}
	return cleanup, nil
}

// ParseLevel maps a level name to a logrus level, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func current() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// IsDebugMode reports whether debug output is being written.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debugMode
}

// WithComponent tags entries with the emitting component.
func WithComponent(component string) *logrus.Entry {
	return current().WithField("component", component)
}

// WithFields returns an entry carrying the given fields.
func WithFields(fields Fields) *logrus.Entry {
	return current().WithFields(fields)
}

func Debug(msg string)                  { current().Debug(msg) }
func Debugf(format string, args ...any) { current().Debugf(format, args...) }
func Info(msg string)                   { current().Info(msg) }
func Infof(format string, args ...any)  { current().Infof(format, args...) }
func Warnf(format string, args ...any)  { current().Warnf(format, args...) }
func Errorf(format string, args ...any) { current().Errorf(format, args...) }

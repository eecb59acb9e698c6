// Package log provides the structured logger used across the verifier.
// It wraps zerolog so every package logs phase transitions and buffer
// lifecycle events through the same global, leveled logger.
package log

import (
	"cmp"
	"fmt"
	"os"
	"path"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	// RFC3339Milli is like time.RFC3339Nano but with fixed-width milliseconds.
	RFC3339Milli = "2006-01-02T15:04:05.000Z07:00"
)

var (
	logger zerolog.Logger
	mu     sync.RWMutex
)

func init() {
	// $LOG_LEVEL lets tests and local runs override verbosity without
	// touching call sites; defaults to "error" so package tests stay quiet.
	Init(cmp.Or(os.Getenv("LOG_LEVEL"), LevelError), "stderr")
}

// Logger returns a snapshot of the current global logger.
func Logger() *zerolog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	return &l
}

func setLogger(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Init (re)configures the global logger. output is "stdout", "stderr", or a
// file path.
func Init(level, output string) {
	var out *os.File
	switch output {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			panic(fmt.Sprintf("cannot create log output: %v", err))
		}
		out = f
	}

	l := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: RFC3339Milli}).
		With().Timestamp().Caller().Logger()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerolog.CallerSkipFrameCount = 3
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return fmt.Sprintf("%s/%s:%d", path.Base(path.Dir(file)), path.Base(file), line)
	}

	switch level {
	case LevelDebug:
		l = l.Level(zerolog.DebugLevel)
	case LevelInfo:
		l = l.Level(zerolog.InfoLevel)
	case LevelWarn:
		l = l.Level(zerolog.WarnLevel)
	case LevelError:
		l = l.Level(zerolog.ErrorLevel)
	default:
		panic(fmt.Sprintf("invalid log level: %q", level))
	}

	setLogger(l)
}

func Debugw(msg string, keyvalues ...any) { Logger().Debug().Fields(keyvalues).Msg(msg) }
func Infow(msg string, keyvalues ...any)  { Logger().Info().Fields(keyvalues).Msg(msg) }
func Warnw(msg string, keyvalues ...any)  { Logger().Warn().Fields(keyvalues).Msg(msg) }

// Errorw logs err at error level alongside a message and optional fields.
func Errorw(err error, msg string, keyvalues ...any) {
	Logger().Error().Err(err).Fields(keyvalues).Msg(msg)
}

// Fatalw logs at fatal level and terminates the process.
func Fatalw(msg string, keyvalues ...any) {
	Logger().Fatal().Fields(keyvalues).Msg(msg + "\n" + string(debug.Stack()))
	panic("unreachable")
}

// Debugf/Infof/Warnf/Errorf mirror fmt.Sprintf-style logging for call sites
// that don't have structured fields handy.
func Debugf(template string, args ...any) { Logger().Debug().Msgf(template, args...) }
func Infof(template string, args ...any)  { Logger().Info().Msgf(template, args...) }
func Warnf(template string, args ...any)  { Logger().Warn().Msgf(template, args...) }
func Errorf(template string, args ...any) { Logger().Error().Msgf(template, args...) }

// elapsed is a small helper for logging phase durations in the teacher's
// "took" field convention.
func elapsed(start time.Time) string { return time.Since(start).String() }

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const redacted = "[REDACTED]"

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// sensitiveKeys are attribute keys whose values never reach the log.
var sensitiveKeys = map[string]bool{
	"api_key":       true,
	"apikey":        true,
	"x-api-key":     true,
	"authorization": true,
	"password":      true,
	"secret":        true,
	"token":         true,
}

// InitLogger configures the package logger. Records always go to stdout and,
// when file is set, to a size-rotated file as well.
func InitLogger(file string, maxSizeMB, maxBackups, maxAgeDays int, compress bool, level string) {
	var w io.Writer = os.Stdout
	if file != "" {
		if dir := filepath.Dir(file); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		w = zerolog.MultiLevelWriter(os.Stdout, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   compress,
		})
	}
	l := zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(level))

	mu.Lock()
	logger = l
	mu.Unlock()
}

// SetLogLevel changes the minimum level; unknown names fall back to info.
func SetLogLevel(level string) {
	mu.Lock()
	logger = logger.Level(parseLevel(level))
	mu.Unlock()
}

// SetLoggerForTest swaps the package logger, typically for one writing to a buffer.
func SetLoggerForTest(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func Debug(msg string, kv ...any) { emit(current().Debug(), msg, kv) }
func Info(msg string, kv ...any)  { emit(current().Info(), msg, kv) }
func Warn(msg string, kv ...any)  { emit(current().Warn(), msg, kv) }
func Error(msg string, kv ...any) { emit(current().Error(), msg, kv) }

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// emit attaches alternating key/value pairs to e. A trailing key without a
// value is kept under "!BADKEY".
func emit(e *zerolog.Event, msg string, kv []any) {
	if e == nil {
		return
	}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if i+1 >= len(kv) {
			e = e.Str("!BADKEY", key)
			break
		}
		val := kv[i+1]
		switch {
		case sensitiveKeys[strings.ToLower(key)]:
			e = e.Str(key, redacted)
		case isError(val):
			e = e.AnErr(key, val.(error))
		default:
			e = e.Interface(key, val)
		}
	}
	e.Msg(msg)
}

func isError(v any) bool {
	_, ok := v.(error)
	return ok
}

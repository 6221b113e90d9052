package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeError   LogType = "ERR"
	TypeVoice   LogType = "VC"
	TypeTimer   LogType = "TMR"
)

// CustomHandler renders records as single colored lines prefixed with the bot name.
type CustomHandler struct {
	opts   *slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	color  bool
	attrs  []slog.Attr
	groups []string
}

func NewHandler() *CustomHandler {
	return NewHandlerWithOptions(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}, true)
}

func NewHandlerWithOptions(out io.Writer, opts *slog.HandlerOptions, color bool) *CustomHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: slog.LevelInfo}
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &CustomHandler{
		opts:  opts,
		out:   out,
		mu:    &sync.Mutex{},
		color: color,
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	values := collectAttrs(h.attrs, &r)
	logType := getLogType(values["type"])

	message := r.Message
	if r.Level >= slog.LevelError {
		location := values["error_location"]
		if location == "" {
			location = getSourceLocation(r.PC)
		}
		if location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if details := values["error"]; details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
	}

	if cmd, user := values["name"], values["user_name"]; cmd != "" && user != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, cmd, user)
	}
	if status := values["status"]; status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}

	var attrsStr strings.Builder
	prefix := strings.Join(h.groups, ".")
	for _, attr := range h.attrs {
		appendAttr(&attrsStr, prefix, attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&attrsStr, prefix, a)
		return true
	})

	line := fmt.Sprintf("[Focus] [%s] [%s] [%s] %s%s",
		r.Time.Format(time.TimeOnly),
		levelText,
		logType,
		message,
		attrsStr.String(),
	)
	if h.color {
		line = fmt.Sprintf("%s[Focus] [%s] [%s%s%s] [%s%s%s] %s%s%s",
			colorWhite,
			r.Time.Format(time.TimeOnly),
			levelColor, levelText, colorWhite,
			colorCyan, logType, colorWhite,
			message,
			attrsStr.String(),
			colorReset,
		)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out, line)
	return err
}

func appendAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	if isInternalAttr(attr.Key) {
		return
	}
	key := attr.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	fmt.Fprintf(b, " %s=%v", key, attr.Value)
}

func collectAttrs(base []slog.Attr, r *slog.Record) map[string]string {
	values := make(map[string]string, len(base)+r.NumAttrs())
	for _, a := range base {
		values[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		values[a.Key] = a.Value.String()
		return true
	})
	return values
}

func shouldSkipLog(r *slog.Record) bool {
	// disgo's gateway and rest chatter
	skippedMessages := []string{
		"locking buckets",
		"unlocking buckets",
		"gateway event",
		"cleaning up bucket",
		"cleaned up rate limit buckets",
		"binary message received",
		"received gateway message",
		"sending gateway command",
		"new request",
		"new response",
		"locking rest bucket",
		"unlocking rest bucket",
		"rate limit response headers",
		"sending heartbeat",
	}

	msg := strings.ToLower(r.Message)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

func getLogType(value string) LogType {
	switch value {
	case "cmd":
		return TypeCommand
	case "db":
		return TypeDB
	case "error":
		return TypeError
	case "voice":
		return TypeVoice
	case "timer":
		return TypeTimer
	default:
		return TypeSystem
	}
}

func getSourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "name", "user_name", "status", "error", "error_location":
		return true
	}
	return false
}

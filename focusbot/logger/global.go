package logger

import (
	"log/slog"
	"time"
)

// LogCommand logs command execution
func LogCommand(name string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "cmd"),
		slog.String("name", name),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Command failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Info("Command executed", attrs...)
	}
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogVoice logs voice presence transitions
func LogVoice(msg string, userID string, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "voice"),
		slog.String("user_id", userID),
	}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogTimer logs timer lifecycle events at debug level
func LogTimer(msg string, class string, userID string, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "timer"),
		slog.String("class", class),
		slog.String("user_id", userID),
	}
	slog.Debug(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}

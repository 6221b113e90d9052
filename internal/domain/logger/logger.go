package logger

import (
	"log/slog"
	"time"
)

// OpLogger times one store operation and logs its outcome under type=db.
type OpLogger struct {
	Operation string
	UserID    string
	Attrs     []any
	StartTime time.Time
}

func Track(operation, userID string, attrs ...any) *OpLogger {
	return &OpLogger{
		Operation: operation,
		UserID:    userID,
		Attrs:     attrs,
		StartTime: time.Now(),
	}
}

func (l *OpLogger) Done(err error, rowsAffected int64) {
	duration := time.Since(l.StartTime)

	attrs := append([]any{
		slog.String("type", "db"),
		slog.String("operation", l.Operation),
		slog.String("user_id", l.UserID),
		slog.Duration("took", duration),
	}, l.Attrs...)

	if err != nil {
		slog.Error("Store operation failed", append(attrs, slog.Any("error", err))...)
		return
	}

	slog.Debug("Store operation done", append(attrs, slog.Int64("affected_rows", rowsAffected))...)
}

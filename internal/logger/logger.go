package logger

import (
	"errors"
	"fmt"
	"log/slog"
)

type Logger struct {
	logger *slog.Logger
}

func New(pkg string) Logger {
	return Logger{logger: slog.Default().With("package", pkg)}
}

func (l Logger) base() *slog.Logger {
	if l.logger == nil {
		return slog.Default()
	}
	return l.logger
}

func (l Logger) Function(name string) Logger {
	return Logger{logger: l.base().With("function", name)}
}

func (l Logger) File(name string) Logger {
	return Logger{logger: l.base().With("file", name)}
}

func (l Logger) Debug(msg string, args ...any) {
	l.base().Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.base().Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.base().Warn(msg, args...)
}

// Er logs an error without returning one.
func (l Logger) Er(msg string, err error, args ...any) {
	l.base().Error(msg, append([]any{"error", err}, args...)...)
}

// ErMsg logs an error-level message without an underlying error.
func (l Logger) ErMsg(msg string, args ...any) {
	l.base().Error(msg, args...)
}

// Err logs and returns the wrapped error so call sites can
// `return log.Err(...)` in one statement.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.base().Error(msg, append([]any{"error", err}, args...)...)
	return fmt.Errorf("%s: %w", msg, err)
}

func (l Logger) ErrMsg(msg string, args ...any) error {
	l.base().Error(msg, args...)
	return errors.New(msg)
}

func (l Logger) Error(msg string, args ...any) error {
	l.base().Error(msg, args...)
	return errors.New(msg)
}

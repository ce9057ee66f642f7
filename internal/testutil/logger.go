// Package testutil holds helpers shared by the tests of several packages.
package testutil

import (
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug level logger whose output goes to t.Log,
// so it is only shown for failing tests or with -v. Records carry the test
// name, which keeps store and CLI output apart in parallel runs.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	handler := slog.NewTextHandler(logWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(handler).With("test", t.Name())
}

type logWriter struct {
	t testing.TB
}

func (w logWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

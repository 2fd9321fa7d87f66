// Package testutil provides shared helpers for internal package tests.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger returns a debug-level slog.Logger routed through t.Log,
// so loader and store output only surfaces for failing or verbose runs.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(tlogWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// tlogWriter adapts testing.TB to io.Writer for the slog text handler.
type tlogWriter struct {
	tb testing.TB
}

func (w tlogWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

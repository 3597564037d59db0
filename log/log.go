// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides structured logging on top of log/slog. Output
// is discarded until a handler is installed, so library packages can
// hold loggers without configuring anything.
package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

var root atomic.Pointer[slog.Handler]

// SetDefault installs the process-wide handler. Loggers obtained from
// WithContext before this call pick it up as well.
func SetDefault(h slog.Handler) {
	root.Store(&h)
}

func current() slog.Handler {
	if h := root.Load(); h != nil {
		return *h
	}
	return DiscardHandler()
}

// WithContext returns a logger carrying the given key/value context,
// typically a package tag: log.WithContext("pkg", "api").
func WithContext(args ...any) *slog.Logger {
	return slog.New(&dynamicHandler{}).With(args...)
}

// dynamicHandler forwards records to the handler installed via
// SetDefault at the time of the call, carrying any attrs bound by
// Logger.With.
type dynamicHandler struct {
	attrs []slog.Attr
}

func (h *dynamicHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return current().Enabled(ctx, lvl)
}

func (h *dynamicHandler) Handle(ctx context.Context, r slog.Record) error {
	target := current()
	if len(h.attrs) > 0 {
		target = target.WithAttrs(h.attrs)
	}
	return target.Handle(ctx, r)
}

func (h *dynamicHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &dynamicHandler{attrs: merged}
}

func (h *dynamicHandler) WithGroup(string) slog.Handler {
	// groups are not used in this codebase
	return h
}

type discardHandler struct{}

// DiscardHandler returns a handler that drops every record.
func DiscardHandler() slog.Handler {
	return discardHandler{}
}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

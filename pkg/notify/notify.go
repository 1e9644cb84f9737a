// Package notify provides NotificationSink implementations: a terminal toast
// writer, a structured log sink and a fan-out.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-eventforms/pkg/pipeline"
)

// Writer prints each notification as a toast line.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter returns a sink printing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Notify prints "✔ Title" or "✖ Title", followed by the description on its
// own indented line when present.
func (w *Writer) Notify(_ context.Context, n pipeline.Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()

	marker := "✔"
	if n.Kind == pipeline.NotificationError {
		marker = "✖"
	}
	fmt.Fprintf(w.out, "%s %s\n", marker, n.Title)
	if n.Description != "" {
		fmt.Fprintf(w.out, "  %s\n", n.Description)
	}
}

// Log writes notifications to a structured logger. Errors log at warn.
type Log struct {
	Logger zerolog.Logger
}

// Notify logs the notification.
func (l Log) Notify(_ context.Context, n pipeline.Notification) {
	evt := l.Logger.Info()
	if n.Kind == pipeline.NotificationError {
		evt = l.Logger.Warn()
	}
	evt.Str("kind", string(n.Kind)).
		Str("description", n.Description).
		Msg(n.Title)
}

// Multi fans a notification out to every sink in order.
type Multi []pipeline.NotificationSink

// Notify forwards n to each non-nil sink.
func (m Multi) Notify(ctx context.Context, n pipeline.Notification) {
	for _, sink := range m {
		if sink != nil {
			sink.Notify(ctx, n)
		}
	}
}

var (
	_ pipeline.NotificationSink = (*Writer)(nil)
	_ pipeline.NotificationSink = Log{}
	_ pipeline.NotificationSink = Multi(nil)
)

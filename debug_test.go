package sketch

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestDebugMode_DeepTreeWarns(t *testing.T) {
	buf := captureLog(t)
	SetDebugMode(true)
	defer SetDebugMode(false)

	parent := NewCompound(0, 0)
	for i := 0; i < debugMaxTreeDepth+1; i++ {
		child := NewCompound(0, 0)
		parent.Add(child)
		parent = child
	}
	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Errorf("expected depth warning, log:\n%s", buf.String())
	}
}

func TestDebugMode_CrowdedCompoundWarns(t *testing.T) {
	buf := captureLog(t)
	SetDebugMode(true)
	defer SetDebugMode(false)

	c := NewCompound(0, 0)
	for i := 0; i <= debugMaxChildCount; i++ {
		c.Add(NewCompound(0, 0))
	}
	if !strings.Contains(buf.String(), "child count exceeds threshold") {
		t.Error("expected child count warning")
	}
}

func TestDebugMode_RepaintStats(t *testing.T) {
	buf := captureLog(t)
	SetDebugMode(true)
	defer SetDebugMode(false)

	w, _ := newTestWindow(t)
	l, _ := NewLine(0, 0, 1, 1)
	w.Add(mustRect(t, 0, 0, 1, 1), l)
	out := buf.String()
	if !strings.Contains(out, "msg=repaint") || !strings.Contains(out, "commands=2") {
		t.Errorf("expected repaint stats, log:\n%s", out)
	}
}

func TestDebugOffIsSilent(t *testing.T) {
	buf := captureLog(t)
	w, _ := newTestWindow(t)
	w.Add(mustRect(t, 0, 0, 1, 1))
	if strings.Contains(buf.String(), "repaint") {
		t.Error("repaint stats should only be logged in debug mode")
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_Level(t *testing.T) {
	if got := New("debug").GetLevel(); got != logrus.DebugLevel {
		t.Fatalf("expected debug, got %s", got)
	}
	if got := New("nonsense").GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("expected info fallback, got %s", got)
	}
}

func TestComponentAndLogError(t *testing.T) {
	var buf bytes.Buffer
	l := New("info")
	l.SetOutput(&buf)

	LogError(Component(l, "payment.reconciler"), "payment.reconciler", "HandleConfirmed", map[string]string{"id": "p1"}, errors.New("store down"))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json log line, got %q", buf.String())
	}
	if line["component"] != "payment.reconciler" || line["funcName"] != "HandleConfirmed" || line["msg"] != "store down" {
		t.Fatalf("unexpected log line %v", line)
	}
}

func TestComponent_NilLogger(t *testing.T) {
	if e := Component(nil, "x"); e == nil || e.Data["component"] != "x" {
		t.Fatalf("expected entry with component field")
	}
}

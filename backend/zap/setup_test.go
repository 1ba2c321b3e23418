package zapbackend

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/loginject"
	"github.com/trickstertwo/xclock/adapter/frozen"
)

type Billing struct{}

func TestUse_NamesLoggersAfterContext(t *testing.T) {
	// Freeze time for determinism
	ft := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	restore := frozen.Set(frozen.Config{Time: ft})
	defer restore()

	var buf bytes.Buffer
	spec := Use(Config{Writer: &buf, MinLevel: zapcore.DebugLevel})
	if spec.Classification() != loginject.Declared {
		t.Fatalf("classification mismatch: %v", spec.Classification())
	}

	l, err := spec.CreateLogger(reflect.TypeFor[Billing]())
	if err != nil {
		t.Fatalf("create logger: %v", err)
	}
	logger, ok := l.(interface {
		Info(string, ...zapcore.Field)
	})
	if !ok {
		t.Fatalf("unexpected logger type %T", l)
	}
	logger.Info("charged")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("json unmarshal: %v; line=%s", err, buf.String())
	}
	if m["logger"] != "github.com/trickstertwo/loginject/backend/zap.Billing" {
		t.Fatalf("logger name mismatch: %v", m["logger"])
	}
	if m["message"] != "charged" || m["level"] != "info" {
		t.Fatalf("entry mismatch: %v", m)
	}
	if m["ts"] != ft.Format(time.RFC3339Nano) {
		t.Fatalf("ts mismatch: got %v want %s", m["ts"], ft.Format(time.RFC3339Nano))
	}
}

func TestNew_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, MinLevel: zapcore.WarnLevel})
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	l.Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("expected output for warn")
	}
}

func TestSpec_NilBase(t *testing.T) {
	l, err := Spec(nil).CreateLogger(reflect.TypeFor[Billing]())
	if err != nil || l == nil {
		t.Fatalf("nop base must still yield a logger: %v %v", l, err)
	}
}

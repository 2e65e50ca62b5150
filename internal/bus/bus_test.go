package bus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"

	"stratis/internal/logging"
)

type recordingTransport struct {
	calls []string
	body  []any
	value any
	err   error
}

func (r *recordingTransport) Call(_ context.Context, path dbus.ObjectPath, iface, method string, args ...any) ([]any, error) {
	r.calls = append(r.calls, fmt.Sprintf("%s %s.%s %v", path, iface, method, args))
	return r.body, r.err
}

func (r *recordingTransport) GetProperty(_ context.Context, path dbus.ObjectPath, iface, name string) (any, error) {
	r.calls = append(r.calls, fmt.Sprintf("%s %s.%s", path, iface, name))
	return r.value, r.err
}

func TestBindingInvokeSuppliesInterface(t *testing.T) {
	rt := &recordingTransport{body: []any{"ok"}}
	b := NewBinding(rt, "/org/example", "org.example.Iface")

	body, err := b.Invoke(context.Background(), "Ping", "a", uint16(2))
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if len(body) != 1 || body[0] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
	if len(rt.calls) != 1 || rt.calls[0] != "/org/example org.example.Iface.Ping [a 2]" {
		t.Fatalf("unexpected calls %v", rt.calls)
	}
}

func TestBindingWrapsFailuresAsTransportErrors(t *testing.T) {
	cause := dbus.Error{Name: errServiceUnknown, Body: []any{"The name is not activatable"}}
	rt := &recordingTransport{err: cause}
	b := NewBinding(rt, "/org/example", "org.example.Iface")

	_, err := b.Invoke(context.Background(), "Ping")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if !te.DaemonUnavailable() {
		t.Fatal("expected DaemonUnavailable for ServiceUnknown")
	}
	if te.TimedOut() {
		t.Fatal("ServiceUnknown is not a timeout")
	}
	if !strings.Contains(te.Error(), "org.example.Iface.Ping") {
		t.Fatalf("expected member in message, got %q", te.Error())
	}

	_, err = b.Property(context.Background(), "Version")
	if !IsTransport(err) {
		t.Fatalf("expected property failure to be a transport error, got %v", err)
	}
}

func TestTransportErrorNotDoubleWrapped(t *testing.T) {
	inner := &TransportError{Op: "connect", Err: errors.New("refused")}
	rt := &recordingTransport{err: inner}
	_, err := NewBinding(rt, "/", "x").Invoke(context.Background(), "M")
	if err != inner {
		t.Fatalf("expected underlying transport error, got %v", err)
	}
}

func TestTransportErrorTimedOut(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), true},
		{"no reply", dbus.Error{Name: errNoReply}, true},
		{"other", errors.New("broken pipe"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			te := &TransportError{Op: "call", Err: tc.err}
			if got := te.TimedOut(); got != tc.want {
				t.Fatalf("TimedOut() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCallContextAppliesTimeoutOnlyWithoutDeadline(t *testing.T) {
	tr := &DBusTransport{timeout: time.Minute}

	ctx, cancel := tr.callContext(context.Background())
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected deadline from transport timeout")
	}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
	defer parentCancel()
	ctx2, cancel2 := tr.callContext(parent)
	defer cancel2()
	if ctx2 != parent {
		t.Fatal("expected caller deadline to be kept")
	}

	none := &DBusTransport{}
	ctx3, cancel3 := none.callContext(context.Background())
	defer cancel3()
	if _, ok := ctx3.Deadline(); ok {
		t.Fatal("expected no deadline when timeout is zero")
	}
}

func TestLoggedTransportRecordsCallsWithCorrelation(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	rt := &recordingTransport{body: []any{"ok"}}
	tr := Logged(rt, logger)
	ctx := logging.WithCorrelationID(context.Background(), "abc-123")

	if _, err := tr.Call(ctx, "/org/example", "org.example.Iface", "Ping"); err != nil {
		t.Fatalf("Call: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"method":"Ping"`, `"interface":"org.example.Iface"`, `"correlation_id":"abc-123"`, `"component":"bus"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %s: %s", want, out)
		}
	}
	if len(rt.calls) != 1 {
		t.Fatalf("expected call to reach the wrapped transport, got %v", rt.calls)
	}
}

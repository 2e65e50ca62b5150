package simulator

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"

	"stratis/internal/dbusapi"
	"stratis/internal/errcodes"
)

func managerCall(t *testing.T, d *Daemon, method string, args ...any) []any {
	t.Helper()
	body, err := d.Call(context.Background(), dbusapi.ManagerPath, dbusapi.ManagerInterface, method, args...)
	if err != nil {
		t.Fatalf("%s: %v", method, err)
	}
	return body
}

func TestErrorCodesHonourOffset(t *testing.T) {
	d := New(WithCodeOffset(100))
	body := managerCall(t, d, "GetErrorCodes")
	rows := body[0].([][]any)
	if len(rows) != len(codeNames) {
		t.Fatalf("rows = %d, want %d", len(rows), len(codeNames))
	}
	if rows[0][0] != errcodes.OK || rows[0][1] != uint16(100) {
		t.Fatalf("first row = %v", rows[0])
	}
	if d.Code(errcodes.PoolNotFound) != 104 {
		t.Fatalf("PoolNotFound = %d", d.Code(errcodes.PoolNotFound))
	}
}

func TestCreatePoolValidation(t *testing.T) {
	d := New()
	tests := []struct {
		name  string
		pool  string
		devs  []string
		level uint16
		want  string
	}{
		{"empty name", "", []string{"/dev/a"}, 0, errcodes.NullName},
		{"no devices", "p", nil, 0, errcodes.BadParam},
		{"unknown level", "p", []string{"/dev/a"}, 9, errcodes.BadParam},
		{"unsupported level", "p", []string{"/dev/a"}, 1, errcodes.GenericError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := managerCall(t, d, "CreatePool", tt.pool, tt.devs, tt.level)
			if body[0] != dbus.ObjectPath("/") {
				t.Fatalf("expected root path on failure, got %v", body[0])
			}
			if int(body[1].(uint16)) != d.Code(tt.want) {
				t.Fatalf("code = %v, want %s", body[1], tt.want)
			}
		})
	}
}

func TestObjectsAreRoutedByInterface(t *testing.T) {
	d := New()
	body := managerCall(t, d, "CreatePool", "p1", []string{"/dev/a"}, uint16(0))
	poolPath := body[0].(dbus.ObjectPath)

	_, err := d.Call(context.Background(), poolPath, dbusapi.FilesystemInterface, "SetName", "x")
	var dbusErr dbus.Error
	if !errors.As(err, &dbusErr) || dbusErr.Name != errUnknownMethod {
		t.Fatalf("expected UnknownMethod, got %v", err)
	}

	name, err := d.GetProperty(context.Background(), poolPath, dbusapi.PoolInterface, "Name")
	if err != nil || name != "p1" {
		t.Fatalf("Name = %v, %v", name, err)
	}

	_, err = d.Call(context.Background(), "/org/storage/stratis1/nothing", dbusapi.PoolInterface, "ListDevs")
	if !errors.As(err, &dbusErr) || dbusErr.Name != errUnknownObject {
		t.Fatalf("expected UnknownObject, got %v", err)
	}
}

func TestInvalidArgumentsAreBusErrors(t *testing.T) {
	d := New()
	_, err := d.Call(context.Background(), dbusapi.ManagerPath, dbusapi.ManagerInterface, "CreatePool", "p1", "not-a-list", 0)
	var dbusErr dbus.Error
	if !errors.As(err, &dbusErr) || dbusErr.Name != errInvalidArgs {
		t.Fatalf("expected InvalidArgs, got %v", err)
	}
}

func TestDownDaemonFailsEveryCall(t *testing.T) {
	d := New()
	d.SetDown(true)
	_, err := d.Call(context.Background(), dbusapi.ManagerPath, dbusapi.ManagerInterface, "ListPools")
	var dbusErr dbus.Error
	if !errors.As(err, &dbusErr) || dbusErr.Name != errServiceUnknown {
		t.Fatalf("expected ServiceUnknown, got %v", err)
	}
	_, err = d.GetProperty(context.Background(), dbusapi.ManagerPath, dbusapi.ManagerInterface, "Version")
	if !errors.As(err, &dbusErr) || dbusErr.Name != errServiceUnknown {
		t.Fatalf("expected ServiceUnknown from property read, got %v", err)
	}
	if d.TotalCalls() != 0 {
		t.Fatalf("calls counted while down: %d", d.TotalCalls())
	}
}

func TestDestroyPoolReleasesDevices(t *testing.T) {
	d := New()
	managerCall(t, d, "CreatePool", "p1", []string{"/dev/a"}, uint16(0))
	body := managerCall(t, d, "DestroyPool", "p1")
	if body[0] != true {
		t.Fatalf("DestroyPool = %v", body)
	}
	body = managerCall(t, d, "CreatePool", "p2", []string{"/dev/a"}, uint16(0))
	if int(body[1].(uint16)) != d.Code(errcodes.OK) {
		t.Fatalf("device should be free after destroy, got %v", body)
	}
}

package bluetoe

import "testing"

func TestServerBuildRequiresAtLeastOneService(t *testing.T) {
	srv := NewServer()
	if err := srv.Build(); err == nil {
		t.Fatal("expected an error building a server with no services")
	}
}

func TestServerAddServiceAfterBuildPanics(t *testing.T) {
	srv := NewServer()
	srv.AddService(UUID16(0x1800)).AddCharacteristic(UUID16(0x2a00)).StaticValue([]byte("x"))
	if err := srv.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected AddService to panic after Build")
		}
	}()
	srv.AddService(UUID16(0x1801))
}

func TestServerBuildTwiceErrors(t *testing.T) {
	srv := NewServer()
	srv.AddService(UUID16(0x1800)).AddCharacteristic(UUID16(0x2a00)).StaticValue([]byte("x"))
	if err := srv.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := srv.Build(); err == nil {
		t.Fatal("expected an error building an already-built server")
	}
}

func TestServerNameOptionAddsGAPService(t *testing.T) {
	srv := NewServer(Name("thing"))
	srv.AddService(UUID16(0x1234)).AddCharacteristic(UUID16(0x2a00)).StaticValue([]byte("x"))
	if err := srv.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// The GAP service is prepended, so it occupies handles 1..5 (primary
	// decl, device name decl+value, appearance decl+value = 5 attributes)
	// ahead of the user's own service.
	if got, want := srv.table.services[0].uuid, UUID16(gapServiceUUID16); !got.Equal(want) {
		t.Fatalf("first service uuid = %s, want %s", got, want)
	}
	if got, want := srv.table.services[1].uuid, UUID16(0x1234); !got.Equal(want) {
		t.Fatalf("second service uuid = %s, want %s", got, want)
	}
	if got := srv.Name(); got != "thing" {
		t.Fatalf("Name() = %q, want %q", got, "thing")
	}
}

func TestServerWithoutNameOptionHasNoGAPService(t *testing.T) {
	srv := NewServer()
	srv.AddService(UUID16(0x1234)).AddCharacteristic(UUID16(0x2a00)).StaticValue([]byte("x"))
	if err := srv.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(srv.table.services) != 1 {
		t.Fatalf("got %d services, want 1 (no auto GAP service)", len(srv.table.services))
	}
}

func TestOptionRestoresPreviousValue(t *testing.T) {
	srv := NewServer(Name("first"))
	prev := srv.Option(Name("second"))
	if srv.Name() != "second" {
		t.Fatalf("Name() = %q, want %q", srv.Name(), "second")
	}
	srv.Option(prev)
	if srv.Name() != "first" {
		t.Fatalf("Name() after restore = %q, want %q", srv.Name(), "first")
	}
}

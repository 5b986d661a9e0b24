package bluetoe

import "testing"

func TestUUID16RoundTrip(t *testing.T) {
	u := UUID16(0x1800)
	if u.Is128Bit() {
		t.Fatal("UUID16 should not report as 128-bit")
	}
	code, ok := u.shortCode()
	if !ok || code != 0x1800 {
		t.Fatalf("shortCode = %04x, %v; want 1800, true", code, ok)
	}
	if got, want := u.String(), "1800"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestParseUUIDBare16Bit(t *testing.T) {
	u, err := ParseUUID("2a00")
	if err != nil {
		t.Fatalf("ParseUUID: %v", err)
	}
	if !u.Equal(UUID16(0x2a00)) {
		t.Fatalf("ParseUUID(2a00) != UUID16(0x2a00)")
	}
}

func TestParseUUID128Bit(t *testing.T) {
	const s = "8c8b4094-0de2-499f-a28a-4eed5bc73ca9"
	u, err := ParseUUID(s)
	if err != nil {
		t.Fatalf("ParseUUID: %v", err)
	}
	if !u.Is128Bit() {
		t.Fatal("expected a 128-bit UUID")
	}
	if got := u.String(); got != s {
		t.Fatalf("String() = %q, want %q", got, s)
	}
}

func TestParseUUIDInvalid(t *testing.T) {
	if _, err := ParseUUID("not-a-uuid"); err == nil {
		t.Fatal("expected an error for a malformed uuid")
	}
}

func TestUUIDBytesAreWireOrder(t *testing.T) {
	u := UUID16(0x1800)
	b := u.Bytes()
	if len(b) != 2 || b[0] != 0x00 || b[1] != 0x18 {
		t.Fatalf("Bytes() = % x, want little-endian [00 18]", b)
	}
}

func TestUUIDEqual(t *testing.T) {
	a := UUID16(0x2a00)
	b := MustParseUUID("2a00")
	if !a.Equal(b) {
		t.Fatal("UUID16(0x2a00) should equal ParseUUID(\"2a00\")")
	}
	if a.Equal(UUID16(0x2a01)) {
		t.Fatal("distinct UUIDs should not compare equal")
	}
}

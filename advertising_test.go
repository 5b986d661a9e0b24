package bluetoe

import (
	"bytes"
	"testing"
)

func TestAdvertisingDataFlagsOnlyWhenNoName(t *testing.T) {
	srv := NewServer()
	buf := make([]byte, 31)
	n := srv.advertisingData(buf)
	want := []byte{0x02, adTypeFlags, adFlagsGeneralDiscoverableNoBREDR}
	if !bytes.Equal(buf[:n], want) {
		t.Fatalf("got % x, want % x", buf[:n], want)
	}
}

func TestAdvertisingDataIncludesCompleteName(t *testing.T) {
	srv := NewServer(Name("gizmo"))
	buf := make([]byte, 31)
	n := srv.advertisingData(buf)

	want := append([]byte{0x02, adTypeFlags, adFlagsGeneralDiscoverableNoBREDR},
		byte(len("gizmo")+1), adTypeCompleteName)
	want = append(want, []byte("gizmo")...)
	if !bytes.Equal(buf[:n], want) {
		t.Fatalf("got % x, want % x", buf[:n], want)
	}
}

func TestAdvertisingDataShortensNameWhenBufferTooSmall(t *testing.T) {
	srv := NewServer(Name("a-name-too-long-to-fit-in-the-remaining-space"))
	buf := make([]byte, 10)
	n := srv.advertisingData(buf)

	if n > len(buf) {
		t.Fatalf("wrote %d bytes into a %d-byte buffer", n, len(buf))
	}
	// bytes 0..2 are the flags record; byte 3 is the length of the name
	// record, byte 4 must be the shortened-name AD type.
	if buf[4] != adTypeShortName {
		t.Fatalf("ad type = %#x, want shortened name %#x", buf[4], adTypeShortName)
	}
}

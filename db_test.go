package bluetoe

import (
	"bytes"
	"testing"
)

func TestBuildAttributeTableEmptyServicesErrors(t *testing.T) {
	if _, err := buildAttributeTable(nil); err == nil {
		t.Fatal("expected an error building a table with no services")
	}
}

func TestBuildAttributeTableHandleNumbering(t *testing.T) {
	svc1 := &Service{uuid: UUID16(0x1800)}
	svc1.AddCharacteristic(UUID16(0x2a00)).StaticValue([]byte("device"))

	svc2 := &Service{uuid: MustParseUUID("8c8b4094-0de2-499f-a28a-4eed5bc73ca9")}
	svc2.AddCharacteristic(UUID16(0x2a01)).StaticValue([]byte{0x00, 0x80})

	table, err := buildAttributeTable([]*Service{svc1, svc2})
	if err != nil {
		t.Fatalf("buildAttributeTable: %v", err)
	}
	if got, want := table.count(), uint16(6); got != want {
		t.Fatalf("count() = %d, want %d", got, want)
	}

	// handle 1: svc1's primary service declaration.
	if got := table.at(1).uuid16; got != gattPrimaryServiceUUID16 {
		t.Fatalf("handle 1 uuid16 = %04x, want %04x", got, gattPrimaryServiceUUID16)
	}
	// handle 2: svc1's characteristic declaration.
	if got := table.at(2).uuid16; got != gattCharacteristicUUID16 {
		t.Fatalf("handle 2 uuid16 = %04x, want %04x", got, gattCharacteristicUUID16)
	}
	// handle 3: svc1's characteristic value, a plain 16-bit UUID.
	if got := table.at(3).uuid16; got != 0x2a00 {
		t.Fatalf("handle 3 uuid16 = %04x, want 2a00", got)
	}
	// handle 6: svc2's characteristic value, a plain 16-bit UUID (0x2a01).
	if got := table.at(6).uuid16; got != 0x2a01 {
		t.Fatalf("handle 6 uuid16 = %04x, want 2a01", got)
	}

	if len(table.services) != 2 {
		t.Fatalf("got %d service boundaries, want 2", len(table.services))
	}
	if table.services[0].first != 1 || table.services[0].last != 3 {
		t.Fatalf("svc1 boundary = [%d,%d], want [1,3]", table.services[0].first, table.services[0].last)
	}
	if table.services[1].first != 4 || table.services[1].last != 6 {
		t.Fatalf("svc2 boundary = [%d,%d], want [4,6]", table.services[1].first, table.services[1].last)
	}
}

func TestBuildAttributeTable128BitCharacteristicUsesSentinel(t *testing.T) {
	svc := &Service{uuid: UUID16(0x1800)}
	chUUID := MustParseUUID("8c8b4094-0de2-499f-a28a-4eed5bc73ca9")
	svc.AddCharacteristic(chUUID).StaticValue([]byte{0x01, 0x02})

	table, err := buildAttributeTable([]*Service{svc})
	if err != nil {
		t.Fatalf("buildAttributeTable: %v", err)
	}

	// handle 3 is the characteristic's value attribute; its logical UUID is
	// 128-bit so it must carry the internal sentinel.
	valueAttr := table.at(3)
	if !valueAttr.is128Bit() {
		t.Fatal("expected the value attribute to report is128Bit()")
	}

	decl := table.at(2)
	buf := make([]byte, 19)
	args := AccessArgs{Handle: 2, Buffer: buf}
	if rc := decl.access(&args); rc != AccessSuccess {
		t.Fatalf("declaration access = %v, want success", rc)
	}
	if args.BytesWritten != 19 {
		t.Fatalf("declaration wrote %d bytes, want 19", args.BytesWritten)
	}
	if !bytes.Equal(buf[3:19], chUUID.Bytes()) {
		t.Fatal("declaration's embedded 128-bit UUID does not match the characteristic's UUID")
	}
}

func TestCharacteristicDeclarationValueRejectsUUIDlessCharacteristic(t *testing.T) {
	ch := &Characteristic{uuid: UUID{}}
	if _, err := characteristicDeclarationValue(ch, 3); err == nil {
		t.Fatal("expected an error for a characteristic with neither a 16-bit nor 128-bit uuid")
	}
}

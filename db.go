package bluetoe

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// serviceBoundary records the handle range covered by one primary service,
// used by the Read By Group Type handler to tile [starting, ending].
type serviceBoundary struct {
	first uint16
	last  uint16
	uuid  UUID
}

// attributeTable is the flat, heap-free-at-request-time sequence of
// attributes a schema builds once at startup. Handles are 1-based;
// attrs[0] is handle 1.
type attributeTable struct {
	attrs    []attribute
	services []serviceBoundary
}

// count reports N, the number of attributes in the table.
func (t *attributeTable) count() uint16 {
	return uint16(len(t.attrs))
}

// at returns the attribute at the given 1-based handle. Behavior is
// undefined (it indexes out of range) if handle is 0 or exceeds count();
// callers must bounds-check first, exactly as spec'd.
func (t *attributeTable) at(handle uint16) attribute {
	return t.attrs[handle-1]
}

// buildAttributeTable lays out services, their characteristic declarations
// and values, and descriptors into one contiguous handle sequence starting
// at handle 1, recording the resulting service boundaries.
func buildAttributeTable(services []*Service) (attributeTable, error) {
	if len(services) == 0 {
		return attributeTable{}, errors.New("bluetoe: server must contain at least one service")
	}

	var attrs []attribute
	var boundaries []serviceBoundary
	handle := uint16(1)

	for _, svc := range services {
		first := handle

		svcValue := svc.uuid.Bytes()
		attrs = append(attrs, attribute{
			uuid16: gattPrimaryServiceUUID16,
			access: StaticAccessor(svcValue),
		})
		handle++

		for _, ch := range svc.characteristics {
			if ch.accessor == nil {
				return attributeTable{}, errors.Errorf("bluetoe: characteristic %s has no read accessor", ch.uuid)
			}

			valueHandle := handle + 1
			declValue, err := characteristicDeclarationValue(ch, valueHandle)
			if err != nil {
				return attributeTable{}, err
			}
			attrs = append(attrs, attribute{
				uuid16: gattCharacteristicUUID16,
				access: StaticAccessor(declValue),
			})
			handle++

			valueUUID16 := internal128BitUUID
			if !ch.uuid.Is128Bit() {
				code, _ := ch.uuid.shortCode()
				valueUUID16 = code
			}
			attrs = append(attrs, attribute{
				uuid16: valueUUID16,
				access: ch.accessor,
			})
			handle++

			for _, d := range ch.descriptors {
				code, ok := d.uuid.shortCode()
				if !ok {
					return attributeTable{}, errors.Errorf("bluetoe: descriptor %s must use a 16-bit UUID", d.uuid)
				}
				attrs = append(attrs, attribute{uuid16: code, access: d.accessor})
				handle++
			}
		}

		boundaries = append(boundaries, serviceBoundary{first: first, last: handle - 1, uuid: svc.uuid})
	}

	return attributeTable{attrs: attrs, services: boundaries}, nil
}

// characteristicDeclarationValue builds the 0x2803 declaration value:
// properties(1) + value handle(2) + UUID(2 or 16), per the invariant that a
// declaration preceding an internal128BitUUID value attribute must produce
// exactly 19 bytes.
func characteristicDeclarationValue(ch *Characteristic, valueHandle uint16) ([]byte, error) {
	if ch.uuid.Is128Bit() {
		b := make([]byte, 19)
		b[0] = ch.properties
		binary.LittleEndian.PutUint16(b[1:3], valueHandle)
		copy(b[3:19], ch.uuid.Bytes())
		return b, nil
	}

	code, ok := ch.uuid.shortCode()
	if !ok {
		return nil, errors.Errorf("bluetoe: characteristic %s has neither a 16-bit nor 128-bit UUID", ch.uuid)
	}
	b := make([]byte, 5)
	b[0] = ch.properties
	binary.LittleEndian.PutUint16(b[1:3], valueHandle)
	binary.LittleEndian.PutUint16(b[3:5], code)
	return b, nil
}

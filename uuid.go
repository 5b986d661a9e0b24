package bluetoe

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// A UUID identifies a service, characteristic, or descriptor. Internally
// the bytes are kept in the order the Attribute Protocol puts them on the
// wire (little-endian), so that emitting a UUID into a response PDU is a
// plain copy.
type UUID struct {
	b []byte // len 2 or 16
}

// UUID16 builds a UUID from a registered 16-bit BLE UUID, such as 0x1800.
func UUID16(v uint16) UUID {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return UUID{b: b}
}

// FromUUID128 adapts a google/uuid value (big-endian, RFC 4122 order) into
// the little-endian wire order this package uses internally.
func FromUUID128(u uuid.UUID) UUID {
	return UUID{b: reverseBytes(u[:])}
}

// ParseUUID parses either a bare 16-bit hex UUID ("1800") or a standard
// hyphenated 128-bit UUID ("8c8b4094-0de2-499f-a28a-4eed5bc73ca9").
func ParseUUID(s string) (UUID, error) {
	clean := strings.ReplaceAll(s, "-", "")
	if len(clean) == 4 {
		b, err := hex.DecodeString(clean)
		if err != nil {
			return UUID{}, errors.Wrapf(err, "bluetoe: invalid uuid %q", s)
		}
		return UUID{b: reverseBytes(b)}, nil
	}

	parsed, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errors.Wrapf(err, "bluetoe: invalid uuid %q", s)
	}
	return FromUUID128(parsed), nil
}

// MustParseUUID is like ParseUUID but panics on error. Intended for use in
// package-level variable initialization of well-known UUIDs.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Is128Bit reports whether u is a 128-bit UUID, as opposed to a registered
// 16-bit UUID.
func (u UUID) Is128Bit() bool {
	return len(u.b) == 16
}

// Bytes returns a copy of the UUID in wire (little-endian) byte order.
func (u UUID) Bytes() []byte {
	out := make([]byte, len(u.b))
	copy(out, u.b)
	return out
}

// shortCode returns the 16-bit code for a non-128-bit UUID.
func (u UUID) shortCode() (uint16, bool) {
	if len(u.b) != 2 {
		return 0, false
	}
	return binary.LittleEndian.Uint16(u.b), true
}

// Equal reports whether u and v represent the same UUID.
func (u UUID) Equal(v UUID) bool {
	return bytes.Equal(u.b, v.b)
}

// String hex-encodes a UUID in standard, human-readable order.
func (u UUID) String() string {
	if len(u.b) == 2 {
		return fmt.Sprintf("%04x", binary.LittleEndian.Uint16(u.b))
	}
	var big [16]byte
	copy(big[:], reverseBytes(u.b))
	return uuid.UUID(big).String()
}

// reverseBytes returns a reversed copy of b.
func reverseBytes(b []byte) []byte {
	n := len(b)
	out := make([]byte, n)
	for i, v := range b {
		out[n-1-i] = v
	}
	return out
}

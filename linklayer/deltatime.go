package linklayer

import "math"

// DeltaTime is an unsigned duration in microseconds. There is no wall
// clock in this package; every time value is relative. Arithmetic
// saturates at the maximum representable value instead of wrapping.
type DeltaTime uint32

// Now is the zero delta-time, "immediately".
func Now() DeltaTime { return 0 }

// Usec builds a DeltaTime from a microsecond count.
func Usec(u uint32) DeltaTime { return DeltaTime(u) }

// Msec builds a DeltaTime from a millisecond count, saturating on
// overflow.
func Msec(u uint32) DeltaTime {
	product := uint64(u) * 1000
	if product > math.MaxUint32 {
		return DeltaTime(math.MaxUint32)
	}
	return DeltaTime(product)
}

// Add returns d+o, saturating at the maximum DeltaTime instead of
// wrapping.
func (d DeltaTime) Add(o DeltaTime) DeltaTime {
	sum := uint64(d) + uint64(o)
	if sum > math.MaxUint32 {
		return DeltaTime(math.MaxUint32)
	}
	return DeltaTime(sum)
}

package linklayer

// ChannelMap implements the BLE data-channel selection algorithm: a 37-bit
// used-channel bitmap plus a hop increment maps a connection event counter
// to a physical data channel.
type ChannelMap struct {
	hop      uint8
	used     [37]bool
	usedList []uint8
}

// Reset installs a new used-channel bitmap (37 bits, packed 5 bytes
// little-endian-first) and hop increment. It returns false, leaving the
// map unchanged, unless hop is in [5,16] and at least two channels are
// marked used.
func (c *ChannelMap) Reset(bitmap [5]byte, hop uint8) bool {
	if hop < 5 || hop > 16 {
		return false
	}

	var used [37]bool
	var list []uint8
	for ch := 0; ch < 37; ch++ {
		byteIdx := ch / 8
		bitIdx := uint(ch % 8)
		if bitmap[byteIdx]&(1<<bitIdx) != 0 {
			used[ch] = true
			list = append(list, uint8(ch))
		}
	}
	if len(list) < 2 {
		return false
	}

	c.hop = hop
	c.used = used
	c.usedList = list
	return true
}

// DataChannel maps a connection event counter to a physical data channel
// in [0,36]: the unmapped channel is (eventCounter*hop) mod 37 — the
// closed form of repeatedly applying (prev+hop) mod 37 from an initial
// unmapped channel of 0 — remapped through the used-channel table when the
// unmapped channel itself isn't in use.
func (c *ChannelMap) DataChannel(eventCounter uint16) uint8 {
	unmapped := uint8((uint32(eventCounter) * uint32(c.hop)) % 37)
	if c.used[unmapped] {
		return unmapped
	}
	return c.usedList[int(unmapped)%len(c.usedList)]
}

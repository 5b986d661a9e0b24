package linklayer

import "testing"

func allChannelsBitmap() [5]byte {
	// 37 bits set: bytes 0..3 fully set, byte 4's low 5 bits set.
	return [5]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x1F}
}

func TestChannelMapResetRejectsOutOfRangeHop(t *testing.T) {
	var cm ChannelMap
	if cm.Reset(allChannelsBitmap(), 4) {
		t.Fatal("hop 4 should be rejected")
	}
	if cm.Reset(allChannelsBitmap(), 17) {
		t.Fatal("hop 17 should be rejected")
	}
	if !cm.Reset(allChannelsBitmap(), 5) {
		t.Fatal("hop 5 should be accepted")
	}
	if !cm.Reset(allChannelsBitmap(), 16) {
		t.Fatal("hop 16 should be accepted")
	}
}

func TestChannelMapResetRequiresTwoUsedChannels(t *testing.T) {
	var cm ChannelMap
	var oneBit [5]byte
	oneBit[0] = 0x01
	if cm.Reset(oneBit, 7) {
		t.Fatal("a single used channel should be rejected")
	}

	var twoBits [5]byte
	twoBits[0] = 0x03
	if !cm.Reset(twoBits, 7) {
		t.Fatal("two used channels should be accepted")
	}
}

func TestChannelMapDataChannelWithAllChannelsUsed(t *testing.T) {
	var cm ChannelMap
	if !cm.Reset(allChannelsBitmap(), 5) {
		t.Fatal("reset failed")
	}
	// With every channel used, the unmapped channel is always the result.
	for event := uint16(0); event < 50; event++ {
		want := uint8((uint32(event) * 5) % 37)
		if got := cm.DataChannel(event); got != want {
			t.Fatalf("DataChannel(%d) = %d, want %d", event, got, want)
		}
	}
}

func TestChannelMapDataChannelRemapsUnusedChannel(t *testing.T) {
	var cm ChannelMap
	var bitmap [5]byte
	bitmap[0] = 0x03 // channels 0 and 1 used, everything else unused
	if !cm.Reset(bitmap, 5) {
		t.Fatal("reset failed")
	}
	// event 0 -> unmapped channel 0, which is used -> returns 0
	if got := cm.DataChannel(0); got != 0 {
		t.Fatalf("DataChannel(0) = %d, want 0", got)
	}
	// event 1 -> unmapped channel 5, which is unused -> remapped to
	// usedList[5 % 2] = usedList[1] = 1
	if got := cm.DataChannel(1); got != 1 {
		t.Fatalf("DataChannel(1) = %d, want 1", got)
	}
}

package linklayer

// Radio is the scheduled-radio collaborator described in §6.1: an opaque
// device capable of scheduling a transmit-then-receive or
// receive-then-transmit on a given RF channel at a given time, and of
// driving Callbacks with received/timeout events. channel is a physical
// BLE channel index 0..39 (37, 38, 39 are the advertising channels).
type Radio interface {
	SetAccessAddressAndCRCInit(aa uint32, crcInit uint32)

	ScheduleTransmitAndReceive(channel uint8, tx WriteView, when DeltaTime, rx ReadView)

	ScheduleReceiveAndTransmit(channel uint8, windowOffset, windowSize DeltaTime, rx ReadView, tx WriteView)

	// Run drives received()/timeout() callbacks on the registered
	// LinkLayer until the radio has no more work, blocking for the
	// lifetime of the device.
	Run()
}

// Callbacks is the capability a Radio invokes: received data or a timeout
// on a previously scheduled operation.
type Callbacks interface {
	Received(rx []byte)
	Timeout()
}

// GattServer is the GATT server collaborator described in §6.2.
type GattServer interface {
	AdvertisingData(buf []byte) int
	L2CAPInput(in, out []byte) int
}

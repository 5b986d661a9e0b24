package linklayer

import (
	"bytes"
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

// State is a LinkLayer's position in its advertise-then-connect
// lifecycle.
type State int

const (
	StateInitial State = iota
	StateAdvertising
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateAdvertising:
		return "advertising"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

const (
	advertisingAccessAddress uint32 = 0x8E89BED6
	advertisingCRCInit       uint32 = 0x555555

	pduTypeADVInd    byte = 0x00
	pduTypeScanRsp   byte = 0x04
	pduHeaderRandomBit byte = 0x40

	scanRequestOpcode    byte = 0x3
	scanRequestLength    byte = 12 // 2 * 6-byte addresses
	connectRequestOpcode byte = 0x5
	connectRequestLength byte = 34

	maxWindowOffsetUsec = 10000

	receiveBufferSize = 64
)

// LinkLayer is the advertising and connection-establishment state
// machine. It is constructed in StateInitial and thereafter driven only
// by the Radio's Received/Timeout callbacks; Run blocks for the lifetime
// of the device.
type LinkLayer struct {
	opts   Options
	radio  Radio
	server GattServer
	log    *logrus.Entry

	state State

	advBuffer         []byte
	advResponseBuffer []byte
	receiveBuffer     []byte

	currentAdvChannel uint8
	advPerturbation   uint8

	address  Address
	channels ChannelMap

	cumulatedSCAPPM      uint16
	transmitWindowOffset DeltaTime
	transmitWindowSize   DeltaTime
	connectionInterval   DeltaTime
}

// New constructs a LinkLayer in StateInitial, bound to radio and server.
func New(radio Radio, server GattServer, opts ...Option) *LinkLayer {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	address := Address{kind: o.AddressKind}
	if o.Address != nil {
		address = *o.Address
	}

	return &LinkLayer{
		opts:    o,
		radio:   radio,
		server:  server,
		log:     logrus.WithField("component", "linklayer"),
		state:   StateInitial,
		address: address,
	}
}

// State reports the link layer's current state.
func (ll *LinkLayer) State() State { return ll.state }

// Start builds the advertising buffers and arms the first advertising
// slot on channel 37, implementing §4.5's Initial→Advertising transition.
// It does not block; Run calls it and then blocks driving the radio.
func (ll *LinkLayer) Start() {
	ll.buildAdvertisingBuffers()
	ll.receiveBuffer = make([]byte, receiveBufferSize)

	ll.radio.SetAccessAddressAndCRCInit(advertisingAccessAddress, advertisingCRCInit)

	ll.state = StateAdvertising
	ll.currentAdvChannel = 37
	ll.log.Debug("entering advertising state")
	ll.armAdvertisingSlot(Now())
}

// Run calls Start and then blocks driving the radio for the lifetime of
// the device.
func (ll *LinkLayer) Run() {
	ll.Start()
	ll.radio.Run()
}

func (ll *LinkLayer) buildAdvertisingBuffers() {
	adData := make([]byte, 31)
	n := ll.server.AdvertisingData(adData)

	header := pduTypeADVInd
	if ll.address.IsRandom() {
		header |= pduHeaderRandomBit
	}
	buf := make([]byte, 2+6+n)
	buf[0] = header
	buf[1] = byte(6 + n)
	copy(buf[2:8], ll.address.OnAirBytes())
	copy(buf[8:], adData[:n])
	ll.advBuffer = buf

	rspHeader := pduTypeScanRsp
	if ll.address.IsRandom() {
		rspHeader |= pduHeaderRandomBit
	}
	rsp := make([]byte, 8)
	rsp[0] = rspHeader
	rsp[1] = 6
	copy(rsp[2:8], ll.address.OnAirBytes())
	ll.advResponseBuffer = rsp
}

func (ll *LinkLayer) armAdvertisingSlot(when DeltaTime) {
	ll.radio.ScheduleTransmitAndReceive(
		ll.currentAdvChannel,
		NewWriteView(ll.advBuffer),
		when,
		NewReadView(ll.receiveBuffer),
	)
}

// Timeout implements Callbacks. While advertising it is the signal to
// advance to the next advertising channel; per §5 it is otherwise
// ignored, since connection-event handling is out of scope.
func (ll *LinkLayer) Timeout() {
	if ll.state != StateAdvertising {
		return
	}
	ll.advanceAdvertisingChannel()
}

// advanceAdvertisingChannel implements the 37→38→39→37 cycle of §4.5,
// scheduling the next slot immediately except when wrapping back to 37,
// which schedules at the configured interval plus a randomizing
// perturbation.
func (ll *LinkLayer) advanceAdvertisingChannel() {
	when := Now()
	switch ll.currentAdvChannel {
	case 37:
		ll.currentAdvChannel = 38
	case 38:
		ll.currentAdvChannel = 39
	default:
		ll.currentAdvChannel = 37
		when = ll.opts.AdvertisingInterval.Add(Msec(uint32(ll.advPerturbation)))
		ll.advPerturbation = (ll.advPerturbation + 7) % 11
	}
	ll.armAdvertisingSlot(when)
}

// Received implements Callbacks. Outside StateAdvertising it is a no-op:
// connection-event handling after the first data-channel reception is out
// of scope.
func (ll *LinkLayer) Received(rx []byte) {
	if ll.state != StateAdvertising {
		return
	}

	if ll.isValidScanRequest(rx) {
		ll.radio.ScheduleTransmitAndReceive(
			ll.currentAdvChannel,
			NewWriteView(ll.advResponseBuffer),
			Now(),
			NoReceive,
		)
		return
	}

	if ll.isValidConnectRequestShape(rx) {
		if ll.acceptConnectRequest(rx) {
			return
		}
		ll.log.WithField("reason", "connect request failed validation").Debug("rejecting connect request")
	}

	ll.advanceAdvertisingChannel()
}

func (ll *LinkLayer) isValidScanRequest(rx []byte) bool {
	if len(rx) < 14 {
		return false
	}
	if rx[0]&0x0F != scanRequestOpcode || rx[1] != scanRequestLength {
		return false
	}
	return bytes.Equal(rx[8:14], ll.address.OnAirBytes())
}

func (ll *LinkLayer) isValidConnectRequestShape(rx []byte) bool {
	if len(rx) < 36 {
		return false
	}
	if rx[0]&0x0F != connectRequestOpcode || rx[1] != connectRequestLength {
		return false
	}
	return bytes.Equal(rx[8:14], ll.address.OnAirBytes())
}

// acceptConnectRequest extracts the hop sequence and transmit-window
// parameters from a CONNECT_REQ per §4.5, and transitions to
// StateConnected if channels.Reset and the window-offset bounds accept
// it. It reports whether the request was accepted.
func (ll *LinkLayer) acceptConnectRequest(rx []byte) bool {
	us := ll.opts.TransmitWindowMicrosecondsPerDigit

	accessAddress := binary.LittleEndian.Uint32(rx[14:18])
	crcInit := uint32(rx[18]) | uint32(rx[19])<<8 | uint32(rx[20])<<16
	windowSize := Usec(uint32(rx[20]) * us)
	windowOffset := Usec(uint32(rx[21]) * us)
	interval := Usec(uint32(binary.LittleEndian.Uint16(rx[24:26])) * us)

	var bitmap [5]byte
	copy(bitmap[:], rx[30:35])
	hopAndSCA := rx[35]
	hop := hopAndSCA & 0x1F
	scaIndex := (hopAndSCA >> 6) & 0x3

	if !ll.channels.Reset(bitmap, hop) {
		return false
	}
	if windowOffset > Usec(maxWindowOffsetUsec) || windowOffset > interval {
		return false
	}

	ll.transmitWindowOffset = windowOffset
	ll.transmitWindowSize = windowSize
	ll.connectionInterval = interval
	ll.cumulatedSCAPPM = scaPPMTable[scaIndex] + ll.opts.SleepClockAccuracyPPM

	ll.state = StateConnected
	ll.currentAdvChannel = 0
	ll.log.WithFields(logrus.Fields{
		"access_address": accessAddress,
		"hop":            hop,
		"sca_ppm":        ll.cumulatedSCAPPM,
	}).Debug("accepted connect request")

	ll.radio.SetAccessAddressAndCRCInit(accessAddress, crcInit)
	dataChannel := ll.channels.DataChannel(0)
	ll.radio.ScheduleReceiveAndTransmit(
		dataChannel,
		windowOffset,
		windowSize,
		NoReceive,
		NewWriteView(ll.advResponseBuffer),
	)
	return true
}

package radio

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/bluetoe-go/bluetoe/linklayer"
)

// scheduledReceive is the currently armed receive operation, if any.
type scheduledReceive struct {
	channel uint8
	rx      linklayer.ReadView
}

// SimulatedRadio implements linklayer.Radio entirely in-process, without
// real RF hardware. It never mutates link layer state itself — it only
// ever invokes Received/Timeout on the registered callback target,
// mirroring the single-threaded, callback-driven concurrency model the
// link layer expects from a real radio.
type SimulatedRadio struct {
	callbacks linklayer.Callbacks
	log       *logrus.Entry

	accessAddress uint32
	crcInit       uint32

	armedRx     *scheduledReceive
	lastTx      []byte
	lastChannel uint8
}

// NewSimulatedRadio builds an in-process radio driven by the line command
// protocol described on commandSource. Its callback target (typically a
// *linklayer.LinkLayer) must be attached with SetCallbacks before Run or
// RunFrom is called; this two-step construction breaks the otherwise
// circular dependency between a LinkLayer and the Radio it's constructed
// with.
func NewSimulatedRadio() *SimulatedRadio {
	return &SimulatedRadio{
		log: logrus.WithField("component", "radio"),
	}
}

// SetCallbacks attaches the callback target that Received/Timeout events
// are delivered to.
func (r *SimulatedRadio) SetCallbacks(callbacks linklayer.Callbacks) {
	r.callbacks = callbacks
}

// SetAccessAddressAndCRCInit implements linklayer.Radio.
func (r *SimulatedRadio) SetAccessAddressAndCRCInit(aa, crcInit uint32) {
	r.accessAddress = aa
	r.crcInit = crcInit
	r.log.WithFields(logrus.Fields{
		"access_address": aa,
		"crc_init":       crcInit,
	}).Debug("access address configured")
}

// ScheduleTransmitAndReceive implements linklayer.Radio.
func (r *SimulatedRadio) ScheduleTransmitAndReceive(channel uint8, tx linklayer.WriteView, when linklayer.DeltaTime, rx linklayer.ReadView) {
	r.lastChannel = channel
	r.lastTx = tx.Bytes()
	r.arm(channel, rx)
}

// ScheduleReceiveAndTransmit implements linklayer.Radio.
func (r *SimulatedRadio) ScheduleReceiveAndTransmit(channel uint8, windowOffset, windowSize linklayer.DeltaTime, rx linklayer.ReadView, tx linklayer.WriteView) {
	r.lastChannel = channel
	r.lastTx = tx.Bytes()
	r.arm(channel, rx)
}

func (r *SimulatedRadio) arm(channel uint8, rx linklayer.ReadView) {
	if rx.Empty() {
		r.armedRx = nil
		return
	}
	r.armedRx = &scheduledReceive{channel: channel, rx: rx}
}

// RunFrom pumps commands read from src into Received/Timeout callbacks
// until src reaches EOF or a "stop" command is read.
func (r *SimulatedRadio) RunFrom(src io.Reader) {
	source := newCommandSource(src)
	for {
		cmd, arg, ok := source.next()
		if !ok {
			return
		}

		switch cmd {
		case "recv":
			r.handleRecv(arg)
		case "timeout":
			r.callbacks.Timeout()
		case "stop":
			return
		default:
			r.log.WithField("command", cmd).Warn("unrecognized command, ignoring")
		}
	}
}

func (r *SimulatedRadio) handleRecv(hexData string) {
	data, err := hex.DecodeString(hexData)
	if err != nil {
		r.log.WithError(err).Warn("malformed recv command, ignoring")
		return
	}
	if r.armedRx == nil {
		r.log.Warn("recv with no armed receive buffer, ignoring")
		return
	}
	n := copy(r.armedRx.rx.Bytes(), data)
	r.callbacks.Received(r.armedRx.rx.Bytes()[:n])
}

// Run implements linklayer.Radio by reading commands from stdin. Use
// RunFrom to drive the radio from a fixture file or an in-memory buffer,
// as tests do.
func (r *SimulatedRadio) Run() {
	r.RunFrom(os.Stdin)
}

// LastTransmitted returns the bytes most recently handed to the radio for
// transmission, for use in test assertions.
func (r *SimulatedRadio) LastTransmitted() []byte { return r.lastTx }

// LastChannel returns the channel most recently scheduled, for use in
// test assertions.
func (r *SimulatedRadio) LastChannel() uint8 { return r.lastChannel }

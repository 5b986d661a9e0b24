package linklayer

// scaPPMTable maps the SCA index carried in a CONNECT_REQ's hop/SCA byte
// to the central's sleep clock accuracy in ppm. The byte only ever yields
// a 2-bit index (0..3), so only the table's first four entries are
// reachable from a real CONNECT_REQ; the remaining four are kept because
// they're the registered values for the field's full 3-bit range.
var scaPPMTable = [8]uint16{500, 250, 150, 100, 75, 50, 30, 20}

// Options configures a LinkLayer, replacing the source's compile-time
// option lookup (§9) with a record built through functional options.
type Options struct {
	AdvertisingInterval    DeltaTime
	SleepClockAccuracyPPM  uint16
	AddressKind            AddressKind
	Address                *Address

	// TransmitWindowMicrosecondsPerDigit converts the single-byte window
	// size and offset fields and the 2-byte connection interval field of a
	// CONNECT_REQ into microseconds. The
	// BLE specification prescribes 1250; the source under study multiplies
	// the window-offset byte by 1125, which §9 identifies as a bug. The
	// default here is the corrected 1250, applied uniformly to window
	// size, window offset, and connection interval. Override it to
	// reproduce the original divergence in test fixtures.
	TransmitWindowMicrosecondsPerDigit uint32
}

// DefaultOptions returns the configuration named in §9: a 100ms
// advertising interval, 500ppm own sleep clock accuracy, a random-static
// address, and the corrected 1250 microseconds-per-digit window constant.
func DefaultOptions() Options {
	return Options{
		AdvertisingInterval:                Msec(100),
		SleepClockAccuracyPPM:              500,
		AddressKind:                        AddressRandomStatic,
		TransmitWindowMicrosecondsPerDigit: 1250,
	}
}

// Option mutates an Options record under construction.
type Option func(*Options)

// WithAdvertisingInterval overrides the base advertising interval.
func WithAdvertisingInterval(d DeltaTime) Option {
	return func(o *Options) { o.AdvertisingInterval = d }
}

// WithSleepClockAccuracyPPM overrides this device's own SCA.
func WithSleepClockAccuracyPPM(ppm uint16) Option {
	return func(o *Options) { o.SleepClockAccuracyPPM = ppm }
}

// WithAddressKind overrides the device address kind.
func WithAddressKind(k AddressKind) Option {
	return func(o *Options) { o.AddressKind = k }
}

// WithAddress pins an explicit device address. Without it, New uses an
// all-zero address of the configured AddressKind.
func WithAddress(a Address) Option {
	return func(o *Options) { o.Address = &a }
}

// WithTransmitWindowMicrosecondsPerDigit overrides the window-field
// scaling constant; intended for test fixtures reproducing the source's
// 1125 divergence, see Options.TransmitWindowMicrosecondsPerDigit.
func WithTransmitWindowMicrosecondsPerDigit(us uint32) Option {
	return func(o *Options) { o.TransmitWindowMicrosecondsPerDigit = us }
}

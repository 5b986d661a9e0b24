// Package bluetoe implements the wireless protocol core of an embedded BLE
// peripheral: a Link Layer advertising/connection state machine (in the
// linklayer subpackage) and an ATT/GATT server that answers Attribute
// Protocol requests against a fixed, compile-time-described attribute
// database.
//
// The GATT server only supports read access; writes, notifications, and
// indications are not implemented. Servers are built once and then
// immutable:
//
//	srv := bluetoe.NewServer(bluetoe.Name("thermostat"))
//	svc := srv.AddService(bluetoe.MustParseUUID("09fc95c0-c111-11e3-9904-0002a5d5c51b"))
//
//	temp := svc.AddCharacteristic(bluetoe.MustParseUUID("11fac9e0-c111-11e3-9246-0002a5d5c51b"))
//	temp.HandleReadFunc(func(resp bluetoe.ReadResponseWriter, req *bluetoe.ReadRequest) {
//		fmt.Fprintf(resp, "%d", currentTemperatureCentidegrees())
//	})
//
//	if err := srv.Build(); err != nil {
//		log.Fatal(err)
//	}
//
// Once built, a Server is driven by a radio via its L2CAPInput and
// AdvertisingData methods; it never touches a socket or a hardware radio
// itself. See package linklayer for the state machine that owns that
// radio interaction, and package radio for an in-process radio usable in
// tests and demos.
package bluetoe

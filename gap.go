package bluetoe

// newGAPService builds the standard Generic Access service (0x1800),
// exposing Device Name and Appearance, the same pair the teacher lineage
// synthesized by default. Unlike the teacher, this server only adds it
// when a name has been configured via the Name option, so that an
// unconfigured server's attribute numbering stays minimal and predictable
// for schema-driven tests.
func newGAPService(name string) *Service {
	svc := &Service{uuid: UUID16(gapServiceUUID16)}
	svc.AddCharacteristic(UUID16(gattDeviceNameUUID16)).StaticValue([]byte(name))
	svc.AddCharacteristic(UUID16(gattAppearanceUUID16)).StaticValue(gapAppearanceGenericComputer)
	return svc
}

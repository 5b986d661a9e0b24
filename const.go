package bluetoe

// Registered BLE UUID codes used by the attribute database builder.

const (
	gapServiceUUID16  uint16 = 0x1800
	gattServiceUUID16 uint16 = 0x1801

	gattPrimaryServiceUUID16 uint16 = 0x2800
	gattCharacteristicUUID16 uint16 = 0x2803

	gattClientCharacteristicConfigUUID16 uint16 = 0x2902

	gattDeviceNameUUID16 uint16 = 0x2A00
	gattAppearanceUUID16 uint16 = 0x2A01
)

// gapAppearanceGenericComputer is the value reported by the Appearance
// characteristic of the auto-added GAP service.
var gapAppearanceGenericComputer = []byte{0x80, 0x00}

package bluetoe

const (
	adTypeFlags       = 0x01
	adTypeShortName   = 0x08
	adTypeCompleteName = 0x09

	adFlagsGeneralDiscoverableNoBREDR = 0x06
)

// advertisingData fills buf (capped at 31 bytes, the advertising payload
// limit) with AD records: an always-present Flags record, followed by a
// device-name record if one is configured. It returns the number of bytes
// written, per §6.5.
func (s *Server) advertisingData(buf []byte) int {
	if len(buf) > 31 {
		buf = buf[:31]
	}

	n := 0
	if len(buf)-n >= 3 {
		buf[n] = 2
		buf[n+1] = adTypeFlags
		buf[n+2] = adFlagsGeneralDiscoverableNoBREDR
		n += 3
	}

	if s.name == "" {
		return n
	}

	remaining := len(buf) - n
	if remaining <= 2 {
		return n
	}

	name := []byte(s.name)
	adType := byte(adTypeCompleteName)
	maxNameBytes := remaining - 2
	if len(name) > maxNameBytes {
		name = name[:maxNameBytes]
		adType = adTypeShortName
	}

	buf[n] = byte(len(name) + 1)
	buf[n+1] = adType
	copy(buf[n+2:], name)
	n += 2 + len(name)

	return n
}

package bluetoe

// A Service is a BLE primary service. Calls to AddCharacteristic must
// occur before the owning Server's Build is called.
type Service struct {
	uuid            UUID
	characteristics []*Characteristic
}

// AddCharacteristic adds a characteristic to a service. AddCharacteristic
// panics if the service already contains another characteristic with the
// same UUID.
func (s *Service) AddCharacteristic(u UUID) *Characteristic {
	for _, ch := range s.characteristics {
		if ch.uuid.Equal(u) {
			panic("bluetoe: service already contains a characteristic with uuid " + u.String())
		}
	}

	ch := &Characteristic{uuid: u}
	s.characteristics = append(s.characteristics, ch)
	return ch
}

// UUID returns the service's UUID.
func (s *Service) UUID() UUID {
	return s.uuid
}

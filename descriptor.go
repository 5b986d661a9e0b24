package bluetoe

// characteristicDescriptor is a read-only descriptor attribute following a
// characteristic's value attribute.
type characteristicDescriptor struct {
	uuid     UUID
	accessor Accessor
}

// UUID returns the descriptor's UUID.
func (d *characteristicDescriptor) UUID() UUID {
	return d.uuid
}

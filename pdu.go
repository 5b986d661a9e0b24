package bluetoe

import "encoding/binary"

// l2capInput is the server's entry point for an inbound ATT PDU delivered
// over the L2CAP fixed channel (CID 0x0004). It dispatches on the opcode
// in in[0] and writes exactly one response PDU into out, returning the
// number of bytes written.
func (s *Server) l2capInput(in, out []byte) int {
	if len(in) == 0 {
		return writeErrorResponse(out, 0, 0, attEcodeInvalidPDU)
	}

	opcode := in[0]
	switch opcode {
	case attOpFindInfoReq:
		return s.handleFindInformationRequest(in, out)
	case attOpReadByTypeReq:
		return s.handleReadByTypeRequest(in, out)
	case attOpReadReq:
		return s.handleReadRequest(in, out)
	case attOpReadByGroupReq:
		return s.handleReadByGroupTypeRequest(in, out)
	default:
		return writeErrorResponse(out, opcode, 0, attEcodeInvalidPDU)
	}
}

// checkSizeAndHandleRange validates a request against the accepted sizes
// and decodes a starting/ending handle pair, per §4.4's shared
// "request size & handle-range check". ok is false if an error response
// was already written to out.
func (s *Server) checkSizeAndHandleRange(in, out []byte, sizes ...int) (starting, ending uint16, ok bool, n int) {
	matches := false
	for _, sz := range sizes {
		if len(in) == sz {
			matches = true
			break
		}
	}
	if !matches {
		return 0, 0, false, writeErrorResponse(out, in[0], 0, attEcodeInvalidPDU)
	}

	starting = binary.LittleEndian.Uint16(in[1:3])
	ending = binary.LittleEndian.Uint16(in[3:5])

	if starting == 0 || starting > ending {
		return 0, 0, false, writeErrorResponse(out, in[0], starting, attEcodeInvalidHandle)
	}
	if starting > s.table.count() {
		return 0, 0, false, writeErrorResponse(out, in[0], starting, attEcodeAttrNotFound)
	}
	return starting, ending, true, 0
}

// checkSizeAndHandle is checkSizeAndHandleRange's single-handle analog,
// used by the Read Request handler.
func (s *Server) checkSizeAndHandle(in, out []byte, size int) (handle uint16, ok bool, n int) {
	if len(in) != size {
		return 0, false, writeErrorResponse(out, in[0], 0, attEcodeInvalidPDU)
	}
	handle = binary.LittleEndian.Uint16(in[1:3])
	if handle == 0 {
		return 0, false, writeErrorResponse(out, in[0], handle, attEcodeInvalidHandle)
	}
	if handle > s.table.count() {
		return 0, false, writeErrorResponse(out, in[0], handle, attEcodeAttrNotFound)
	}
	return handle, true, 0
}

// handleFindInformationRequest implements §4.4.1.
func (s *Server) handleFindInformationRequest(in, out []byte) int {
	starting, ending, ok, n := s.checkSizeAndHandleRange(in, out, 5)
	if !ok {
		return n
	}

	only16 := !s.table.at(starting).is128Bit()
	out[0] = attOpFindInfoResp
	if only16 {
		out[1] = 0x01 // short_16bit
	} else {
		out[1] = 0x02 // long_128bit
	}

	ptr := s.collectHandleUUIDTuples(starting, ending, only16, out, 2)
	return ptr
}

// collectHandleUUIDTuples fills (handle, uuid) tuples for Find Information,
// including only attributes whose UUID width matches only16.
func (s *Server) collectHandleUUIDTuples(starting, ending uint16, only16 bool, out []byte, ptr int) int {
	tupleSize := 4
	if !only16 {
		tupleSize = 18
	}

	last := ending
	if last > s.table.count() {
		last = s.table.count()
	}

	for h := starting; h <= last; h++ {
		if len(out)-ptr < tupleSize {
			break
		}
		attr := s.table.at(h)
		if attr.is128Bit() == only16 {
			continue
		}

		binary.LittleEndian.PutUint16(out[ptr:], h)
		if only16 {
			binary.LittleEndian.PutUint16(out[ptr+2:], attr.uuid16)
		} else {
			copy(out[ptr+2:ptr+2+16], s.fetch128BitUUID(h))
		}
		ptr += tupleSize
	}
	return ptr
}

// fetch128BitUUID implements the "look at the preceding attribute" trick
// from §3: the 128-bit UUID of an internal128BitUUID value attribute lives
// in bytes 3..18 of the preceding 0x2803 declaration's read result.
func (s *Server) fetch128BitUUID(valueHandle uint16) []byte {
	decl := s.table.at(valueHandle - 1)
	buf := make([]byte, 19)
	args := AccessArgs{Handle: valueHandle - 1, Buffer: buf}
	decl.access(&args)
	return buf[3:19]
}

// handleReadByTypeRequest implements §4.4.2, including the
// operator-precedence-hazard-preserving truncation-acceptance rule
// (success, or read_truncated with a full 253-byte scratch span) and the
// exactly-L-bytes rule for attributes after the first match.
func (s *Server) handleReadByTypeRequest(in, out []byte) int {
	starting, ending, ok, n := s.checkSizeAndHandleRange(in, out, 7, 21)
	if !ok {
		return n
	}

	is128 := len(in) == 21
	var want16 uint16
	if !is128 {
		want16 = binary.LittleEndian.Uint16(in[5:7])
	}

	const maxPDUSize = 253
	const headerSize = 2

	last := ending
	if last > s.table.count() {
		last = s.table.count()
	}

	cur := headerSize
	pairLen := 0
	first := true

	for h := starting; h <= last; h++ {
		attr := s.table.at(h)

		// Per §9/§4.4.2: a 128-bit requested type can never match, since
		// attribute types in this schema are always 16-bit.
		if is128 {
			continue
		}
		if attr.is128Bit() || attr.uuid16 != want16 {
			continue
		}

		remaining := len(out) - cur
		if remaining < headerSize {
			continue
		}
		maxData := remaining - headerSize
		if maxData > maxPDUSize {
			maxData = maxPDUSize
		}

		args := AccessArgs{Handle: h, Buffer: out[cur+headerSize : cur+headerSize+maxData]}
		rc := attr.access(&args)
		written := args.BytesWritten

		// a || (b && c): success, or a truncated read that exactly filled
		// the capped scratch span.
		accepted := rc == AccessSuccess || (rc == AccessReadTruncated && written == maxPDUSize)
		if !accepted {
			continue
		}

		if first {
			pairLen = written + headerSize
			first = false
		}
		if written+headerSize == pairLen {
			binary.LittleEndian.PutUint16(out[cur:], h)
			cur += headerSize + written
		}
	}

	if cur == headerSize {
		return writeErrorResponse(out, in[0], starting, attEcodeAttrNotFound)
	}

	out[0] = attOpReadByTypeResp
	out[1] = byte(pairLen)
	return cur
}

// handleReadRequest implements §4.4.3, mapping non-success access results
// to distinct error codes rather than collapsing them to
// read_not_permitted (see DESIGN.md's resolution of the §9 open question).
func (s *Server) handleReadRequest(in, out []byte) int {
	handle, ok, n := s.checkSizeAndHandle(in, out, 3)
	if !ok {
		return n
	}

	attr := s.table.at(handle)
	args := AccessArgs{Handle: handle, Buffer: out[1:]}
	rc := attr.access(&args)

	switch rc {
	case AccessSuccess, AccessReadTruncated:
		out[0] = attOpReadResp
		return 1 + args.BytesWritten
	case AccessInvalidOffset:
		return writeErrorResponse(out, in[0], handle, attEcodeInvalidOffset)
	case AccessAttributeNotLong:
		return writeErrorResponse(out, in[0], handle, attEcodeAttrNotLong)
	default:
		return writeErrorResponse(out, in[0], handle, attEcodeReadNotPerm)
	}
}

// handleReadByGroupTypeRequest implements §4.4.4.
func (s *Server) handleReadByGroupTypeRequest(in, out []byte) int {
	starting, ending, ok, n := s.checkSizeAndHandleRange(in, out, 7, 21)
	if !ok {
		return n
	}

	if len(in) == 21 || binary.LittleEndian.Uint16(in[5:7]) != gattPrimaryServiceUUID16 {
		return writeErrorResponse(out, in[0], starting, attEcodeUnsuppGrpType)
	}

	const headerSize = 2
	cur := headerSize
	attrDataLen := 0
	uuidLen := 0

	// Every tuple in one response must share the same attribute_data_length,
	// fixed by the first emitted service's UUID width; a later service with
	// a different width is skipped rather than corrupting that width, per
	// §4.4.4.
	for _, svc := range s.table.services {
		if svc.first > ending || svc.last < starting {
			continue
		}

		width := 2
		if svc.uuid.Is128Bit() {
			width = 16
		}

		if attrDataLen == 0 {
			uuidLen = width
			attrDataLen = 4 + uuidLen
		} else if width != uuidLen {
			continue
		}

		if len(out)-cur < attrDataLen {
			break
		}

		binary.LittleEndian.PutUint16(out[cur:], svc.first)
		binary.LittleEndian.PutUint16(out[cur+2:], svc.last)
		copy(out[cur+4:cur+4+uuidLen], svc.uuid.Bytes())
		cur += attrDataLen
	}

	if cur == headerSize {
		return writeErrorResponse(out, in[0], starting, attEcodeAttrNotFound)
	}

	out[0] = attOpReadByGroupResp
	out[1] = byte(attrDataLen)
	return cur
}

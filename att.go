package bluetoe

import "encoding/binary"

// Attribute Protocol opcodes. Most of these are recognized names from the
// wider ATT opcode space; only the four request opcodes this server
// handles (attOpFindInfoReq, attOpReadByTypeReq, attOpReadReq,
// attOpReadByGroupReq) ever reach a real handler. Everything else falls
// through to the unrecognized-opcode branch of l2capInput and comes back
// as invalid_pdu.
const (
	attOpError           = 0x01
	attOpMtuReq          = 0x02
	attOpMtuResp         = 0x03
	attOpFindInfoReq     = 0x04
	attOpFindInfoResp    = 0x05
	attOpFindByTypeReq   = 0x06
	attOpFindByTypeResp  = 0x07
	attOpReadByTypeReq   = 0x08
	attOpReadByTypeResp  = 0x09
	attOpReadReq         = 0x0a
	attOpReadResp        = 0x0b
	attOpReadBlobReq     = 0x0c
	attOpReadBlobResp    = 0x0d
	attOpReadMultiReq    = 0x0e
	attOpReadMultiResp   = 0x0f
	attOpReadByGroupReq  = 0x10
	attOpReadByGroupResp = 0x11
	attOpWriteReq        = 0x12
	attOpWriteResp       = 0x13
	attOpWriteCmd        = 0x52
	attOpPrepWriteReq    = 0x16
	attOpPrepWriteResp   = 0x17
	attOpExecWriteReq    = 0x18
	attOpExecWriteResp   = 0x19
	attOpHandleNotify    = 0x1b
	attOpHandleInd       = 0x1d
	attOpHandleCnf       = 0x1e
	attOpSignedWriteCmd  = 0xd2
)

const (
	attEcodeSuccess       = 0x00
	attEcodeInvalidHandle = 0x01
	attEcodeReadNotPerm   = 0x02
	attEcodeWriteNotPerm  = 0x03
	attEcodeInvalidPDU    = 0x04
	attEcodeInvalidOffset = 0x07
	attEcodeAttrNotFound  = 0x0a
	attEcodeAttrNotLong   = 0x0b
	attEcodeUnlikely      = 0x0e
	attEcodeUnsuppGrpType = 0x10
)

// errorResponseSize is the fixed size of an Error Response PDU.
const errorResponseSize = 5

// writeErrorResponse encodes an Error Response PDU into out, per §6.3:
// {0x01, request_opcode, handle_lo, handle_hi, error_code}. If out is too
// small to hold it, it writes nothing and returns 0.
func writeErrorResponse(out []byte, requestOpcode byte, handle uint16, code byte) int {
	if len(out) < errorResponseSize {
		return 0
	}
	out[0] = attOpError
	out[1] = requestOpcode
	binary.LittleEndian.PutUint16(out[2:4], handle)
	out[4] = code
	return errorResponseSize
}

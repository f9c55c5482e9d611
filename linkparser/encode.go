package linkparser

import (
	"encoding/binary"

	"github.com/dnp3kit/dissect/wire"
)

// Encode builds a complete, valid link frame carrying payload as its
// transport-segment user data. It is the inverse of TryParse, used by
// tests (and available to any caller that needs to originate DNP3 traffic
// rather than only dissect it).
func Encode(fn wire.FrameFunc, source, destination uint16, payload []byte) []byte {
	var ctrl byte
	switch fn {
	case wire.FuncUnconfirmedUserData:
		ctrl = ctrlPRMMask | byte(fcUnconfirmedUserData)
	case wire.FuncConfirmedUserData:
		ctrl = ctrlPRMMask | byte(fcConfirmedUserData)
	default:
		ctrl = 0
	}

	lenField := byte(minLenField + len(payload))

	header := make([]byte, headerLen)
	header[0] = magic0
	header[1] = magic1
	header[2] = lenField
	header[3] = ctrl
	binary.LittleEndian.PutUint16(header[4:6], destination)
	binary.LittleEndian.PutUint16(header[6:8], source)
	binary.LittleEndian.PutUint16(header[8:10], crc16DNP(header[2:8]))

	out := append([]byte(nil), header...)

	remaining := payload
	for len(remaining) > 0 {
		n := len(remaining)
		if n > maxBlockLen {
			n = maxBlockLen
		}
		block := remaining[:n]
		out = append(out, block...)
		crc := make([]byte, blockCRCLen)
		binary.LittleEndian.PutUint16(crc, crc16DNP(block))
		out = append(out, crc...)
		remaining = remaining[n:]
	}

	return out
}

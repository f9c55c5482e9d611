package linkparser

import (
	"encoding/binary"

	"github.com/dnp3kit/dissect/wire"
)

// AcceptDecision reports whether a candidate frame start was recognized,
// rejected, or needs more bytes to decide. Mirrors the three-way
// accept/reject/need-more-data contract used throughout the retrieved
// pack's stream classifiers.
type AcceptDecision int

const (
	Reject AcceptDecision = iota
	Accept
	NeedMoreData
)

// TryParse attempts to parse one link frame starting at buf[0].
//
// Accept means a complete, structurally valid frame begins at buf[0];
// consumed is its total length in bytes (header, user data, and block
// CRCs), and frame is populated. frame.Payload is nil only when a user-data
// block's CRC failed; the frame is still structurally valid and consumed
// still reports its full length.
//
// Reject means buf[0] cannot start a valid frame (bad magic, or an invalid
// LEN byte, or a header CRC failure). The caller should advance by at
// least one byte and retry.
//
// NeedMoreData means buf is a valid-so-far prefix of a frame but too short
// to tell; the caller should retain buf and retry once more data arrives.
func TryParse(buf []byte) (frame wire.Frame, consumed int, decision AcceptDecision) {
	if len(buf) < 1 {
		return wire.Frame{}, 0, NeedMoreData
	}
	if buf[0] != magic0 {
		return wire.Frame{}, 0, Reject
	}
	if len(buf) < 2 {
		return wire.Frame{}, 0, NeedMoreData
	}
	if buf[1] != magic1 {
		return wire.Frame{}, 0, Reject
	}
	if len(buf) < 3 {
		return wire.Frame{}, 0, NeedMoreData
	}

	lenField := buf[2]
	if lenField < minLenField {
		return wire.Frame{}, 0, Reject
	}

	userDataLen := int(lenField) - minLenField
	numBlocks := 0
	if userDataLen > 0 {
		numBlocks = (userDataLen + maxBlockLen - 1) / maxBlockLen
	}
	totalLen := headerLen + userDataLen + numBlocks*blockCRCLen

	if len(buf) < headerLen {
		return wire.Frame{}, 0, NeedMoreData
	}

	headerCRC := crc16DNP(buf[2:8])
	wantCRC := binary.LittleEndian.Uint16(buf[8:10])
	if headerCRC != wantCRC {
		return wire.Frame{}, 0, Reject
	}

	if len(buf) < totalLen {
		return wire.Frame{}, 0, NeedMoreData
	}

	ctrl := buf[3]
	dest := binary.LittleEndian.Uint16(buf[4:6])
	src := binary.LittleEndian.Uint16(buf[6:8])

	f := wire.Frame{
		Func:        decodeFunc(ctrl),
		Source:      src,
		Destination: dest,
	}

	payload, ok := extractPayload(buf[headerLen:totalLen], userDataLen)
	if ok {
		f.Payload = payload
	}

	return f, totalLen, Accept
}

func decodeFunc(ctrl byte) wire.FrameFunc {
	if ctrl&ctrlPRMMask == 0 {
		// Secondary-station frame (ack, nak, link status, ...): never
		// carries application user data.
		return wire.FuncOther
	}
	switch funcCode(ctrl & ctrlFunctionMask) {
	case fcUnconfirmedUserData:
		return wire.FuncUnconfirmedUserData
	case fcConfirmedUserData:
		return wire.FuncConfirmedUserData
	default:
		return wire.FuncOther
	}
}

// extractPayload walks the user-data blocks following the header,
// verifying each block's trailing CRC. It always returns the concatenated
// data bytes (even a zero-length slice when userDataLen is 0); ok reports
// whether every block's CRC matched.
func extractPayload(blocks []byte, userDataLen int) (data []byte, ok bool) {
	data = make([]byte, 0, userDataLen)
	ok = true

	remaining := userDataLen
	offs := 0
	for remaining > 0 {
		n := remaining
		if n > maxBlockLen {
			n = maxBlockLen
		}
		block := blocks[offs : offs+n]
		gotCRC := blocks[offs+n : offs+n+blockCRCLen]

		data = append(data, block...)
		if crc16DNP(block) != binary.LittleEndian.Uint16(gotCRC) {
			ok = false
		}

		offs += n + blockCRCLen
		remaining -= n
	}

	return data, ok
}

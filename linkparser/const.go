// Package linkparser decodes a single DNP3 link-layer frame assumed to
// begin at offset 0 of the buffer it is given. It does not search for a
// frame boundary — that byte-granular resync is the core dissector's job
// (spec: frame synchronizer) built on top of this package's Accept/Reject/
// NeedMoreData contract.
package linkparser

const (
	magic0 = 0x05
	magic1 = 0x64

	// headerLen is start(2) + len(1) + ctrl(1) + dest(2) + src(2) + crc(2).
	headerLen = 10

	maxBlockLen = 16
	blockCRCLen = 2

	// minLenField is the smallest legal LEN byte: ctrl+dest+src with zero
	// user data (e.g. an ACK-bearing frame with no transport payload).
	minLenField = 5
)

// funcCode is the link-layer function code, primary-station frames
// (IEEE 1815-2012 Table 6). Only the two user-data codes are named; every
// other valid code (reset/test link states, request link status, ...)
// decodes to wire.FuncOther.
type funcCode byte

const (
	fcConfirmedUserData   funcCode = 0x03
	fcUnconfirmedUserData funcCode = 0x04
)

const (
	ctrlFunctionMask = 0x0F
	ctrlPRMMask      = 0x40
)

package appparser

import "github.com/dnp3kit/dissect/wire"

// AppControl is the one-byte application control octet present at the
// start of every application fragment.
type AppControl struct {
	FIR bool
	FIN bool
	CON bool
	UNS bool
	Seq uint8 // 4-bit sequence number, 0..15
}

func decodeAppControl(b byte) AppControl {
	return AppControl{
		FIR: b&appCtrlFIRMask != 0,
		FIN: b&appCtrlFINMask != 0,
		CON: b&appCtrlCONMask != 0,
		UNS: b&appCtrlUNSMask != 0,
		Seq: b & appCtrlSeqMask,
	}
}

// Request is a reassembled application-layer request fragment.
type Request struct {
	Control  AppControl
	Function FunctionCode
	Objects  []byte
}

func (Request) Kind() string { return "request" }

// Response is a reassembled application-layer response fragment.
type Response struct {
	Control  AppControl
	Function FunctionCode
	IIN      uint16 // internal indications
	Objects  []byte
}

func (Response) Kind() string { return "response" }

const (
	minRequestLen  = 2 // app control + function code
	minResponseLen = 4 // app control + function code + 2-byte IIN
)

// Parse classifies payload, a fully reassembled application fragment.
//
// On success, fragment is non-nil and kind/err are zero.
//
// If payload is structurally recognizable as an attempted request or
// response but violates a further rule (unknown function code, or a
// response too short to carry its IIN field), fragment and err are nil and
// kind reports why.
//
// If payload is too short to even read the application control octet and
// function code, parsing fails entirely: fragment is nil and err is
// non-nil.
func Parse(payload []byte) (fragment wire.AppFragment, kind wire.AppErrorKind, err error) {
	if len(payload) < minRequestLen {
		return nil, 0, errTooShort
	}

	ctrl := decodeAppControl(payload[0])
	fn := FunctionCode(payload[1])

	switch {
	case requestFunctions.Contains(fn):
		return Request{Control: ctrl, Function: fn, Objects: payload[minRequestLen:]}, 0, nil

	case responseFunctions.Contains(fn):
		if len(payload) < minResponseLen {
			return nil, wire.AppErrorMalformedResponse, nil
		}
		iin := uint16(payload[2]) | uint16(payload[3])<<8
		return Response{Control: ctrl, Function: fn, IIN: iin, Objects: payload[minResponseLen:]}, 0, nil

	default:
		return nil, wire.AppErrorUnsupportedFunction, nil
	}
}

// Package appparser classifies a reassembled application-layer fragment
// as a request or a response, mirroring the dual-shape-in-one-file style
// of the retrieved pack's request/response classifiers. Object-level
// (group/variation) decoding is out of scope; the object data is carried
// through opaquely.
package appparser

import "github.com/dnp3kit/dissect/sets"

const (
	appCtrlFIRMask = 0x80
	appCtrlFINMask = 0x40
	appCtrlCONMask = 0x20
	appCtrlUNSMask = 0x10
	appCtrlSeqMask = 0x0F
)

// FunctionCode is the DNP3 application-layer function code (IEEE 1815-2012
// Table 4-1), trimmed to the codes this classifier recognizes.
type FunctionCode byte

const (
	FuncConfirm            FunctionCode = 0x00
	FuncRead                FunctionCode = 0x01
	FuncWrite               FunctionCode = 0x02
	FuncSelect              FunctionCode = 0x03
	FuncOperate             FunctionCode = 0x04
	FuncDirectOperate       FunctionCode = 0x05
	FuncDirectOperateNR     FunctionCode = 0x06
	FuncImmedFreeze         FunctionCode = 0x07
	FuncImmedFreezeNR       FunctionCode = 0x08
	FuncFreezeClear         FunctionCode = 0x09
	FuncFreezeClearNR       FunctionCode = 0x0A
	FuncColdRestart         FunctionCode = 0x0D
	FuncWarmRestart         FunctionCode = 0x0E
	FuncEnableUnsolicited   FunctionCode = 0x14
	FuncDisableUnsolicited  FunctionCode = 0x15
	FuncAssignClass         FunctionCode = 0x16
	FuncDelayMeasure        FunctionCode = 0x17

	FuncResponse             FunctionCode = 0x81
	FuncUnsolicitedResponse  FunctionCode = 0x82
)

var requestFunctions = sets.NewSet(
	FuncConfirm,
	FuncRead,
	FuncWrite,
	FuncSelect,
	FuncOperate,
	FuncDirectOperate,
	FuncDirectOperateNR,
	FuncImmedFreeze,
	FuncImmedFreezeNR,
	FuncFreezeClear,
	FuncFreezeClearNR,
	FuncColdRestart,
	FuncWarmRestart,
	FuncEnableUnsolicited,
	FuncDisableUnsolicited,
	FuncAssignClass,
	FuncDelayMeasure,
)

var responseFunctions = sets.NewSet(
	FuncResponse,
	FuncUnsolicitedResponse,
)

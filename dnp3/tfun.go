package dnp3

import (
	"github.com/dnp3kit/dissect/optionals"
	"github.com/dnp3kit/dissect/wire"
)

// tokenKind is the six-letter alphabet the transport-function recognizer
// runs over: a segment's relationship to the segment immediately before it
// (A: starts a new series, =: exact retransmit, +: next in sequence,
// !: a sequence gap, _: no prior segment exists at all) plus Z, emitted
// alongside any of the other five when the segment also closes its series.
type tokenKind byte

const (
	tokA tokenKind = iota
	tokEq
	tokPlus
	tokBang
	tokOrphan
	tokZ
)

// token pairs a tokenKind with the segment that produced it. tokZ carries
// no segment of its own; it always arrives as the second token of a pair
// produced by the same segment as the token before it.
type token struct {
	kind tokenKind
	seg  wire.Segment
}

// transportTokens classifies one segment against the context's last seen
// segment, producing one or two tokens (second present iff seg.FIN).
func transportTokens(seg wire.Segment, last optionals.Optional[wire.Segment]) []token {
	toks := make([]token, 0, 2)

	switch {
	case seg.FIR:
		toks = append(toks, token{kind: tokA, seg: seg})
	default:
		prior, ok := last.Get()
		switch {
		case !ok:
			toks = append(toks, token{kind: tokOrphan, seg: seg})
		case seg.Equal(prior):
			toks = append(toks, token{kind: tokEq, seg: seg})
		case seg.Seq == (prior.Seq+1)&0x3F:
			toks = append(toks, token{kind: tokPlus, seg: seg})
		default:
			toks = append(toks, token{kind: tokBang, seg: seg})
		}
	}

	if seg.FIN {
		toks = append(toks, token{kind: tokZ})
	}

	return toks
}

// tfunState is the in-progress state of a transport-function series
// currently being accumulated: the segment that opened it (the most
// recent 'A' token seen) and the segments contributed by '+' tokens since.
type tfunState struct {
	head  wire.Segment
	parts []wire.Segment
}

// tfunResult is produced when stepTfun completes one top-level alternative
// of the recognizer's grammar. Payload is non-nil only when the completed
// series closed cleanly (a 'Z' token); a nil Payload with completed=true
// means the alternative matched but produced nothing to emit (either a
// bare non-series token, or a series that closed on something other than
// Z).
type tfunResult struct {
	Payload []byte
}

// stepTfun advances the recognizer by exactly one token. It implements the
// grammar
//
//	tfun   := (series | any-not-A)*
//	series := A+ (+|=)* (Z | any-not-(A|Z|+|=))
//
// as a small hand-coded machine rather than a generated parser: the
// grammar is unambiguous and the corpus carries no Go parser-combinator or
// LALR library this recognizer could be built on.
//
// Outside a series (state has no head), any token other than 'A' is noise:
// it completes immediately with no payload. An 'A' opens (or, if a series
// is already open, restarts — discarding whatever was accumulated so far)
// an in-progress series. '+' and '=' continue an open series without
// completing it. 'Z' closes it successfully; anything else ('!' or an
// orphan, which cannot structurally occur once a series is open) closes it
// unsuccessfully. Either closure completes the step.
func stepTfun(state optionals.Optional[tfunState], tok token) (optionals.Optional[tfunState], tfunResult, bool) {
	st, open := state.Get()

	if !open {
		if tok.kind == tokA {
			return optionals.Some(tfunState{head: tok.seg}), tfunResult{}, false
		}
		return optionals.None[tfunState](), tfunResult{}, true
	}

	switch tok.kind {
	case tokA:
		return optionals.Some(tfunState{head: tok.seg}), tfunResult{}, false
	case tokPlus:
		st.parts = append(st.parts, tok.seg)
		return optionals.Some(st), tfunResult{}, false
	case tokEq:
		return optionals.Some(st), tfunResult{}, false
	case tokZ:
		return optionals.None[tfunState](), tfunResult{Payload: assembleSeries(st)}, true
	default: // tokBang, tokOrphan
		return optionals.None[tfunState](), tfunResult{}, true
	}
}

func assembleSeries(st tfunState) []byte {
	total := len(st.head.Payload)
	for _, p := range st.parts {
		total += len(p.Payload)
	}

	out := make([]byte, 0, total)
	out = append(out, st.head.Payload...)
	for _, p := range st.parts {
		out = append(out, p.Payload...)
	}
	return out
}

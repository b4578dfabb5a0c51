// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package protocol is the uniform capability the host drives: a Protocol handle wrapping either
// a keygen or a sign state machine, advanced one round at a time with framed envelopes from the
// relay (gg18crypto and wire do the actual cryptography and framing; this package only sequences
// them). See keygen_fsm.go and sign_fsm.go for the two state machines, persist.go for the
// serialization surface, and errors.go for the typed error taxonomy surfaced to the host.
package protocol

// sessionKind distinguishes which protocol a handle runs, independent of which round it is in.
type sessionKind int

const (
	kindKeygen sessionKind = iota
	kindSign
)

// Protocol is a single-use, non-thread-safe handle: the host must serialize its own calls to
// Advance and must not call it again once Finish or an error has ended the handle's useful life.
type Protocol struct {
	kind   sessionKind
	keygen *keygenMachine
	sign   *signMachine
}

// NewKeygen starts a fresh keygen session. The first Advance call must carry the keygen-init
// descriptor (parties, threshold, this party's index).
func NewKeygen() *Protocol {
	return &Protocol{kind: kindKeygen, keygen: newKeygenMachine()}
}

// NewSignFromGroup starts a signing session from a previously persisted group descriptor (the
// artifact keygen's Finish produced). The first Advance call must carry the sign-init descriptor
// (participant indices, local position, message hash).
func NewSignFromGroup(groupBytes []byte) (*Protocol, error) {
	group, err := deserializeGroup(groupBytes)
	if err != nil {
		return nil, newErr(CorruptGroup, err)
	}
	return &Protocol{kind: kindSign, sign: newSignMachine(group)}, nil
}

// Advance drives exactly one round, transitioning the internal state and returning the outgoing
// framed envelope. Fails with ProtocolFinished once the handle has reached Done.
func (p *Protocol) Advance(frame []byte) ([]byte, error) {
	switch p.kind {
	case kindKeygen:
		if p.keygen.isDone() {
			return nil, newErr(ProtocolFinished, nil)
		}
		return p.keygen.advance(frame)
	case kindSign:
		if p.sign.isDone() {
			return nil, newErr(ProtocolFinished, nil)
		}
		return p.sign.advance(frame)
	default:
		return nil, newErrf(CorruptState, "unknown protocol kind %d", p.kind)
	}
}

// Finish returns the serialized terminal artifact: a group descriptor for keygen, signature
// bytes for sign. Fails with ProtocolNotFinished outside the Done state.
func (p *Protocol) Finish() ([]byte, error) {
	switch p.kind {
	case kindKeygen:
		if !p.keygen.isDone() {
			return nil, newErr(ProtocolNotFinished, nil)
		}
		blob, err := serializeGroup(p.keygen.group)
		if err != nil {
			return nil, newErr(CryptoFailure, err)
		}
		return blob, nil
	case kindSign:
		if !p.sign.isDone() {
			return nil, newErr(ProtocolNotFinished, nil)
		}
		return p.sign.signature.Bytes(), nil
	default:
		return nil, newErrf(CorruptState, "unknown protocol kind %d", p.kind)
	}
}

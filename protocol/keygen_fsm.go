// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// The keygen state machine: a strictly linear Init -> R1 -> R2 -> R3 -> R4 -> R5 -> Done
// progression, one gg18crypto round function invoked per advance. Only one ctx* field is ever
// non-nil; each advance call takes the current context, hands it to the round function, and puts
// back whatever the round function returns, mirroring the move semantics the round functions
// themselves are built on.
package protocol

import (
	"encoding/json"

	"github.com/jjanku/mpc-sigs/gg18crypto"
	"github.com/jjanku/mpc-sigs/wire"
)

type keygenRound int

const (
	keygenRoundInit keygenRound = iota
	keygenRound1
	keygenRound2
	keygenRound3
	keygenRound4
	keygenRound5
	keygenRoundDone
)

type keygenMachine struct {
	round   keygenRound
	parties int

	ctx1 *gg18crypto.KeygenCtx1
	ctx2 *gg18crypto.KeygenCtx2
	ctx3 *gg18crypto.KeygenCtx3
	ctx4 *gg18crypto.KeygenCtx4
	ctx5 *gg18crypto.KeygenCtx5

	group     *gg18crypto.GroupDescriptor
	publicKey []byte
}

func newKeygenMachine() *keygenMachine {
	return &keygenMachine{round: keygenRoundInit}
}

func (m *keygenMachine) isDone() bool { return m.round == keygenRoundDone }

func (m *keygenMachine) advance(frame []byte) ([]byte, error) {
	switch m.round {
	case keygenRoundInit:
		return m.advanceInit(frame)
	case keygenRound1:
		return m.advanceRound1(frame)
	case keygenRound2:
		return m.advanceRound2(frame)
	case keygenRound3:
		return m.advanceRound3(frame)
	case keygenRound4:
		return m.advanceRound4(frame)
	case keygenRound5:
		return m.advanceRound5(frame)
	default:
		return nil, newErr(ProtocolFinished, nil)
	}
}

func (m *keygenMachine) advanceInit(initBytes []byte) ([]byte, error) {
	init, err := wire.UnmarshalKeygenInit(initBytes)
	if err != nil {
		return nil, newErr(MalformedInit, err)
	}
	out, ctx, err := gg18crypto.KeyGen1(int(init.Parties), int(init.Threshold), int(init.Index))
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.parties = int(init.Parties)
	m.ctx1 = ctx
	m.round = keygenRound1
	return wire.Pack(wire.Broadcast(marshalJSON(out), m.parties-1)), nil
}

func (m *keygenMachine) advanceRound1(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.KeyGen1Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.KeyGen2(peers, m.ctx1)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx1, m.ctx2 = nil, ctx
	m.round = keygenRound2
	return wire.Pack(wire.Broadcast(marshalJSON(out), len(raw))), nil
}

func (m *keygenMachine) advanceRound2(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.KeyGen2Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.KeyGen3(peers, m.ctx2)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx2, m.ctx3 = nil, ctx
	m.round = keygenRound3
	msgs, err := wire.Unicast(out, func(o *gg18crypto.KeyGen3Out) ([]byte, error) {
		return json.Marshal(o)
	})
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	return wire.Pack(msgs), nil
}

func (m *keygenMachine) advanceRound3(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.KeyGen3Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.KeyGen4(peers, m.ctx3)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx3, m.ctx4 = nil, ctx
	m.round = keygenRound4
	return wire.Pack(wire.Broadcast(marshalJSON(out), len(raw))), nil
}

func (m *keygenMachine) advanceRound4(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.KeyGen4Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.KeyGen5(peers, m.ctx4)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx4, m.ctx5 = nil, ctx
	m.round = keygenRound5
	return wire.Pack(wire.Broadcast(marshalJSON(out), len(raw))), nil
}

func (m *keygenMachine) advanceRound5(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.KeyGen5Out](raw)
	if err != nil {
		return nil, err
	}
	group, pubKey, err := gg18crypto.KeyGen6(peers, m.ctx5)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx5 = nil
	m.group, m.publicKey = group, pubKey
	m.round = keygenRoundDone
	return wire.Pack(wire.Broadcast(pubKey, len(raw))), nil
}

// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// The sign state machine: Init (constructed from a group descriptor) -> R1 -> ... -> R9 -> Done,
// one gg18crypto round function per advance, mirroring keygen_fsm.go's shape over ten rounds
// instead of six.
package protocol

import (
	"encoding/json"

	"github.com/jjanku/mpc-sigs/gg18crypto"
	"github.com/jjanku/mpc-sigs/wire"
)

type signRound int

const (
	signRoundInit signRound = iota
	signRound1
	signRound2
	signRound3
	signRound4
	signRound5
	signRound6
	signRound7
	signRound8
	signRound9
	signRoundDone
)

type signMachine struct {
	round signRound
	group *gg18crypto.GroupDescriptor
	n     int // number of signing participants

	ctx1 *gg18crypto.SignCtx1
	ctx2 *gg18crypto.SignCtx2
	ctx3 *gg18crypto.SignCtx3
	ctx4 *gg18crypto.SignCtx4
	ctx5 *gg18crypto.SignCtx5
	ctx6 *gg18crypto.SignCtx6
	ctx7 *gg18crypto.SignCtx7
	ctx8 *gg18crypto.SignCtx8
	ctx9 *gg18crypto.SignCtx9

	signature *gg18crypto.Signature
}

func newSignMachine(group *gg18crypto.GroupDescriptor) *signMachine {
	return &signMachine{round: signRoundInit, group: group}
}

func (m *signMachine) isDone() bool { return m.round == signRoundDone }

func (m *signMachine) advance(frame []byte) ([]byte, error) {
	switch m.round {
	case signRoundInit:
		return m.advanceInit(frame)
	case signRound1:
		return m.advanceRound1(frame)
	case signRound2:
		return m.advanceRound2(frame)
	case signRound3:
		return m.advanceRound3(frame)
	case signRound4:
		return m.advanceRound4(frame)
	case signRound5:
		return m.advanceRound5(frame)
	case signRound6:
		return m.advanceRound6(frame)
	case signRound7:
		return m.advanceRound7(frame)
	case signRound8:
		return m.advanceRound8(frame)
	case signRound9:
		return m.advanceRound9(frame)
	default:
		return nil, newErr(ProtocolFinished, nil)
	}
}

func (m *signMachine) advanceInit(initBytes []byte) ([]byte, error) {
	init, err := wire.UnmarshalSignInit(initBytes)
	if err != nil {
		return nil, newErr(MalformedInit, err)
	}
	indices := make([]int, len(init.Indices))
	for i, idx := range init.Indices {
		indices[i] = int(idx)
	}
	out, ctx, err := gg18crypto.Sign1(m.group, indices, int(init.Index), init.Hash)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.n = len(indices)
	m.ctx1 = ctx
	m.round = signRound1
	return wire.Pack(wire.Broadcast(marshalJSON(out), m.n-1)), nil
}

func (m *signMachine) advanceRound1(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.SignRound1Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.Sign2(peers, m.ctx1)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx1, m.ctx2 = nil, ctx
	m.round = signRound2
	msgs, err := wire.Unicast(out, func(o *gg18crypto.SignRound2Out) ([]byte, error) {
		return json.Marshal(o)
	})
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	return wire.Pack(msgs), nil
}

func (m *signMachine) advanceRound2(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.SignRound2Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.Sign3(peers, m.ctx2)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx2, m.ctx3 = nil, ctx
	m.round = signRound3
	return wire.Pack(wire.Broadcast(marshalJSON(out), len(raw))), nil
}

func (m *signMachine) advanceRound3(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[gg18crypto.SignRound3Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.Sign4(peers, m.ctx3)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx3, m.ctx4 = nil, ctx
	m.round = signRound4
	return wire.Pack(wire.Broadcast(marshalJSON(out), len(raw))), nil
}

func (m *signMachine) advanceRound4(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.SignRound4Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.Sign5(peers, m.ctx4)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx4, m.ctx5 = nil, ctx
	m.round = signRound5
	return wire.Pack(wire.Broadcast(marshalJSON(out), len(raw))), nil
}

func (m *signMachine) advanceRound5(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.SignRound5Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.Sign6(peers, m.ctx5)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx5, m.ctx6 = nil, ctx
	m.round = signRound6
	return wire.Pack(wire.Broadcast(marshalJSON(out), len(raw))), nil
}

func (m *signMachine) advanceRound6(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.SignRound6Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.Sign7(peers, m.ctx6)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx6, m.ctx7 = nil, ctx
	m.round = signRound7
	return wire.Pack(wire.Broadcast(marshalJSON(out), len(raw))), nil
}

func (m *signMachine) advanceRound7(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.SignRound7Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.Sign8(peers, m.ctx7)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx7, m.ctx8 = nil, ctx
	m.round = signRound8
	return wire.Pack(wire.Broadcast(marshalJSON(out), len(raw))), nil
}

func (m *signMachine) advanceRound8(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.SignRound8Out](raw)
	if err != nil {
		return nil, err
	}
	out, ctx, err := gg18crypto.Sign9(peers, m.ctx8)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx8, m.ctx9 = nil, ctx
	m.round = signRound9
	return wire.Pack(wire.Broadcast(marshalJSON(out), len(raw))), nil
}

func (m *signMachine) advanceRound9(frame []byte) ([]byte, error) {
	raw, err := wire.Unpack(frame)
	if err != nil {
		return nil, newErr(MalformedFrame, err)
	}
	peers, err := unmarshalEach[*gg18crypto.SignRound8Out](raw)
	if err != nil {
		return nil, err
	}
	sig, err := gg18crypto.Sign10(peers, m.ctx9)
	if err != nil {
		return nil, newErr(CryptoFailure, err)
	}
	m.ctx9 = nil
	m.signature = sig
	m.round = signRoundDone
	return wire.Pack(nil), nil
}

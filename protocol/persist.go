// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Round-by-round snapshotting of a whole Protocol handle, so the host can survive a restart
// between any two advance calls. The layout is opaque and versioned with a leading magic byte
// and major version; persistence is all-or-nothing, failing closed with CorruptState rather than
// returning a partially restored handle.
package protocol

import (
	"bytes"
	"encoding/gob"

	"github.com/jjanku/mpc-sigs/gg18crypto"
)

const (
	protocolMagic        byte = 0xa5
	protocolMajorVersion byte = 1
)

type keygenSnapshot struct {
	Round   keygenRound
	Parties int

	Ctx1 *gg18crypto.KeygenCtx1
	Ctx2 *gg18crypto.KeygenCtx2
	Ctx3 *gg18crypto.KeygenCtx3
	Ctx4 *gg18crypto.KeygenCtx4
	Ctx5 *gg18crypto.KeygenCtx5

	Group     *gg18crypto.GroupDescriptor
	PublicKey []byte
}

func (m *keygenMachine) snapshot() *keygenSnapshot {
	return &keygenSnapshot{
		Round: m.round, Parties: m.parties,
		Ctx1: m.ctx1, Ctx2: m.ctx2, Ctx3: m.ctx3, Ctx4: m.ctx4, Ctx5: m.ctx5,
		Group: m.group, PublicKey: m.publicKey,
	}
}

func (m *keygenMachine) restore(s *keygenSnapshot) {
	m.round, m.parties = s.Round, s.Parties
	m.ctx1, m.ctx2, m.ctx3, m.ctx4, m.ctx5 = s.Ctx1, s.Ctx2, s.Ctx3, s.Ctx4, s.Ctx5
	m.group, m.publicKey = s.Group, s.PublicKey
}

type signSnapshot struct {
	Round signRound
	Group *gg18crypto.GroupDescriptor
	N     int

	Ctx1 *gg18crypto.SignCtx1
	Ctx2 *gg18crypto.SignCtx2
	Ctx3 *gg18crypto.SignCtx3
	Ctx4 *gg18crypto.SignCtx4
	Ctx5 *gg18crypto.SignCtx5
	Ctx6 *gg18crypto.SignCtx6
	Ctx7 *gg18crypto.SignCtx7
	Ctx8 *gg18crypto.SignCtx8
	Ctx9 *gg18crypto.SignCtx9

	Signature *gg18crypto.Signature
}

func (m *signMachine) snapshot() *signSnapshot {
	return &signSnapshot{
		Round: m.round, Group: m.group, N: m.n,
		Ctx1: m.ctx1, Ctx2: m.ctx2, Ctx3: m.ctx3, Ctx4: m.ctx4, Ctx5: m.ctx5,
		Ctx6: m.ctx6, Ctx7: m.ctx7, Ctx8: m.ctx8, Ctx9: m.ctx9,
		Signature: m.signature,
	}
}

func (m *signMachine) restore(s *signSnapshot) {
	m.round, m.group, m.n = s.Round, s.Group, s.N
	m.ctx1, m.ctx2, m.ctx3, m.ctx4, m.ctx5 = s.Ctx1, s.Ctx2, s.Ctx3, s.Ctx4, s.Ctx5
	m.ctx6, m.ctx7, m.ctx8, m.ctx9 = s.Ctx6, s.Ctx7, s.Ctx8, s.Ctx9
	m.signature = s.Signature
}

type persistedBlob struct {
	Kind   sessionKind
	Keygen *keygenSnapshot
	Sign   *signSnapshot
}

// Serialize round-trips the entire handle to a portable blob.
func (p *Protocol) Serialize() ([]byte, error) {
	blob := persistedBlob{Kind: p.kind}
	switch p.kind {
	case kindKeygen:
		blob.Keygen = p.keygen.snapshot()
	case kindSign:
		blob.Sign = p.sign.snapshot()
	}
	var buf bytes.Buffer
	buf.WriteByte(protocolMagic)
	buf.WriteByte(protocolMajorVersion)
	if err := gob.NewEncoder(&buf).Encode(&blob); err != nil {
		return nil, newErr(CorruptState, err)
	}
	return buf.Bytes(), nil
}

// Deserialize restores a handle previously produced by Serialize. The result must be
// behaviorally indistinguishable from the original for any subsequent advance call.
func Deserialize(data []byte) (*Protocol, error) {
	if len(data) < 2 || data[0] != protocolMagic {
		return nil, newErr(CorruptState, errMissingMagic)
	}
	if data[1] != protocolMajorVersion {
		return nil, newErrf(CorruptState, "unsupported persisted-state version %d", data[1])
	}
	var blob persistedBlob
	if err := gob.NewDecoder(bytes.NewReader(data[2:])).Decode(&blob); err != nil {
		return nil, newErr(CorruptState, err)
	}

	p := &Protocol{kind: blob.Kind}
	switch blob.Kind {
	case kindKeygen:
		if blob.Keygen == nil {
			return nil, newErr(CorruptState, errMissingState)
		}
		p.keygen = &keygenMachine{}
		p.keygen.restore(blob.Keygen)
	case kindSign:
		if blob.Sign == nil {
			return nil, newErr(CorruptState, errMissingState)
		}
		p.sign = &signMachine{}
		p.sign.restore(blob.Sign)
	default:
		return nil, newErrf(CorruptState, "unknown protocol kind %d", blob.Kind)
	}
	return p, nil
}

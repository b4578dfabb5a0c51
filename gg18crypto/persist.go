// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Round contexts carry secret material behind unexported fields, so the default struct-field
// reflection gob would otherwise apply cannot see all of it and would silently drop values.
// Each context type that owns such a field instead implements GobEncoder/GobDecoder itself over a
// private mirror struct. A context that adds no fields of its own on top of an embedded type
// needs no codec of its own: gob promotes the embedded GobEncoder/GobDecoder methods and uses
// them directly. But a context that adds even an exported field on top of an embedded type that
// already has its own GobEncoder must also declare its own codec: the promoted encoder shadows
// the field, and gob would silently serialize only the embedded portion.
package gg18crypto

import (
	"bytes"
	"encoding/gob"
	"math/big"
)

func gobMarshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gobUnmarshal(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

type keygenCtx1Mirror struct {
	Parties, Threshold, Index int
	Ks                        []*big.Int
	Vs                        VssCommitments
	Shares                    []*VssShare
	PaillierSK                *PaillierPrivateKey
	NTilde, H1, H2            *big.Int
	Cmt                       *HashCommitDecommit
}

func (c *KeygenCtx1) GobEncode() ([]byte, error) {
	return gobMarshal(&keygenCtx1Mirror{
		Parties: c.Parties, Threshold: c.Threshold, Index: c.Index,
		Ks: c.Ks, Vs: c.Vs, Shares: c.Shares,
		PaillierSK:     c.PaillierSK,
		NTilde: c.NTilde, H1: c.H1, H2: c.H2,
		Cmt: c.cmt,
	})
}

func (c *KeygenCtx1) GobDecode(data []byte) error {
	var m keygenCtx1Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.Parties, c.Threshold, c.Index = m.Parties, m.Threshold, m.Index
	c.Ks, c.Vs, c.Shares = m.Ks, m.Vs, m.Shares
	c.PaillierSK = m.PaillierSK
	c.NTilde, c.H1, c.H2 = m.NTilde, m.H1, m.H2
	c.cmt = m.Cmt
	return nil
}

type keygenCtx2Mirror struct {
	Base        KeygenCtx1
	PeerCommits []*big.Int
}

func (c *KeygenCtx2) GobEncode() ([]byte, error) {
	return gobMarshal(&keygenCtx2Mirror{Base: c.KeygenCtx1, PeerCommits: c.peerCommits})
}

func (c *KeygenCtx2) GobDecode(data []byte) error {
	var m keygenCtx2Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.KeygenCtx1 = m.Base
	c.peerCommits = m.PeerCommits
	return nil
}

type keygenCtx3Mirror struct {
	Base       KeygenCtx2
	PeerPublic map[int]*peerKeygenPublic
}

func (c *KeygenCtx3) GobEncode() ([]byte, error) {
	return gobMarshal(&keygenCtx3Mirror{Base: c.KeygenCtx2, PeerPublic: c.peerPublic})
}

func (c *KeygenCtx3) GobDecode(data []byte) error {
	var m keygenCtx3Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.KeygenCtx2 = m.Base
	c.peerPublic = m.PeerPublic
	return nil
}

type keygenCtx4Mirror struct {
	Base KeygenCtx3
	Xi   *big.Int
}

func (c *KeygenCtx4) GobEncode() ([]byte, error) {
	return gobMarshal(&keygenCtx4Mirror{Base: c.KeygenCtx3, Xi: c.Xi})
}

func (c *KeygenCtx4) GobDecode(data []byte) error {
	var m keygenCtx4Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.KeygenCtx3 = m.Base
	c.Xi = m.Xi
	return nil
}

type keygenCtx5Mirror struct {
	Base     KeygenCtx4
	Y        *ECPoint
	PeerBigX map[int]*ECPoint
}

func (c *KeygenCtx5) GobEncode() ([]byte, error) {
	return gobMarshal(&keygenCtx5Mirror{Base: c.KeygenCtx4, Y: c.Y, PeerBigX: c.peerBigX})
}

func (c *KeygenCtx5) GobDecode(data []byte) error {
	var m keygenCtx5Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.KeygenCtx4 = m.Base
	c.Y = m.Y
	c.peerBigX = m.PeerBigX
	return nil
}

type signCtx1Mirror struct {
	Group          *GroupDescriptor
	Indices        []int
	LocalPos       int
	M, W           *big.Int
	K, Gamma0      *big.Int
	Gamma          *ECPoint
	CA             *big.Int
	Cmt            *HashCommitDecommit
}

func (c *SignCtx1) GobEncode() ([]byte, error) {
	return gobMarshal(&signCtx1Mirror{
		Group: c.Group, Indices: c.Indices, LocalPos: c.LocalPos,
		M: c.M, W: c.W, K: c.k, Gamma0: c.gamma, Gamma: c.Gamma, CA: c.cA, Cmt: c.cmt,
	})
}

func (c *SignCtx1) GobDecode(data []byte) error {
	var m signCtx1Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.Group, c.Indices, c.LocalPos = m.Group, m.Indices, m.LocalPos
	c.M, c.W = m.M, m.W
	c.k, c.gamma, c.Gamma, c.cA, c.cmt = m.K, m.Gamma0, m.Gamma, m.CA, m.Cmt
	return nil
}

type signCtx2Mirror struct {
	Base       SignCtx1
	PeerCommit []*big.Int
}

func (c *SignCtx2) GobEncode() ([]byte, error) {
	return gobMarshal(&signCtx2Mirror{Base: c.SignCtx1, PeerCommit: c.peerCommit})
}

func (c *SignCtx2) GobDecode(data []byte) error {
	var m signCtx2Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.SignCtx1 = m.Base
	c.peerCommit = m.PeerCommit
	return nil
}

type signCtx3Mirror struct {
	Base                  SignCtx2
	PeerGamma             map[int]*ECPoint
	DeltaAccum, SigmaAccum *big.Int
}

func (c *SignCtx3) GobEncode() ([]byte, error) {
	return gobMarshal(&signCtx3Mirror{
		Base: c.SignCtx2, PeerGamma: c.peerGamma,
		DeltaAccum: c.deltaAccum, SigmaAccum: c.sigmaAccum,
	})
}

func (c *SignCtx3) GobDecode(data []byte) error {
	var m signCtx3Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.SignCtx2 = m.Base
	c.peerGamma = m.PeerGamma
	c.deltaAccum, c.sigmaAccum = m.DeltaAccum, m.SigmaAccum
	return nil
}

type signCtx4Mirror struct {
	Base  SignCtx3
	Delta *big.Int
}

func (c *SignCtx4) GobEncode() ([]byte, error) {
	return gobMarshal(&signCtx4Mirror{Base: c.SignCtx3, Delta: c.delta})
}

func (c *SignCtx4) GobDecode(data []byte) error {
	var m signCtx4Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.SignCtx3 = m.Base
	c.delta = m.Delta
	return nil
}

type signCtx5Mirror struct {
	Base    SignCtx4
	R, SI   *big.Int
	SCmt    *HashCommitDecommit
}

func (c *SignCtx5) GobEncode() ([]byte, error) {
	return gobMarshal(&signCtx5Mirror{Base: c.SignCtx4, R: c.r, SI: c.sI, SCmt: c.sCmt})
}

func (c *SignCtx5) GobDecode(data []byte) error {
	var m signCtx5Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.SignCtx4 = m.Base
	c.r, c.sI, c.sCmt = m.R, m.SI, m.SCmt
	return nil
}

type signCtx6Mirror struct {
	Base        SignCtx5
	PeerSCommit []*big.Int
}

func (c *SignCtx6) GobEncode() ([]byte, error) {
	return gobMarshal(&signCtx6Mirror{Base: c.SignCtx5, PeerSCommit: c.peerSCommit})
}

func (c *SignCtx6) GobDecode(data []byte) error {
	var m signCtx6Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.SignCtx5 = m.Base
	c.peerSCommit = m.PeerSCommit
	return nil
}

type signCtx7Mirror struct {
	Base   SignCtx6
	STotal *big.Int
	Attest []byte
}

func (c *SignCtx7) GobEncode() ([]byte, error) {
	return gobMarshal(&signCtx7Mirror{Base: c.SignCtx6, STotal: c.sTotal, Attest: c.attest})
}

func (c *SignCtx7) GobDecode(data []byte) error {
	var m signCtx7Mirror
	if err := gobUnmarshal(data, &m); err != nil {
		return err
	}
	c.SignCtx6 = m.Base
	c.sTotal, c.attest = m.STotal, m.Attest
	return nil
}

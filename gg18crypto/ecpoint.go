// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg18crypto

import (
	"crypto/elliptic"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

// Curve is the secp256k1 curve GG18 runs over; the one curve this driver supports.
func Curve() elliptic.Curve {
	return btcec.S256()
}

// ECPoint is an immutable point on Curve(), carried through every round context.
type ECPoint struct {
	coords [2]*big.Int
}

func NewECPoint(x, y *big.Int) (*ECPoint, error) {
	if !Curve().IsOnCurve(x, y) {
		return nil, fmt.Errorf("NewECPoint: point is not on the curve")
	}
	return &ECPoint{[2]*big.Int{x, y}}, nil
}

// NewECPointNoCurveCheck trusts the caller that (x, y) is already on the curve.
func NewECPointNoCurveCheck(x, y *big.Int) *ECPoint {
	return &ECPoint{[2]*big.Int{x, y}}
}

func (p *ECPoint) X() *big.Int { return new(big.Int).Set(p.coords[0]) }
func (p *ECPoint) Y() *big.Int { return new(big.Int).Set(p.coords[1]) }

func (p *ECPoint) Add(b *ECPoint) (*ECPoint, error) {
	x, y := Curve().Add(p.X(), p.Y(), b.X(), b.Y())
	return NewECPoint(x, y)
}

func (p *ECPoint) ScalarMult(k *big.Int) *ECPoint {
	x, y := Curve().ScalarMult(p.X(), p.Y(), k.Bytes())
	q, _ := NewECPoint(x, y) // it must be on the curve, no need to check.
	return q
}

func (p *ECPoint) Equals(b *ECPoint) bool {
	if p == nil || b == nil {
		return false
	}
	return p.X().Cmp(b.X()) == 0 && p.Y().Cmp(b.Y()) == 0
}

// CompressedBytes returns the 33-byte SEC1 compressed encoding used for the group public key.
func (p *ECPoint) CompressedBytes() []byte {
	pk := btcec.PublicKey{Curve: Curve(), X: p.X(), Y: p.Y()}
	return pk.SerializeCompressed()
}

func DecompressPoint(compressed []byte) (*ECPoint, error) {
	pk, err := btcec.ParsePubKey(compressed, btcec.S256())
	if err != nil {
		return nil, err
	}
	return NewECPoint(pk.X, pk.Y)
}

func ScalarBaseMult(k *big.Int) *ECPoint {
	x, y := Curve().ScalarBaseMult(new(big.Int).Mod(k, Curve().Params().N).Bytes())
	p, _ := NewECPoint(x, y)
	return p
}

// pointJSON is the wire shape of ECPoint; coords are unexported so peer messages
// carrying a point round-trip through this instead of the zero value.
type pointJSON struct {
	X *big.Int `json:"x"`
	Y *big.Int `json:"y"`
}

func (p *ECPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{X: p.X(), Y: p.Y()})
}

func (p *ECPoint) UnmarshalJSON(data []byte) error {
	var pj pointJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	if pj.X == nil || pj.Y == nil || !Curve().IsOnCurve(pj.X, pj.Y) {
		return fmt.Errorf("UnmarshalJSON: point is not on the curve")
	}
	p.coords = [2]*big.Int{pj.X, pj.Y}
	return nil
}

// GobEncode/GobDecode route through the JSON form so gob, which cannot reach the unexported
// coords array by reflection, can still carry an ECPoint inside persisted round contexts.
func (p *ECPoint) GobEncode() ([]byte, error) {
	return p.MarshalJSON()
}

func (p *ECPoint) GobDecode(data []byte) error {
	return p.UnmarshalJSON(data)
}

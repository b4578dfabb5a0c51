// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Schnorr ZK proof of knowledge of a discrete logarithm (GG18Spec Fig. 16).

package gg18crypto

import (
	"errors"
	"math/big"

	"github.com/jjanku/mpc-sigs/common"
)

type SchnorrProof struct {
	Alpha *ECPoint
	T     *big.Int
}

// NewSchnorrProof proves knowledge of x such that X = x*G. The nonce is derived from x and X, so
// the same statement always yields the same proof.
func NewSchnorrProof(x *big.Int, X *ECPoint) (*SchnorrProof, error) {
	if x == nil || X == nil {
		return nil, errors.New("NewSchnorrProof: nil value(s)")
	}
	q := Curve().Params().N
	a := common.RejectionSample(q, common.SHA512_256i(x, X.X(), X.Y()))
	alpha := ScalarBaseMult(a)

	c := common.RejectionSample(q, common.SHA512_256i(X.X(), X.Y(), alpha.X(), alpha.Y()))
	t := common.ModInt(q).Add(a, new(big.Int).Mul(c, x))
	return &SchnorrProof{Alpha: alpha, T: t}, nil
}

func (pf *SchnorrProof) Verify(X *ECPoint) bool {
	if pf == nil || pf.Alpha == nil || pf.T == nil {
		return false
	}
	q := Curve().Params().N
	c := common.RejectionSample(q, common.SHA512_256i(X.X(), X.Y(), pf.Alpha.X(), pf.Alpha.Y()))
	tG := ScalarBaseMult(pf.T)
	Xc := X.ScalarMult(c)
	aXc, err := pf.Alpha.Add(Xc)
	if err != nil {
		return false
	}
	return aXc.Equals(tG)
}

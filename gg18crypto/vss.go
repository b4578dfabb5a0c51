// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Feldman VSS, based on Paul Feldman, 1987: A practical scheme for non-interactive verifiable
// secret sharing.

package gg18crypto

import (
	"fmt"
	"math/big"

	"github.com/jjanku/mpc-sigs/common"
)

type (
	// VssCommitments are the EC-point commitments to a VSS polynomial's coefficients (v0..v_{t-1}).
	VssCommitments []*ECPoint

	VssShare struct {
		Threshold int
		ID        *big.Int
		Share     *big.Int
	}
)

var errNotEnoughShares = fmt.Errorf("not enough shares to satisfy the threshold")

// VssCreate splits secret into len(indexes) Shamir shares recoverable by any threshold of them.
func VssCreate(threshold int, secret *big.Int, indexes []*big.Int) (VssCommitments, []*VssShare, error) {
	if threshold < 1 {
		return nil, nil, fmt.Errorf("vss threshold < 1")
	}
	if len(indexes) < threshold {
		return nil, nil, errNotEnoughShares
	}
	q := Curve().Params().N
	poly := make([]*big.Int, threshold)
	poly[0] = secret
	for i := 1; i < threshold; i++ {
		poly[i] = common.GetRandomPositiveInt(q)
	}

	vs := make(VssCommitments, threshold)
	for i, a := range poly {
		vs[i] = ScalarBaseMult(a)
	}

	shares := make([]*VssShare, len(indexes))
	for i, id := range indexes {
		shares[i] = &VssShare{Threshold: threshold, ID: id, Share: evaluatePoly(poly, id, q)}
	}
	return vs, shares, nil
}

func evaluatePoly(poly []*big.Int, id, q *big.Int) *big.Int {
	modQ := common.ModInt(q)
	result := new(big.Int).Set(poly[0])
	x := big.NewInt(1)
	for i := 1; i < len(poly); i++ {
		x = modQ.Mul(x, id)
		result = modQ.Add(result, modQ.Mul(poly[i], x))
	}
	return result
}

// Verify checks a share against the sender's published VSS commitments.
func (share *VssShare) Verify(vs VssCommitments) bool {
	if share.Threshold != len(vs) {
		return false
	}
	q := Curve().Params().N
	modQ := common.ModInt(q)
	v, t := vs[0], big.NewInt(1)
	for j := 1; j < len(vs); j++ {
		t = modQ.Mul(t, share.ID)
		vjt := vs[j].ScalarMult(t)
		var err error
		if v, err = v.Add(vjt); err != nil {
			return false
		}
	}
	return ScalarBaseMult(share.Share).Equals(v)
}

// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg18crypto

import (
	"math/big"

	"github.com/jjanku/mpc-sigs/common"
)

// LagrangeCoefficient evaluates, at x=0, the Lagrange basis polynomial for ids[at] over the
// other points in ids. Multiplying a party's VSS share by this coefficient and summing across
// any threshold-sized subset reconstructs the shared secret (or, additively, a usable share of it).
func LagrangeCoefficient(ids []*big.Int, at int) *big.Int {
	q := Curve().Params().N
	modQ := common.ModInt(q)
	num := big.NewInt(1)
	den := big.NewInt(1)
	for j, idj := range ids {
		if j == at {
			continue
		}
		num = modQ.Mul(num, new(big.Int).Neg(idj))
		den = modQ.Mul(den, modQ.Sub(ids[at], idj))
	}
	return modQ.Mul(num, modQ.ModInverse(den))
}

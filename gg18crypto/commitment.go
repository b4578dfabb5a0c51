// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// A SHA512_256-based hash commitment scheme, ported from https://github.com/KZen-networks/curv.

package gg18crypto

import (
	"math/big"

	"github.com/jjanku/mpc-sigs/common"
)

const hashCommitmentRandomnessBits = 256

type HashCommitDecommit struct {
	C *big.Int   // commitment
	D []*big.Int // decommitment: randomness followed by the committed values
}

func NewHashCommitment(secrets ...*big.Int) *HashCommitDecommit {
	r := common.MustGetRandomInt(hashCommitmentRandomnessBits)
	parts := append([]*big.Int{r}, secrets...)
	return &HashCommitDecommit{C: common.SHA512_256i(parts...), D: parts}
}

func (cmt *HashCommitDecommit) Verify() bool {
	if cmt.C == nil || cmt.D == nil {
		return false
	}
	return common.SHA512_256i(cmt.D...).Cmp(cmt.C) == 0
}

// Decommit verifies the commitment and, on success, returns the committed values
// (skipping the leading randomness element).
func (cmt *HashCommitDecommit) Decommit() (bool, []*big.Int) {
	if !cmt.Verify() {
		return false, nil
	}
	return true, cmt.D[1:]
}

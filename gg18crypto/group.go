// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg18crypto

import "math/big"

// GroupDescriptor is the artifact keygen produces and signing consumes: this party's secret
// share of the group key, plus the public material (Paillier keys, VSS point commitments, the
// group public key) every other participant also holds a copy of.
type GroupDescriptor struct {
	Parties, Threshold, Index int
	Ks                        []*big.Int
	Xi                        *big.Int

	PaillierSK  *PaillierPrivateKey
	PaillierPKs []*PaillierPublicKey
	NTildej     []*big.Int
	H1j         []*big.Int
	H2j         []*big.Int
	BigXj       []*ECPoint

	Y *ECPoint
}

// PublicKey returns the group's secp256k1 public key in 33-byte SEC1 compressed form.
func (g *GroupDescriptor) PublicKey() []byte {
	return g.Y.CompressedBytes()
}

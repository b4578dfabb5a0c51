// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// The GG18 distributed key generation round functions (GG18Spec Fig. 5), expressed as pure
// context-in/context-out functions rather than channel-driven rounds, since the driver above
// this package calls them synchronously once per incoming envelope.
//
// Six rounds: key_gen_1 commits to a VSS polynomial and a pair of Paillier-adjacent auxiliary
// moduli; key_gen_2 decommits them; key_gen_3 unicasts the VSS shares; key_gen_4 verifies
// received shares and reveals each party's share of the public key with a Schnorr proof;
// key_gen_5 verifies those proofs and attests to its own Paillier modulus being well-formed;
// key_gen_6 verifies the modulus proofs and assembles the GroupDescriptor.
package gg18crypto

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/go-multierror"

	"github.com/jjanku/mpc-sigs/common"
)

const (
	// PaillierModulusBits is intentionally far below the 2048 bits GG18Spec recommends for
	// production, but still wide enough that signing's MtA masks (see mtaMaskBits in sign.go)
	// fit safely under half the modulus. The round functions here stand in for an external
	// cryptographic collaborator that is explicitly out of this driver's testable scope.
	PaillierModulusBits = 1024
	// NTildeBits sizes the pair of safe primes behind each party's NTilde/h1/h2 auxiliary values.
	// They are generated and exchanged for GroupDescriptor fidelity but, per the same scope
	// limitation, are not consumed by a range-proof layer in this driver.
	NTildeBits = 256
)

type (
	KeygenCtx1 struct {
		Parties, Threshold, Index int
		Ks                        []*big.Int
		Vs                        VssCommitments
		Shares                    []*VssShare
		PaillierSK                *PaillierPrivateKey
		NTilde, H1, H2            *big.Int
		cmt                       *HashCommitDecommit
	}

	KeygenCtx2 struct {
		KeygenCtx1
		peerCommits []*big.Int // other parties' key_gen_1 commitments, by real index
	}

	peerKeygenPublic struct {
		Vs                 VssCommitments
		PaillierN          *big.Int
		NTilde, H1, H2     *big.Int
	}

	KeygenCtx3 struct {
		KeygenCtx2
		peerPublic map[int]*peerKeygenPublic
	}

	KeygenCtx4 struct {
		KeygenCtx3
		Xi *big.Int
	}

	KeygenCtx5 struct {
		KeygenCtx4
		Y        *ECPoint
		peerBigX map[int]*ECPoint
	}

	KeyGen1Out struct {
		C *big.Int
	}

	KeyGen2Out struct {
		R              *big.Int
		Vs             VssCommitments
		PaillierN      *big.Int
		NTilde, H1, H2 *big.Int
	}

	KeyGen3Out struct {
		To    int
		Share *VssShare
	}

	KeyGen4Out struct {
		Xi    *ECPoint
		Proof *SchnorrProof
	}

	KeyGen5Out struct {
		ModProof PaillierProof
	}
)

func canonicalIDs(parties int) []*big.Int {
	ks := make([]*big.Int, parties)
	for i := range ks {
		ks[i] = big.NewInt(int64(i + 1))
	}
	return ks
}

func flattenVs(vs VssCommitments) []*big.Int {
	out := make([]*big.Int, 0, 2*len(vs))
	for _, v := range vs {
		out = append(out, v.X(), v.Y())
	}
	return out
}

// KeyGen1 begins keygen: draws this party's polynomial, auxiliary Paillier-adjacent moduli, and
// commits to all of it.
func KeyGen1(parties, threshold, index int) (*KeyGen1Out, *KeygenCtx1, error) {
	if threshold < 1 || threshold > parties {
		return nil, nil, fmt.Errorf("KeyGen1: threshold %d out of range for %d parties", threshold, parties)
	}
	if index < 0 || index >= parties {
		return nil, nil, fmt.Errorf("KeyGen1: index %d out of range", index)
	}
	q := Curve().Params().N
	ks := canonicalIDs(parties)
	ui := common.GetRandomPositiveInt(q)
	vs, shares, err := VssCreate(threshold, ui, ks)
	if err != nil {
		return nil, nil, err
	}

	paillierSK, paillierPK := GeneratePaillierKeyPair(PaillierModulusBits)
	ntP, _ := common.GetRandomSafePrime(NTildeBits / 2)
	ntQ, _ := common.GetRandomSafePrime(NTildeBits / 2)
	ntilde := new(big.Int).Mul(ntP, ntQ)
	h1 := common.GetRandomPositiveRelativelyPrimeInt(ntilde)
	alpha := common.GetRandomPositiveInt(ntilde)
	h2 := new(big.Int).Exp(h1, alpha, ntilde)

	secrets := append(flattenVs(vs), paillierPK.N, ntilde, h1, h2)
	cmt := NewHashCommitment(secrets...)

	ctx := &KeygenCtx1{
		Parties: parties, Threshold: threshold, Index: index,
		Ks: ks, Vs: vs, Shares: shares,
		PaillierSK: paillierSK,
		NTilde:     ntilde, H1: h1, H2: h2,
		cmt: cmt,
	}
	return &KeyGen1Out{C: cmt.C}, ctx, nil
}

// KeyGen2 receives every peer's round-1 commitment and decommits this party's own.
func KeyGen2(peerCommits []*KeyGen1Out, ctx *KeygenCtx1) (*KeyGen2Out, *KeygenCtx2, error) {
	others := otherIndices(ctx.Parties, ctx.Index)
	if len(peerCommits) != len(others) {
		return nil, nil, fmt.Errorf("KeyGen2: expected %d peer commitments, got %d", len(others), len(peerCommits))
	}
	commits := make([]*big.Int, ctx.Parties)
	for i, peerIdx := range others {
		commits[peerIdx] = peerCommits[i].C
	}
	out := &KeyGen2Out{
		R: ctx.cmt.D[0], Vs: ctx.Vs,
		PaillierN: ctx.PaillierSK.N,
		NTilde:    ctx.NTilde, H1: ctx.H1, H2: ctx.H2,
	}
	return out, &KeygenCtx2{KeygenCtx1: *ctx, peerCommits: commits}, nil
}

// KeyGen3 verifies every peer's decommitment and unicasts this party's VSS share to each of them.
func KeyGen3(peerDecommits []*KeyGen2Out, ctx *KeygenCtx2) ([]*KeyGen3Out, *KeygenCtx3, error) {
	others := otherIndices(ctx.Parties, ctx.Index)
	if len(peerDecommits) != len(others) {
		return nil, nil, fmt.Errorf("KeyGen3: expected %d peer decommitments, got %d", len(others), len(peerDecommits))
	}
	peerPublic := make(map[int]*peerKeygenPublic, len(others))
	var failures *multierror.Error
	for i, peerIdx := range others {
		d := peerDecommits[i]
		secrets := append(flattenVs(d.Vs), d.PaillierN, d.NTilde, d.H1, d.H2)
		full := append([]*big.Int{d.R}, secrets...)
		if common.SHA512_256i(full...).Cmp(ctx.peerCommits[peerIdx]) != 0 {
			failures = multierror.Append(failures, fmt.Errorf("party %d: decommitment does not match its round-1 commitment", peerIdx))
			continue
		}
		peerPublic[peerIdx] = &peerKeygenPublic{Vs: d.Vs, PaillierN: d.PaillierN, NTilde: d.NTilde, H1: d.H1, H2: d.H2}
	}
	if failures != nil {
		return nil, nil, failures.ErrorOrNil()
	}

	out := make([]*KeyGen3Out, len(others))
	for i, peerIdx := range others {
		out[i] = &KeyGen3Out{To: peerIdx, Share: ctx.Shares[peerIdx]}
	}
	return out, &KeygenCtx3{KeygenCtx2: *ctx, peerPublic: peerPublic}, nil
}

// KeyGen4 verifies every peer's VSS share against their commitments, sums them (plus this
// party's own share) into its secret key share, and reveals the corresponding public point
// together with a Schnorr proof of knowledge of it.
func KeyGen4(peerShares []*KeyGen3Out, ctx *KeygenCtx3) (*KeyGen4Out, *KeygenCtx4, error) {
	others := otherIndices(ctx.Parties, ctx.Index)
	if len(peerShares) != len(others) {
		return nil, nil, fmt.Errorf("KeyGen4: expected %d peer shares, got %d", len(others), len(peerShares))
	}
	q := Curve().Params().N
	xi := new(big.Int).Set(ctx.Shares[ctx.Index].Share)
	var failures *multierror.Error
	for i, peerIdx := range others {
		share := peerShares[i].Share
		if !share.Verify(ctx.peerPublic[peerIdx].Vs) {
			failures = multierror.Append(failures, fmt.Errorf("party %d: VSS share failed verification", peerIdx))
			continue
		}
		xi = common.ModInt(q).Add(xi, share.Share)
	}
	if failures != nil {
		return nil, nil, failures.ErrorOrNil()
	}

	Xi := ScalarBaseMult(xi)
	proof, err := NewSchnorrProof(xi, Xi)
	if err != nil {
		return nil, nil, err
	}
	return &KeyGen4Out{Xi: Xi, Proof: proof}, &KeygenCtx4{KeygenCtx3: *ctx, Xi: xi}, nil
}

// KeyGen5 verifies every peer's Schnorr proof, combines the public points into the group key,
// and attests that this party's own Paillier modulus is well-formed.
func KeyGen5(peerXis []*KeyGen4Out, ctx *KeygenCtx4) (*KeyGen5Out, *KeygenCtx5, error) {
	others := otherIndices(ctx.Parties, ctx.Index)
	if len(peerXis) != len(others) {
		return nil, nil, fmt.Errorf("KeyGen5: expected %d peer public shares, got %d", len(others), len(peerXis))
	}
	ownXi := ScalarBaseMult(ctx.Xi)
	Y := ownXi
	peerBigX := make(map[int]*ECPoint, len(others))
	var failures *multierror.Error
	for i, peerIdx := range others {
		msg := peerXis[i]
		if !msg.Proof.Verify(msg.Xi) {
			failures = multierror.Append(failures, fmt.Errorf("party %d: Schnorr proof of its public share failed", peerIdx))
			continue
		}
		peerBigX[peerIdx] = msg.Xi
		var err error
		if Y, err = Y.Add(msg.Xi); err != nil {
			failures = multierror.Append(failures, fmt.Errorf("party %d: public share is the point at infinity w.r.t. the running sum", peerIdx))
		}
	}
	if failures != nil {
		return nil, nil, failures.ErrorOrNil()
	}

	modProof := ctx.PaillierSK.Proof(ownXi.X(), ownXi)
	return &KeyGen5Out{ModProof: modProof}, &KeygenCtx5{KeygenCtx4: *ctx, Y: Y, peerBigX: peerBigX}, nil
}

// KeyGen6 verifies every peer's Paillier modulus proof and finalizes the group descriptor.
func KeyGen6(peerModProofs []*KeyGen5Out, ctx *KeygenCtx5) (*GroupDescriptor, []byte, error) {
	others := otherIndices(ctx.Parties, ctx.Index)
	if len(peerModProofs) != len(others) {
		return nil, nil, fmt.Errorf("KeyGen6: expected %d peer modulus proofs, got %d", len(others), len(peerModProofs))
	}
	var failures *multierror.Error
	for i, peerIdx := range others {
		bigX := ctx.peerBigX[peerIdx]
		if !peerModProofs[i].ModProof.Verify(ctx.peerPublic[peerIdx].PaillierN, bigX.X(), bigX) {
			failures = multierror.Append(failures, fmt.Errorf("party %d: Paillier modulus proof failed", peerIdx))
		}
	}
	if failures != nil {
		return nil, nil, failures.ErrorOrNil()
	}

	n := ctx.Parties
	paillierPKs := make([]*PaillierPublicKey, n)
	nTildes := make([]*big.Int, n)
	h1s := make([]*big.Int, n)
	h2s := make([]*big.Int, n)
	bigXj := make([]*ECPoint, n)
	paillierPKs[ctx.Index] = &ctx.PaillierSK.PaillierPublicKey
	nTildes[ctx.Index], h1s[ctx.Index], h2s[ctx.Index] = ctx.NTilde, ctx.H1, ctx.H2
	bigXj[ctx.Index] = ScalarBaseMult(ctx.Xi)
	for _, peerIdx := range others {
		pub := ctx.peerPublic[peerIdx]
		paillierPKs[peerIdx] = &PaillierPublicKey{N: pub.PaillierN}
		nTildes[peerIdx], h1s[peerIdx], h2s[peerIdx] = pub.NTilde, pub.H1, pub.H2
		bigXj[peerIdx] = ctx.peerBigX[peerIdx]
	}

	group := &GroupDescriptor{
		Parties: n, Threshold: ctx.Threshold, Index: ctx.Index,
		Ks: ctx.Ks, Xi: ctx.Xi,
		PaillierSK:  ctx.PaillierSK,
		PaillierPKs: paillierPKs,
		NTildej:     nTildes, H1j: h1s, H2j: h2s,
		BigXj: bigXj, Y: ctx.Y,
	}
	return group, ctx.Y.CompressedBytes(), nil
}

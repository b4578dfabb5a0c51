// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// The GG18 threshold-signing round functions (GG18Spec Fig. 10-14), broken into the same
// synchronous context-passing shape as keygen instead of channel-driven rounds.
//
// The protocol runs a Paillier MtA (Gennaro-Goldfeder 2018, based on Hazay-Lindell's two-party
// MtA) over each ordered pair of participants in a single batched pass: round sign_2 unicasts
// every party's Paillier encryption of its nonce share, sign_3 broadcasts every party's MtA
// responses to every other party (each response individually addressed by Paillier key, so only
// its intended recipient can decrypt it, but the broadcast envelope itself is uniform since it
// carries the whole addressed batch). sign_4 reveals delta = k*gamma, a blinded opening that lets
// every party recover the signature's r component without ever revealing its own nonce share.
// sign_5 through sign_9 commit to, reveal, and cross-attest each party's signature share before
// sign_10 verifies the reassembled signature and finishes.
package gg18crypto

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/go-multierror"

	"github.com/jjanku/mpc-sigs/common"
)

// mtaMaskBits sizes the random mask an MtA "Bob" response is blinded with. It must be wide
// enough to statistically hide a product of two curve-order-sized scalars (roughly 2*256 bits)
// while staying safely under half of the PaillierModulusBits-bit modulus, so the signed residue can be recovered
// unambiguously without the zero-knowledge range proof GG18Spec normally uses to bound it.
const mtaMaskBits = 592

type mtaResponse struct {
	Delta *big.Int
	Sigma *big.Int
}

type (
	SignCtx1 struct {
		Group     *GroupDescriptor
		Indices   []int // positions into Group.Ks/BigXj/PaillierPKs, one per signing participant
		LocalPos  int   // this party's position within Indices
		M         *big.Int
		W         *big.Int // this party's Lagrange-weighted key share
		k, gamma  *big.Int
		Gamma     *ECPoint
		cA        *big.Int
		cmt       *HashCommitDecommit
	}

	SignCtx2 struct {
		SignCtx1
		peerCommit []*big.Int
	}

	SignCtx3 struct {
		SignCtx2
		peerGamma   map[int]*ECPoint
		deltaAccum  *big.Int
		sigmaAccum  *big.Int
	}

	SignCtx4 struct {
		SignCtx3
		delta *big.Int // own share of k*gamma
	}

	SignCtx5 struct {
		SignCtx4
		r       *big.Int
		sI      *big.Int
		sCmt    *HashCommitDecommit
	}

	SignCtx6 struct {
		SignCtx5
		peerSCommit []*big.Int
	}

	SignCtx7 struct {
		SignCtx6
		sTotal *big.Int
		attest []byte
	}

	SignCtx8 struct {
		SignCtx7
	}

	SignCtx9 struct {
		SignCtx8
	}

	SignRound1Out struct{ C *big.Int }

	SignRound2Out struct {
		To    int
		R     *big.Int
		Gamma *ECPoint
		CA    *big.Int
	}

	SignRound3Out map[int]*mtaResponse

	SignRound4Out struct{ Delta *big.Int }

	SignRound5Out struct{ C *big.Int }

	SignRound6Out struct {
		Rand  *big.Int
		Value *big.Int
	}

	SignRound7Out struct{ Attestation []byte }

	SignRound8Out struct{ R, S *big.Int }

	Signature struct{ R, S *big.Int }
)

func subsetIDs(group *GroupDescriptor, indices []int) []*big.Int {
	ids := make([]*big.Int, len(indices))
	for i, orig := range indices {
		ids[i] = group.Ks[orig]
	}
	return ids
}

// Sign1 begins signing: derives this party's Lagrange-weighted share, draws its nonce share and
// blinding factor, and commits to the blinding point.
func Sign1(group *GroupDescriptor, indices []int, localPos int, hash []byte) (*SignRound1Out, *SignCtx1, error) {
	m := len(indices)
	if localPos < 0 || localPos >= m {
		return nil, nil, fmt.Errorf("Sign1: localPos %d out of range for %d participants", localPos, m)
	}
	if m < group.Threshold {
		return nil, nil, fmt.Errorf("Sign1: %d participants is below the threshold of %d", m, group.Threshold)
	}
	q := Curve().Params().N
	ids := subsetIDs(group, indices)
	lambda := LagrangeCoefficient(ids, localPos)
	w := common.ModInt(q).Mul(lambda, group.Xi)

	k := common.GetRandomPositiveInt(q)
	gamma := common.GetRandomPositiveInt(q)
	Gamma := ScalarBaseMult(gamma)
	cA, err := group.PaillierSK.Encrypt(k)
	if err != nil {
		return nil, nil, err
	}
	cmt := NewHashCommitment(Gamma.X(), Gamma.Y())

	ctx := &SignCtx1{
		Group: group, Indices: indices, LocalPos: localPos,
		M: new(big.Int).Mod(new(big.Int).SetBytes(hash), q),
		W: w, k: k, gamma: gamma, Gamma: Gamma, cA: cA, cmt: cmt,
	}
	return &SignRound1Out{C: cmt.C}, ctx, nil
}

// Sign2 unicasts this party's blinding-point decommitment and Paillier-encrypted nonce share to
// every other participant.
func Sign2(peerCommits []*SignRound1Out, ctx *SignCtx1) ([]*SignRound2Out, *SignCtx2, error) {
	others := otherIndices(len(ctx.Indices), ctx.LocalPos)
	if len(peerCommits) != len(others) {
		return nil, nil, fmt.Errorf("Sign2: expected %d peer commitments, got %d", len(others), len(peerCommits))
	}
	commits := make([]*big.Int, len(ctx.Indices))
	for i, pos := range others {
		commits[pos] = peerCommits[i].C
	}
	out := make([]*SignRound2Out, len(others))
	for i, pos := range others {
		out[i] = &SignRound2Out{To: pos, R: ctx.cmt.D[0], Gamma: ctx.Gamma, CA: ctx.cA}
	}
	return out, &SignCtx2{SignCtx1: *ctx, peerCommit: commits}, nil
}

// Sign3 verifies every peer's blinding-point decommitment, then performs the Bob side of a
// Paillier MtA against every peer's nonce-share ciphertext for both the delta (k*gamma) and
// sigma (k*w) products, broadcasting the addressed response batch.
func Sign3(peerMsgs []*SignRound2Out, ctx *SignCtx2) (SignRound3Out, *SignCtx3, error) {
	others := otherIndices(len(ctx.Indices), ctx.LocalPos)
	if len(peerMsgs) != len(others) {
		return nil, nil, fmt.Errorf("Sign3: expected %d peer messages, got %d", len(others), len(peerMsgs))
	}
	q := Curve().Params().N
	peerGamma := make(map[int]*ECPoint, len(others))
	deltaAccum := common.ModInt(q).Mul(ctx.k, ctx.gamma)
	sigmaAccum := common.ModInt(q).Mul(ctx.k, ctx.W)
	responses := make(SignRound3Out, len(others))
	var failures *multierror.Error
	for i, pos := range others {
		msg := peerMsgs[i]
		if common.SHA512_256i(msg.R, msg.Gamma.X(), msg.Gamma.Y()).Cmp(ctx.peerCommit[pos]) != 0 {
			failures = multierror.Append(failures, fmt.Errorf("party %d: blinding-point decommitment does not match its commitment", pos))
			continue
		}
		peerGamma[pos] = msg.Gamma

		peerPK := ctx.Group.PaillierPKs[ctx.Indices[pos]]
		deltaResp, betaDelta, err := mtaBobRespond(peerPK, ctx.gamma, msg.CA)
		if err != nil {
			failures = multierror.Append(failures, fmt.Errorf("party %d: MtA (delta) response failed: %v", pos, err))
			continue
		}
		sigmaResp, betaSigma, err := mtaBobRespond(peerPK, ctx.W, msg.CA)
		if err != nil {
			failures = multierror.Append(failures, fmt.Errorf("party %d: MtA (sigma) response failed: %v", pos, err))
			continue
		}
		deltaAccum = common.ModInt(q).Add(deltaAccum, new(big.Int).Mod(betaDelta, q))
		sigmaAccum = common.ModInt(q).Add(sigmaAccum, new(big.Int).Mod(betaSigma, q))
		responses[pos] = &mtaResponse{Delta: deltaResp, Sigma: sigmaResp}
	}
	if failures != nil {
		return nil, nil, failures.ErrorOrNil()
	}
	return responses, &SignCtx3{SignCtx2: *ctx, peerGamma: peerGamma, deltaAccum: deltaAccum, sigmaAccum: sigmaAccum}, nil
}

// mtaBobRespond plays the Bob side of a Paillier MtA: given Alice's ciphertext cA = Enc_pkA(a),
// and Bob's multiplier b, returns a response only Alice can decrypt to learn alpha = a*b - beta
// (mod the Paillier modulus), and Bob's own additive share beta (unreduced; callers reduce it mod q).
func mtaBobRespond(alicePK *PaillierPublicKey, b, cA *big.Int) (resp *big.Int, beta *big.Int, err error) {
	betaPrime := common.MustGetRandomInt(mtaMaskBits)
	negBeta := new(big.Int).Mod(new(big.Int).Neg(betaPrime), alicePK.N)
	encNegBeta, err := alicePK.Encrypt(negBeta)
	if err != nil {
		return nil, nil, err
	}
	scaled, err := alicePK.HomoMult(b, cA)
	if err != nil {
		return nil, nil, err
	}
	resp, err = alicePK.HomoAdd(scaled, encNegBeta)
	if err != nil {
		return nil, nil, err
	}
	return resp, betaPrime, nil
}

// mtaAliceOpen decrypts a response from mtaBobRespond, recovering alpha = a*b - beta as a signed
// integer (rather than a raw mod-N residue) so it can be safely reduced modulo the curve order.
func mtaAliceOpen(sk *PaillierPrivateKey, resp *big.Int) (*big.Int, error) {
	raw, err := sk.Decrypt(resp)
	if err != nil {
		return nil, err
	}
	half := new(big.Int).Rsh(sk.N, 1)
	if raw.Cmp(half) > 0 {
		return new(big.Int).Sub(raw, sk.N), nil
	}
	return raw, nil
}

// Sign4 decrypts every peer's MtA response, finishes accumulating this party's delta and sigma
// shares, and reveals delta so every party can recover the signature's r component.
func Sign4(peerMsgs []SignRound3Out, ctx *SignCtx3) (*SignRound4Out, *SignCtx4, error) {
	others := otherIndices(len(ctx.Indices), ctx.LocalPos)
	if len(peerMsgs) != len(others) {
		return nil, nil, fmt.Errorf("Sign4: expected %d peer messages, got %d", len(others), len(peerMsgs))
	}
	q := Curve().Params().N
	delta := new(big.Int).Set(ctx.deltaAccum)
	sigma := new(big.Int).Set(ctx.sigmaAccum)
	for i, pos := range others {
		entry, ok := peerMsgs[i][ctx.LocalPos]
		if !ok {
			return nil, nil, fmt.Errorf("Sign4: party %d sent no MtA response addressed to us", pos)
		}
		alphaDelta, err := mtaAliceOpen(ctx.Group.PaillierSK, entry.Delta)
		if err != nil {
			return nil, nil, fmt.Errorf("Sign4: decrypting party %d's delta response: %v", pos, err)
		}
		alphaSigma, err := mtaAliceOpen(ctx.Group.PaillierSK, entry.Sigma)
		if err != nil {
			return nil, nil, fmt.Errorf("Sign4: decrypting party %d's sigma response: %v", pos, err)
		}
		delta = common.ModInt(q).Add(delta, alphaDelta)
		sigma = common.ModInt(q).Add(sigma, alphaSigma)
	}
	ctx.sigmaAccum = sigma
	return &SignRound4Out{Delta: delta}, &SignCtx4{SignCtx3: *ctx, delta: delta}, nil
}

// Sign5 recombines every party's delta share into the nonce-inverting scalar, derives the
// signature's r component, computes this party's signature share, and commits to it.
func Sign5(peerMsgs []*SignRound4Out, ctx *SignCtx4) (*SignRound5Out, *SignCtx5, error) {
	others := otherIndices(len(ctx.Indices), ctx.LocalPos)
	if len(peerMsgs) != len(others) {
		return nil, nil, fmt.Errorf("Sign5: expected %d peer messages, got %d", len(others), len(peerMsgs))
	}
	q := Curve().Params().N
	deltaTotal := new(big.Int).Set(ctx.delta)
	for _, msg := range peerMsgs {
		deltaTotal = common.ModInt(q).Add(deltaTotal, msg.Delta)
	}
	if deltaTotal.Sign() == 0 {
		return nil, nil, fmt.Errorf("Sign5: delta is zero, a degenerate nonce was chosen")
	}
	deltaInv := common.ModInt(q).ModInverse(deltaTotal)

	capGamma := ctx.Gamma
	for _, pos := range others {
		var err error
		if capGamma, err = capGamma.Add(ctx.peerGamma[pos]); err != nil {
			return nil, nil, fmt.Errorf("Sign5: combining blinding points: %v", err)
		}
	}
	R := capGamma.ScalarMult(deltaInv)
	r := new(big.Int).Mod(R.X(), q)
	if r.Sign() == 0 {
		return nil, nil, fmt.Errorf("Sign5: signature r is zero, a degenerate nonce was chosen")
	}

	sI := common.ModInt(q).Add(common.ModInt(q).Mul(ctx.M, ctx.k), common.ModInt(q).Mul(r, ctx.sigmaAccum))
	sCmt := NewHashCommitment(sI)

	return &SignRound5Out{C: sCmt.C}, &SignCtx5{SignCtx4: *ctx, r: r, sI: sI, sCmt: sCmt}, nil
}

// Sign6 stores every peer's commitment to its signature share and reveals this party's own.
func Sign6(peerMsgs []*SignRound5Out, ctx *SignCtx5) (*SignRound6Out, *SignCtx6, error) {
	others := otherIndices(len(ctx.Indices), ctx.LocalPos)
	if len(peerMsgs) != len(others) {
		return nil, nil, fmt.Errorf("Sign6: expected %d peer messages, got %d", len(others), len(peerMsgs))
	}
	commits := make([]*big.Int, len(ctx.Indices))
	for i, pos := range others {
		commits[pos] = peerMsgs[i].C
	}
	out := &SignRound6Out{Rand: ctx.sCmt.D[0], Value: ctx.sI}
	return out, &SignCtx6{SignCtx5: *ctx, peerSCommit: commits}, nil
}

// Sign7 verifies every peer's signature-share decommitment, sums them into the full signature,
// normalizes it to low-S form, and broadcasts an attestation hash for peers to cross-check.
func Sign7(peerMsgs []*SignRound6Out, ctx *SignCtx6) (*SignRound7Out, *SignCtx7, error) {
	others := otherIndices(len(ctx.Indices), ctx.LocalPos)
	if len(peerMsgs) != len(others) {
		return nil, nil, fmt.Errorf("Sign7: expected %d peer messages, got %d", len(others), len(peerMsgs))
	}
	q := Curve().Params().N
	sTotal := new(big.Int).Set(ctx.sI)
	var failures *multierror.Error
	for i, pos := range others {
		msg := peerMsgs[i]
		if common.SHA512_256i(msg.Rand, msg.Value).Cmp(ctx.peerSCommit[pos]) != 0 {
			failures = multierror.Append(failures, fmt.Errorf("party %d: signature-share decommitment does not match its commitment", pos))
			continue
		}
		sTotal = common.ModInt(q).Add(sTotal, msg.Value)
	}
	if failures != nil {
		return nil, nil, failures.ErrorOrNil()
	}
	halfQ := new(big.Int).Rsh(q, 1)
	if sTotal.Cmp(halfQ) > 0 {
		sTotal = new(big.Int).Sub(q, sTotal)
	}
	attest := common.SHA512_256(ctx.r.Bytes(), sTotal.Bytes())
	return &SignRound7Out{Attestation: attest}, &SignCtx7{SignCtx6: *ctx, sTotal: sTotal, attest: attest}, nil
}

// Sign8 verifies every peer agrees on the attestation hash, then broadcasts the final signature
// bytes themselves for a second, concrete cross-check.
func Sign8(peerMsgs []*SignRound7Out, ctx *SignCtx7) (*SignRound8Out, *SignCtx8, error) {
	if err := verifyAttestations(peerMsgs, ctx.attest); err != nil {
		return nil, nil, err
	}
	return &SignRound8Out{R: ctx.r, S: ctx.sTotal}, &SignCtx8{SignCtx7: *ctx}, nil
}

func verifyAttestations(peerMsgs []*SignRound7Out, own []byte) error {
	var failures *multierror.Error
	for _, msg := range peerMsgs {
		if string(msg.Attestation) != string(own) {
			failures = multierror.Append(failures, fmt.Errorf("a peer's signature attestation disagrees with ours"))
		}
	}
	return failures.ErrorOrNil()
}

// Sign9 verifies every peer's broadcast signature bytes match this party's own, then rebroadcasts
// them as a final confirmation.
func Sign9(peerMsgs []*SignRound8Out, ctx *SignCtx8) (*SignRound8Out, *SignCtx9, error) {
	for _, msg := range peerMsgs {
		if msg.R.Cmp(ctx.r) != 0 || msg.S.Cmp(ctx.sTotal) != 0 {
			return nil, nil, fmt.Errorf("Sign9: a peer's reassembled signature disagrees with ours")
		}
	}
	return &SignRound8Out{R: ctx.r, S: ctx.sTotal}, &SignCtx9{SignCtx8: *ctx}, nil
}

// Sign10 verifies every peer's confirmation, checks the reassembled signature against the group
// public key, and finishes.
func Sign10(peerMsgs []*SignRound8Out, ctx *SignCtx9) (*Signature, error) {
	for _, msg := range peerMsgs {
		if msg.R.Cmp(ctx.r) != 0 || msg.S.Cmp(ctx.sTotal) != 0 {
			return nil, fmt.Errorf("Sign10: a peer's confirmation disagrees with ours")
		}
	}
	if !VerifySignature(ctx.Group.Y, ctx.M, ctx.r, ctx.sTotal) {
		return nil, fmt.Errorf("Sign10: reassembled signature does not verify against the group public key")
	}
	return &Signature{R: ctx.r, S: ctx.sTotal}, nil
}

// Bytes encodes the signature as the 64-byte compact form: r and s, each left-padded big-endian
// to 32 bytes.
func (s *Signature) Bytes() []byte {
	out := make([]byte, 64)
	rb := s.R.Bytes()
	sb := s.S.Bytes()
	copy(out[32-len(rb):32], rb)
	copy(out[64-len(sb):64], sb)
	return out
}

// ParseSignature decodes the 64-byte compact form produced by Bytes.
func ParseSignature(b []byte) (*Signature, error) {
	if len(b) != 64 {
		return nil, fmt.Errorf("ParseSignature: expected 64 bytes, got %d", len(b))
	}
	return &Signature{R: new(big.Int).SetBytes(b[:32]), S: new(big.Int).SetBytes(b[32:])}, nil
}

// VerifySignature checks a secp256k1 ECDSA signature the standard way: R' = m*s^-1*G + r*s^-1*Y,
// accepting iff R'.x mod q == r.
func VerifySignature(Y *ECPoint, m, r, s *big.Int) bool {
	q := Curve().Params().N
	if r.Sign() <= 0 || r.Cmp(q) >= 0 || s.Sign() <= 0 || s.Cmp(q) >= 0 {
		return false
	}
	sInv := common.ModInt(q).ModInverse(s)
	u1 := common.ModInt(q).Mul(m, sInv)
	u2 := common.ModInt(q).Mul(r, sInv)
	p1 := ScalarBaseMult(u1)
	p2 := Y.ScalarMult(u2)
	sum, err := p1.Add(p2)
	if err != nil {
		return false
	}
	return new(big.Int).Mod(sum.X(), q).Cmp(r) == 0
}

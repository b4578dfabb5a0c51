// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// The Paillier crypto-system is an additive homomorphic crypto-system: given two ciphertexts,
// one can compute a ciphertext of the sum of their plaintexts without decrypting either
// (GG18Spec (6)).

package gg18crypto

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/otiai10/primes"

	"github.com/jjanku/mpc-sigs/common"
)

const (
	// PaillierProofIters is the number of Fiat-Shamir challenges used when proving N is a valid
	// Paillier modulus (a product of two large primes). Reduced for test-speed; this driver's
	// round functions are not tuned for production security margins.
	PaillierProofIters = 8
	verifyPrimesUntil  = 1000
)

type (
	PaillierPublicKey struct {
		N *big.Int
	}

	PaillierPrivateKey struct {
		PaillierPublicKey
		LambdaN, PhiN *big.Int
	}

	// PaillierProof is a non-interactive proof that N is the product of two large primes,
	// per Gennaro, Micciancio, Rabin: "An efficient non-interactive statistical zero-knowledge
	// proof system for quasi-safe prime products" (CCS 1998).
	PaillierProof [PaillierProofIters]*big.Int
)

var (
	ErrMessageTooLong   = fmt.Errorf("the message is too large or negative")
	ErrMessageMalformed = fmt.Errorf("the ciphertext is malformed")
)

func init() {
	_ = primes.Globally.Until(verifyPrimesUntil)
}

// GeneratePaillierKeyPair draws two safe primes and derives a Paillier keypair of modulusBitLen bits.
func GeneratePaillierKeyPair(modulusBitLen int) (*PaillierPrivateKey, *PaillierPublicKey) {
	var P, Q, N *big.Int
	for {
		p1, _ := common.GetRandomSafePrime(modulusBitLen / 2)
		p2, _ := common.GetRandomSafePrime(modulusBitLen / 2)
		P, Q = p1, p2
		N = new(big.Int).Mul(P, Q)
		if new(big.Int).Sub(P, Q).BitLen() >= modulusBitLen/2-3 {
			break
		}
	}
	pMinus1 := new(big.Int).Sub(P, one)
	qMinus1 := new(big.Int).Sub(Q, one)
	phiN := new(big.Int).Mul(pMinus1, qMinus1)
	gcd := new(big.Int).GCD(nil, nil, pMinus1, qMinus1)
	lambdaN := new(big.Int).Div(phiN, gcd)

	pub := &PaillierPublicKey{N: N}
	priv := &PaillierPrivateKey{PaillierPublicKey: *pub, LambdaN: lambdaN, PhiN: phiN}
	return priv, pub
}

func (pub *PaillierPublicKey) nSquare() *big.Int {
	return new(big.Int).Mul(pub.N, pub.N)
}

func (pub *PaillierPublicKey) gamma() *big.Int {
	return new(big.Int).Add(pub.N, one)
}

func (pub *PaillierPublicKey) EncryptAndReturnRandomness(m *big.Int) (c, x *big.Int, err error) {
	if m.Sign() == -1 || m.Cmp(pub.N) != -1 {
		return nil, nil, ErrMessageTooLong
	}
	x = common.GetRandomPositiveRelativelyPrimeInt(pub.N)
	n2 := pub.nSquare()
	gm := new(big.Int).Exp(pub.gamma(), m, n2)
	xn := new(big.Int).Exp(x, pub.N, n2)
	c = common.ModInt(n2).Mul(gm, xn)
	return c, x, nil
}

func (pub *PaillierPublicKey) Encrypt(m *big.Int) (*big.Int, error) {
	c, _, err := pub.EncryptAndReturnRandomness(m)
	return c, err
}

// HomoAdd combines two ciphertexts into one encrypting the sum of their plaintexts.
func (pub *PaillierPublicKey) HomoAdd(c1, c2 *big.Int) (*big.Int, error) {
	n2 := pub.nSquare()
	return common.ModInt(n2).Mul(c1, c2), nil
}

// HomoMult scales a ciphertext by a plaintext multiplier.
func (pub *PaillierPublicKey) HomoMult(m, c *big.Int) (*big.Int, error) {
	if m.Sign() == -1 || m.Cmp(pub.N) != -1 {
		return nil, ErrMessageTooLong
	}
	n2 := pub.nSquare()
	return common.ModInt(n2).Exp(c, m), nil
}

func (priv *PaillierPrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	n2 := priv.nSquare()
	if c.Sign() == -1 || c.Cmp(n2) != -1 {
		return nil, ErrMessageTooLong
	}
	if new(big.Int).GCD(nil, nil, c, n2).Cmp(one) == 1 {
		return nil, ErrMessageMalformed
	}
	lc := paillierL(new(big.Int).Exp(c, priv.LambdaN, n2), priv.N)
	lg := paillierL(new(big.Int).Exp(priv.gamma(), priv.LambdaN, n2), priv.N)
	inv := new(big.Int).ModInverse(lg, priv.N)
	return common.ModInt(priv.N).Mul(lc, inv), nil
}

// Proof attests that N is a valid Paillier modulus (product of two large primes), binding the
// proof to ecdsaPub and k so it cannot be replayed across sessions.
func (priv *PaillierPrivateKey) Proof(k *big.Int, ecdsaPub *ECPoint) PaillierProof {
	var pi PaillierProof
	xs := generatePaillierChallenges(PaillierProofIters, k, priv.N, ecdsaPub)
	invN := new(big.Int).ModInverse(priv.N, priv.PhiN)
	for i := range xs {
		pi[i] = new(big.Int).Exp(xs[i], invN, priv.N)
	}
	return pi
}

func (pf PaillierProof) Verify(pkN, k *big.Int, ecdsaPub *ECPoint) bool {
	primeList := primes.Until(verifyPrimesUntil).List()
	for _, p := range primeList {
		if new(big.Int).Mod(pkN, big.NewInt(p)).Sign() == 0 {
			return false
		}
	}
	xs := generatePaillierChallenges(PaillierProofIters, k, pkN, ecdsaPub)
	for i, xi := range xs {
		xiModN := new(big.Int).Mod(xi, pkN)
		yiExpN := new(big.Int).Exp(pf[i], pkN, pkN)
		if xiModN.Cmp(yiExpN) != 0 {
			return false
		}
	}
	return true
}

func paillierL(u, n *big.Int) *big.Int {
	t := new(big.Int).Sub(u, one)
	return new(big.Int).Div(t, n)
}

func generatePaillierChallenges(m int, k, n *big.Int, ecdsaPub *ECPoint) []*big.Int {
	ret := make([]*big.Int, 0, m)
	sX, sY := ecdsaPub.X(), ecdsaPub.Y()
	var i, round int
	for len(ret) < m {
		hash := common.SHA512_256(
			[]byte(strconv.Itoa(i)), []byte(strconv.Itoa(round)),
			k.Bytes(), sX.Bytes(), sY.Bytes(), n.Bytes())
		x := new(big.Int).SetBytes(hash)
		if common.IsNumberInMultiplicativeGroup(n, x) {
			ret = append(ret, x)
			i++
		} else {
			round++
		}
	}
	return ret
}

var one = big.NewInt(1)

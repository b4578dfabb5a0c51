// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

const (
	mustGetRandomIntMaxBits = 5000
	primeTestN              = 30
)

// MustGetRandomInt panics if it is unable to gather entropy from `rand.Reader` or when `bits` is <= 0
func MustGetRandomInt(bits int) *big.Int {
	if bits <= 0 || mustGetRandomIntMaxBits < bits {
		panic(fmt.Errorf("MustGetRandomInt: bits should be positive, non-zero and at most %d", mustGetRandomIntMaxBits))
	}
	max := new(big.Int).Sub(new(big.Int).Exp(two, big.NewInt(int64(bits)), nil), one)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(errors.Wrap(err, "rand.Int failure in MustGetRandomInt"))
	}
	return n
}

// GetRandomPositiveInt returns a uniform random value in [0, lessThan).
func GetRandomPositiveInt(lessThan *big.Int) *big.Int {
	if lessThan == nil || zero.Cmp(lessThan) != -1 {
		return nil
	}
	var try *big.Int
	for {
		try = MustGetRandomInt(lessThan.BitLen())
		if try.Cmp(lessThan) < 0 && try.Cmp(zero) >= 0 {
			break
		}
	}
	return try
}

// GetRandomPositiveRelativelyPrimeInt returns a random element of (Z/nZ)*.
func GetRandomPositiveRelativelyPrimeInt(n *big.Int) *big.Int {
	if n == nil || zero.Cmp(n) != -1 {
		return nil
	}
	var try *big.Int
	for {
		try = MustGetRandomInt(n.BitLen())
		if IsNumberInMultiplicativeGroup(n, try) {
			break
		}
	}
	return try
}

func IsNumberInMultiplicativeGroup(n, v *big.Int) bool {
	if n == nil || v == nil || zero.Cmp(n) != -1 {
		return false
	}
	gcd := big.NewInt(0)
	return v.Cmp(n) < 0 && v.Cmp(one) >= 0 &&
		gcd.GCD(nil, nil, v, n).Cmp(one) == 0
}

// GetRandomSafePrime finds a prime q such that p = 2q+1 is also prime, with p having bitLen bits.
// A plain sequential search rather than a concurrent sieve: the round functions this feeds are
// explicitly out of this driver's performance scope, so production-grade concurrency here isn't
// worth the complexity.
func GetRandomSafePrime(bitLen int) (*big.Int, *big.Int) {
	for {
		q, err := rand.Prime(rand.Reader, bitLen-1)
		if err != nil {
			continue
		}
		p := new(big.Int).Add(new(big.Int).Mul(q, two), one)
		if p.ProbablyPrime(primeTestN) {
			return p, q
		}
	}
}

// RejectionSample reduces a hash digest modulo q, the way Schnorr-style challenges are derived.
func RejectionSample(q *big.Int, eHash *big.Int) *big.Int {
	return new(big.Int).Mod(eHash, q)
}

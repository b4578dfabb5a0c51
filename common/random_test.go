// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jjanku/mpc-sigs/common"
)

const randomIntBitLen = 1024

func TestGetRandomInt(t *testing.T) {
	rnd := common.MustGetRandomInt(randomIntBitLen)
	assert.NotZero(t, rnd, "rand int should not be zero")
}

func TestGetRandomPositiveInt(t *testing.T) {
	rnd := common.MustGetRandomInt(randomIntBitLen)
	rndPos := common.GetRandomPositiveInt(rnd)
	assert.NotZero(t, rndPos, "rand int should not be zero")
	assert.True(t, rndPos.Cmp(big.NewInt(0)) >= 0, "rand int should be non-negative")
	assert.True(t, rndPos.Cmp(rnd) < 0, "rand int should be less than the bound")
}

func TestGetRandomPositiveRelativelyPrimeInt(t *testing.T) {
	rnd := common.MustGetRandomInt(randomIntBitLen)
	rndPosRP := common.GetRandomPositiveRelativelyPrimeInt(rnd)
	assert.NotZero(t, rndPosRP, "rand int should not be zero")
	assert.True(t, common.IsNumberInMultiplicativeGroup(rnd, rndPosRP))
}

func TestGetRandomSafePrime(t *testing.T) {
	p, q := common.GetRandomSafePrime(48)
	assert.True(t, p.ProbablyPrime(20))
	assert.True(t, q.ProbablyPrime(20))
	want := new(big.Int).Add(new(big.Int).Mul(q, big.NewInt(2)), big.NewInt(1))
	assert.Equal(t, want, p)
}

func TestRejectionSample(t *testing.T) {
	q := big.NewInt(97)
	got := common.RejectionSample(q, big.NewInt(250))
	assert.Equal(t, big.NewInt(250%97), got)
}

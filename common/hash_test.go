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

func TestSHA512_256iDeterministicAndSensitive(t *testing.T) {
	a := common.SHA512_256i(big.NewInt(1), big.NewInt(2))
	b := common.SHA512_256i(big.NewInt(1), big.NewInt(2))
	c := common.SHA512_256i(big.NewInt(2), big.NewInt(1))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSHA512_256iEmptyInput(t *testing.T) {
	assert.Nil(t, common.SHA512_256i())
}

func TestSHA512_256Deterministic(t *testing.T) {
	a := common.SHA512_256([]byte("alpha"), []byte("beta"))
	b := common.SHA512_256([]byte("alpha"), []byte("beta"))
	c := common.SHA512_256([]byte("alphabeta"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}

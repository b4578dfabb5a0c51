// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg18crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jjanku/mpc-sigs/gg18crypto"
)

// othersOf lists every index in [0,n) except self, ascending; test-local mirror of the
// unexported helper the package itself uses to order peer-message slices.
func othersOf(n, self int) []int {
	out := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != self {
			out = append(out, i)
		}
	}
	return out
}

// runKeygen drives the full six-round keygen protocol among n in-memory parties with the given
// threshold, returning each party's resulting GroupDescriptor.
func runKeygen(t *testing.T, n, threshold int) []*GroupDescriptor {
	t.Helper()

	out1 := make([]*KeyGen1Out, n)
	ctx1 := make([]*KeygenCtx1, n)
	for i := 0; i < n; i++ {
		o, c, err := KeyGen1(n, threshold, i)
		require.NoError(t, err)
		out1[i], ctx1[i] = o, c
	}

	out2 := make([]*KeyGen2Out, n)
	ctx2 := make([]*KeygenCtx2, n)
	for i := 0; i < n; i++ {
		peers := make([]*KeyGen1Out, 0, n-1)
		for _, j := range othersOf(n, i) {
			peers = append(peers, out1[j])
		}
		o, c, err := KeyGen2(peers, ctx1[i])
		require.NoError(t, err)
		out2[i], ctx2[i] = o, c
	}

	out3 := make([][]*KeyGen3Out, n) // out3[i] indexed by otherIndices(n,i) position
	ctx3 := make([]*KeygenCtx3, n)
	for i := 0; i < n; i++ {
		peers := make([]*KeyGen2Out, 0, n-1)
		for _, j := range othersOf(n, i) {
			peers = append(peers, out2[j])
		}
		o, c, err := KeyGen3(peers, ctx2[i])
		require.NoError(t, err)
		out3[i], ctx3[i] = o, c
	}

	shareTo := func(from, to int) *KeyGen3Out {
		for _, msg := range out3[from] {
			if msg.To == to {
				return msg
			}
		}
		t.Fatalf("party %d never addressed a share to %d", from, to)
		return nil
	}

	out4 := make([]*KeyGen4Out, n)
	ctx4 := make([]*KeygenCtx4, n)
	for i := 0; i < n; i++ {
		peers := make([]*KeyGen3Out, 0, n-1)
		for _, j := range othersOf(n, i) {
			peers = append(peers, shareTo(j, i))
		}
		o, c, err := KeyGen4(peers, ctx3[i])
		require.NoError(t, err)
		out4[i], ctx4[i] = o, c
	}

	out5 := make([]*KeyGen5Out, n)
	ctx5 := make([]*KeygenCtx5, n)
	for i := 0; i < n; i++ {
		peers := make([]*KeyGen4Out, 0, n-1)
		for _, j := range othersOf(n, i) {
			peers = append(peers, out4[j])
		}
		o, c, err := KeyGen5(peers, ctx4[i])
		require.NoError(t, err)
		out5[i], ctx5[i] = o, c
	}

	groups := make([]*GroupDescriptor, n)
	for i := 0; i < n; i++ {
		peers := make([]*KeyGen5Out, 0, n-1)
		for _, j := range othersOf(n, i) {
			peers = append(peers, out5[j])
		}
		g, _, err := KeyGen6(peers, ctx5[i])
		require.NoError(t, err)
		groups[i] = g
	}
	return groups
}

func TestKeygenTwoOfTwo(t *testing.T) {
	groups := runKeygen(t, 2, 2)
	require.Len(t, groups, 2)
	assert.Equal(t, groups[0].PublicKey(), groups[1].PublicKey())
	assert.Len(t, groups[0].PublicKey(), 33)
}

func TestKeygenTwoOfThreeAgreeOnPublicKey(t *testing.T) {
	groups := runKeygen(t, 3, 2)
	require.Len(t, groups, 3)
	for i := 1; i < 3; i++ {
		assert.Equal(t, groups[0].PublicKey(), groups[i].PublicKey())
	}
}

func TestKeygenRejectsBadThreshold(t *testing.T) {
	_, _, err := KeyGen1(3, 5, 0)
	assert.Error(t, err)
}

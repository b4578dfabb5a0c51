// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg18crypto_test

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jjanku/mpc-sigs/gg18crypto"
)

// runSign drives the full ten-round signing protocol for the participants named by indices
// (positions into groups), returning each participant's resulting signature.
func runSign(t *testing.T, groups []*GroupDescriptor, indices []int, hash []byte) []*Signature {
	t.Helper()
	m := len(indices)

	out1 := make([]*SignRound1Out, m)
	ctx1 := make([]*SignCtx1, m)
	for p := 0; p < m; p++ {
		o, c, err := Sign1(groups[indices[p]], indices, p, hash)
		require.NoError(t, err)
		out1[p], ctx1[p] = o, c
	}

	out2 := make([][]*SignRound2Out, m)
	ctx2 := make([]*SignCtx2, m)
	for p := 0; p < m; p++ {
		peers := make([]*SignRound1Out, 0, m-1)
		for _, j := range othersOf(m, p) {
			peers = append(peers, out1[j])
		}
		o, c, err := Sign2(peers, ctx1[p])
		require.NoError(t, err)
		out2[p], ctx2[p] = o, c
	}
	msgTo := func(from, to int) *SignRound2Out {
		for _, msg := range out2[from] {
			if msg.To == to {
				return msg
			}
		}
		t.Fatalf("party %d never addressed a sign_2 message to %d", from, to)
		return nil
	}

	out3 := make([]SignRound3Out, m)
	ctx3 := make([]*SignCtx3, m)
	for p := 0; p < m; p++ {
		peers := make([]*SignRound2Out, 0, m-1)
		for _, j := range othersOf(m, p) {
			peers = append(peers, msgTo(j, p))
		}
		o, c, err := Sign3(peers, ctx2[p])
		require.NoError(t, err)
		out3[p], ctx3[p] = o, c
	}

	out4 := make([]*SignRound4Out, m)
	ctx4 := make([]*SignCtx4, m)
	for p := 0; p < m; p++ {
		peers := make([]SignRound3Out, 0, m-1)
		for _, j := range othersOf(m, p) {
			peers = append(peers, out3[j])
		}
		o, c, err := Sign4(peers, ctx3[p])
		require.NoError(t, err)
		out4[p], ctx4[p] = o, c
	}

	out5 := make([]*SignRound5Out, m)
	ctx5 := make([]*SignCtx5, m)
	for p := 0; p < m; p++ {
		peers := make([]*SignRound4Out, 0, m-1)
		for _, j := range othersOf(m, p) {
			peers = append(peers, out4[j])
		}
		o, c, err := Sign5(peers, ctx4[p])
		require.NoError(t, err)
		out5[p], ctx5[p] = o, c
	}

	out6 := make([]*SignRound6Out, m)
	ctx6 := make([]*SignCtx6, m)
	for p := 0; p < m; p++ {
		peers := make([]*SignRound5Out, 0, m-1)
		for _, j := range othersOf(m, p) {
			peers = append(peers, out5[j])
		}
		o, c, err := Sign6(peers, ctx5[p])
		require.NoError(t, err)
		out6[p], ctx6[p] = o, c
	}

	out7 := make([]*SignRound7Out, m)
	ctx7 := make([]*SignCtx7, m)
	for p := 0; p < m; p++ {
		peers := make([]*SignRound6Out, 0, m-1)
		for _, j := range othersOf(m, p) {
			peers = append(peers, out6[j])
		}
		o, c, err := Sign7(peers, ctx6[p])
		require.NoError(t, err)
		out7[p], ctx7[p] = o, c
	}

	out8 := make([]*SignRound8Out, m)
	ctx8 := make([]*SignCtx8, m)
	for p := 0; p < m; p++ {
		peers := make([]*SignRound7Out, 0, m-1)
		for _, j := range othersOf(m, p) {
			peers = append(peers, out7[j])
		}
		o, c, err := Sign8(peers, ctx7[p])
		require.NoError(t, err)
		out8[p], ctx8[p] = o, c
	}

	out9 := make([]*SignRound8Out, m)
	ctx9 := make([]*SignCtx9, m)
	for p := 0; p < m; p++ {
		peers := make([]*SignRound8Out, 0, m-1)
		for _, j := range othersOf(m, p) {
			peers = append(peers, out8[j])
		}
		o, c, err := Sign9(peers, ctx8[p])
		require.NoError(t, err)
		out9[p], ctx9[p] = o, c
	}

	sigs := make([]*Signature, m)
	for p := 0; p < m; p++ {
		peers := make([]*SignRound8Out, 0, m-1)
		for _, j := range othersOf(m, p) {
			peers = append(peers, out9[j])
		}
		s, err := Sign10(peers, ctx9[p])
		require.NoError(t, err)
		sigs[p] = s
	}
	return sigs
}

func TestSignTwoOfThreeVerifies(t *testing.T) {
	groups := runKeygen(t, 3, 2)
	hash := sha256.Sum256([]byte("hello"))

	sigs := runSign(t, groups, []int{0, 2}, hash[:])
	require.Len(t, sigs, 2)

	q := Curve().Params().N
	m := new(big.Int).Mod(new(big.Int).SetBytes(hash[:]), q)
	for _, sig := range sigs {
		assert.True(t, VerifySignature(groups[0].Y, m, sig.R, sig.S))
	}
	assert.Equal(t, sigs[0].R, sigs[1].R)
	assert.Equal(t, sigs[0].S, sigs[1].S)
}

func TestSignatureBytesRoundTrip(t *testing.T) {
	groups := runKeygen(t, 2, 2)
	hash := sha256.Sum256([]byte("round trip"))
	sigs := runSign(t, groups, []int{0, 1}, hash[:])

	encoded := sigs[0].Bytes()
	require.Len(t, encoded, 64)
	decoded, err := ParseSignature(encoded)
	require.NoError(t, err)
	assert.Equal(t, sigs[0].R, decoded.R)
	assert.Equal(t, sigs[0].S, decoded.S)
}

func TestParseSignatureRejectsBadLength(t *testing.T) {
	_, err := ParseSignature([]byte{1, 2, 3})
	assert.Error(t, err)
}

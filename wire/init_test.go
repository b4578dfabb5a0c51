// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjanku/mpc-sigs/wire"
)

func TestKeygenInitRoundTrip(t *testing.T) {
	in := wire.KeygenInit{Parties: 5, Threshold: 3, Index: 2}
	out, err := wire.UnmarshalKeygenInit(in.Marshal())
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestSignInitRoundTrip(t *testing.T) {
	in := wire.SignInit{Indices: []uint32{0, 2, 4}, Index: 1, Hash: []byte("deadbeef")}
	out, err := wire.UnmarshalSignInit(in.Marshal())
	require.NoError(t, err)
	assert.Equal(t, in.Indices, out.Indices)
	assert.Equal(t, in.Index, out.Index)
	assert.Equal(t, in.Hash, out.Hash)
}

func TestUnmarshalKeygenInitMalformed(t *testing.T) {
	_, err := wire.UnmarshalKeygenInit([]byte{0xff})
	assert.Error(t, err)
}

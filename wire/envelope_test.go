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

func TestPackUnpackRoundTrip(t *testing.T) {
	msgs := [][]byte{[]byte("alice"), []byte("bob"), []byte("carol")}
	frame := wire.Pack(msgs)
	out, err := wire.Unpack(frame)
	require.NoError(t, err)
	assert.Equal(t, msgs, out)
}

func TestPackEmpty(t *testing.T) {
	frame := wire.Pack(nil)
	out, err := wire.Unpack(frame)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUnpackMalformed(t *testing.T) {
	_, err := wire.Unpack([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestUnpackEmptyPayload(t *testing.T) {
	frame := wire.Pack([][]byte{{}})
	out, err := wire.Unpack(frame)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0])
}

// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package wire_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjanku/mpc-sigs/wire"
)

func TestBroadcastReplicates(t *testing.T) {
	out := wire.Broadcast([]byte("payload"), 4)
	require.Len(t, out, 4)
	for _, m := range out {
		assert.Equal(t, []byte("payload"), m)
	}
}

func TestUnicastDistinct(t *testing.T) {
	items := []int{10, 20, 30}
	out, err := wire.Unicast(items, func(i int) ([]byte, error) {
		return []byte(strconv.Itoa(i)), nil
	})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "10", string(out[0]))
	assert.Equal(t, "20", string(out[1]))
	assert.Equal(t, "30", string(out[2]))
}

// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package mobile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjanku/mpc-sigs/mobile"
	"github.com/jjanku/mpc-sigs/wire"
)

func TestUnknownSessionOperationsFail(t *testing.T) {
	_, ok := mobile.AdvanceSession(99999, []byte("frame"))
	assert.False(t, ok)

	_, ok = mobile.FinishSession(99999)
	assert.False(t, ok)

	_, ok = mobile.SerializeSession(99999)
	assert.False(t, ok)

	assert.NotEmpty(t, mobile.LastError(99999))
}

func TestFreeSessionIsIdempotentAndDisablesFurtherUse(t *testing.T) {
	id := mobile.NewKeygenSession()
	mobile.FreeSession(id)
	mobile.FreeSession(id) // must not panic

	_, ok := mobile.AdvanceSession(id, []byte("frame"))
	assert.False(t, ok)
}

func TestKeygenSessionRecordsLastErrorOnMalformedFrame(t *testing.T) {
	id := mobile.NewKeygenSession()
	init := wire.KeygenInit{Parties: 2, Threshold: 2, Index: 0}
	_, ok := mobile.AdvanceSession(id, init.Marshal())
	require.True(t, ok)

	_, ok = mobile.AdvanceSession(id, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	assert.False(t, ok)
	assert.NotEmpty(t, mobile.LastError(id))
}

func TestSerializeDeserializeSessionRoundTrip(t *testing.T) {
	id := mobile.NewKeygenSession()
	init := wire.KeygenInit{Parties: 2, Threshold: 2, Index: 0}
	_, ok := mobile.AdvanceSession(id, init.Marshal())
	require.True(t, ok)

	blob, ok := mobile.SerializeSession(id)
	require.True(t, ok)
	require.NotEmpty(t, blob)

	restoredID, ok := mobile.DeserializeSession(blob)
	require.True(t, ok)
	assert.NotEqual(t, id, restoredID)

	_, ok = mobile.FinishSession(restoredID)
	assert.False(t, ok) // still mid-protocol, not Done
	assert.NotEmpty(t, mobile.LastError(restoredID))
}

func TestNewSignSessionRejectsCorruptGroupBytes(t *testing.T) {
	_, err := mobile.NewSignSession([]byte{0x00, 0x01})
	assert.Error(t, err)
}

func TestDeserializeSessionRejectsCorruptBlob(t *testing.T) {
	_, ok := mobile.DeserializeSession([]byte{0x00, 0x01, 0x02})
	assert.False(t, ok)
}

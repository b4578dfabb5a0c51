// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjanku/mpc-sigs/protocol"
	"github.com/jjanku/mpc-sigs/wire"
)

// driveKeygen runs the full six-round keygen protocol among n in-memory handles, returning the
// serialized group descriptor each of them produced via Finish.
func driveKeygen(t *testing.T, n, threshold int) [][]byte {
	t.Helper()
	parties := make([]*protocol.Protocol, n)
	for i := range parties {
		parties[i] = protocol.NewKeygen()
	}

	frames := make([][]byte, n)
	for i := 0; i < n; i++ {
		init := wire.KeygenInit{Parties: uint32(n), Threshold: uint32(threshold), Index: uint32(i)}
		out, err := parties[i].Advance(init.Marshal())
		require.NoError(t, err)
		frames[i] = out
	}

	// Init output -> R1 input: broadcast
	frames = routeBroadcast(t, frames)
	frames = advanceAll(t, parties, frames)
	// R1 output -> R2 input: broadcast
	frames = routeBroadcast(t, frames)
	frames = advanceAll(t, parties, frames)
	// R2 output -> R3 input: unicast (addressed VSS shares)
	frames = routeUnicast(t, frames)
	frames = advanceAll(t, parties, frames)
	// R3 output -> R4 input: broadcast
	frames = routeBroadcast(t, frames)
	frames = advanceAll(t, parties, frames)
	// R4 output -> R5 input: broadcast
	frames = routeBroadcast(t, frames)
	frames = advanceAll(t, parties, frames)
	// R5 output: every party attests the same compressed group public key
	for i := 1; i < n; i++ {
		require.Equal(t, frames[0], frames[i])
	}

	groups := make([][]byte, n)
	for i := 0; i < n; i++ {
		blob, err := parties[i].Finish()
		require.NoError(t, err)
		groups[i] = blob
	}
	return groups
}

func advanceAll(t *testing.T, parties []*protocol.Protocol, frames [][]byte) [][]byte {
	t.Helper()
	out := make([][]byte, len(parties))
	for i, p := range parties {
		f, err := p.Advance(frames[i])
		require.NoError(t, err)
		out[i] = f
	}
	return out
}

func TestKeygenTwoPartiesAgreeOnGroup(t *testing.T) {
	groups := driveKeygen(t, 2, 2)
	require.Len(t, groups, 2)
	assert.NotEmpty(t, groups[0])
	assert.NotEmpty(t, groups[1])
}

func TestKeygenPersistenceMidProtocol(t *testing.T) {
	const n, threshold = 2, 2

	parties := make([]*protocol.Protocol, n)
	for i := range parties {
		parties[i] = protocol.NewKeygen()
	}
	frames := make([][]byte, n)
	for i := 0; i < n; i++ {
		init := wire.KeygenInit{Parties: uint32(n), Threshold: uint32(threshold), Index: uint32(i)}
		out, err := parties[i].Advance(init.Marshal())
		require.NoError(t, err)
		frames[i] = out
	}
	frames = routeBroadcast(t, frames)
	frames = advanceAll(t, parties, frames)
	frames = routeBroadcast(t, frames)
	frames = advanceAll(t, parties, frames)

	// Party 0 is serialized and reconstructed right before consuming its R3 input.
	blob, err := parties[0].Serialize()
	require.NoError(t, err)
	restored, err := protocol.Deserialize(blob)
	require.NoError(t, err)

	unicastFrames := routeUnicast(t, frames)

	wantOut, err := parties[0].Advance(unicastFrames[0])
	require.NoError(t, err)
	gotOut, err := restored.Advance(unicastFrames[0])
	require.NoError(t, err)
	assert.Equal(t, wantOut, gotOut)
}

func TestKeygenFinishBeforeDoneFails(t *testing.T) {
	p := protocol.NewKeygen()
	_, err := p.Finish()
	require.Error(t, err)
	assert.True(t, protocol.Is(err, protocol.ProtocolNotFinished))
}

func TestKeygenMalformedFrameFails(t *testing.T) {
	p := protocol.NewKeygen()
	init := wire.KeygenInit{Parties: 2, Threshold: 2, Index: 0}
	_, err := p.Advance(init.Marshal())
	require.NoError(t, err)

	_, err = p.Advance([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	require.Error(t, err)

	_, err = p.Finish()
	require.Error(t, err)
	assert.True(t, protocol.Is(err, protocol.ProtocolNotFinished))
}

// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jjanku/mpc-sigs/wire"
)

// routeBroadcast takes each party's outgoing broadcast frame (one or more identical copies of a
// single payload) and builds the incoming frame every OTHER party should receive next: the list
// of every other sender's single broadcast payload, in ascending sender order.
func routeBroadcast(t *testing.T, outgoing [][]byte) [][]byte {
	t.Helper()
	n := len(outgoing)
	payload := make([][]byte, n)
	for i, frame := range outgoing {
		raw, err := wire.Unpack(frame)
		require.NoError(t, err)
		require.NotEmpty(t, raw)
		payload[i] = raw[0]
	}
	incoming := make([][]byte, n)
	for j := 0; j < n; j++ {
		var msgs [][]byte
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			msgs = append(msgs, payload[i])
		}
		incoming[j] = wire.Pack(msgs)
	}
	return incoming
}

// routeUnicast takes each party's outgoing unicast frame (n-1 distinct, individually addressed
// payloads carrying a "To" field) and builds the incoming frame every other party should receive:
// exactly the one entry addressed to it, from every other sender, in ascending sender order.
func routeUnicast(t *testing.T, outgoing [][]byte) [][]byte {
	t.Helper()
	n := len(outgoing)
	type addressed struct {
		to      int
		payload []byte
	}
	fromSender := make([][]addressed, n)
	for i, frame := range outgoing {
		raw, err := wire.Unpack(frame)
		require.NoError(t, err)
		for _, payload := range raw {
			var tf struct {
				To int
			}
			require.NoError(t, json.Unmarshal(payload, &tf))
			fromSender[i] = append(fromSender[i], addressed{to: tf.To, payload: payload})
		}
	}
	incoming := make([][]byte, n)
	for j := 0; j < n; j++ {
		var msgs [][]byte
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			for _, a := range fromSender[i] {
				if a.to == j {
					msgs = append(msgs, a.payload)
				}
			}
		}
		incoming[j] = wire.Pack(msgs)
	}
	return incoming
}

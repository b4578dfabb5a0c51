// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package wire

// Broadcast replicates a single serialized payload n times. The relay always expects one
// message per other party even for rounds whose content is identical for everyone; this is that
// relay-compatibility duplication, not a cryptographic requirement, so implementations are free
// to ship zero-copy replicas of the same underlying bytes.
func Broadcast(payload []byte, n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = payload
	}
	return out
}

// Unicast serializes n distinct payloads, one per peer, preserving the caller's ordering (which
// must already match the session's canonical party order).
func Unicast[T any](items []T, serialize func(T) ([]byte, error)) ([][]byte, error) {
	out := make([][]byte, len(items))
	for i, item := range items {
		b, err := serialize(item)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

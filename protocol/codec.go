// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Inner round payloads are serialized with JSON, the reference codec named for heterogeneous
// peer builds: every gg18crypto round message has only exported fields, built from plain ints,
// byte slices, maps, slices, structs, *big.Int and *ECPoint (the last two implement
// json.Marshaler/Unmarshaler), so there is nothing project-specific to teach the encoder.
package protocol

import "encoding/json"

// marshalJSON encodes a single round output. Round outputs are always JSON-marshalable by
// construction; a failure here is a programming error in gg18crypto, not a condition this driver
// recovers from.
func marshalJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// unmarshalEach decodes every raw peer payload into T, preserving the canonical party order the
// relay delivered them in.
func unmarshalEach[T any](raw [][]byte) ([]T, error) {
	out := make([]T, len(raw))
	for i, b := range raw {
		if err := json.Unmarshal(b, &out[i]); err != nil {
			return nil, newErr(MalformedPeerMessage, err)
		}
	}
	return out, nil
}

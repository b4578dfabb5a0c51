// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package wire implements the relay's framed envelope: a single protobuf message carrying an
// ordered list of opaque per-peer byte strings (one `repeated bytes` field, tag 1). It is the
// only place in this module that speaks protobuf, and it does so with the low-level
// google.golang.org/protobuf/encoding/protowire primitives rather than generated code, since no
// protoc step runs as part of building this driver; the bytes produced are bit-identical to what
// protoc would emit for `message Gg18Message { repeated bytes message = 1; }`.
package wire

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

const envelopeFieldNumber protowire.Number = 1

// Pack produces the wire envelope for a list of per-peer payloads. Never fails; an empty or nil
// msgs yields a valid, empty-list envelope (zero bytes).
func Pack(msgs [][]byte) []byte {
	var b []byte
	for _, m := range msgs {
		b = protowire.AppendTag(b, envelopeFieldNumber, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
	}
	return b
}

// Unpack parses a wire envelope back into its ordered list of payloads. Unknown fields are
// skipped, matching standard protobuf decoding; a frame with no occurrences of field 1 decodes
// to an empty (not nil) slice.
func Unpack(frame []byte) ([][]byte, error) {
	msgs := make([][]byte, 0)
	for len(frame) > 0 {
		num, typ, n := protowire.ConsumeTag(frame)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "wire: malformed tag")
		}
		frame = frame[n:]

		if num != envelopeFieldNumber || typ != protowire.BytesType {
			n := protowire.ConsumeFieldValue(num, typ, frame)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "wire: malformed field value")
			}
			frame = frame[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(frame)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "wire: malformed bytes field")
		}
		msgs = append(msgs, append([]byte{}, v...))
		frame = frame[n:]
	}
	return msgs, nil
}

// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// The keygen-init and sign-init messages, in the MeeSign project's wire schema:
//
//	message Gg18KeyGenInit { uint32 parties = 1; uint32 threshold = 2; uint32 index = 3; }
//	message Gg18SignInit { repeated uint32 indices = 1; uint32 index = 2; bytes hash = 3; }
package wire

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

type KeygenInit struct {
	Parties, Threshold, Index uint32
}

type SignInit struct {
	Indices []uint32
	Index   uint32
	Hash    []byte
}

func (m KeygenInit) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.Parties))
	b = appendVarintField(b, 2, uint64(m.Threshold))
	b = appendVarintField(b, 3, uint64(m.Index))
	return b
}

func UnmarshalKeygenInit(data []byte) (*KeygenInit, error) {
	var m KeygenInit
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, v uint64) error {
		switch num {
		case 1:
			m.Parties = uint32(v)
		case 2:
			m.Threshold = uint32(v)
		case 3:
			m.Index = uint32(v)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "wire: malformed Gg18KeyGenInit")
	}
	return &m, nil
}

func (m SignInit) Marshal() []byte {
	var b []byte
	for _, idx := range m.Indices {
		b = appendVarintField(b, 1, uint64(idx))
	}
	b = appendVarintField(b, 2, uint64(m.Index))
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Hash)
	return b
}

func UnmarshalSignInit(data []byte) (*SignInit, error) {
	var m SignInit
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, v uint64) error {
		if num == 1 {
			m.Indices = append(m.Indices, uint32(v))
		} else if num == 2 {
			m.Index = uint32(v)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "wire: malformed Gg18SignInit")
	}
	// the hash field (3, bytes) needs its own pass since walkFields' callback only sees varints
	hash, err := extractBytesField(data, 3)
	if err != nil {
		return nil, errors.Wrap(err, "wire: malformed Gg18SignInit hash field")
	}
	m.Hash = hash
	return &m, nil
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// walkFields decodes every varint-typed field in data, invoking fn with its value; non-varint
// fields are skipped (callers needing a bytes field use extractBytesField separately).
func walkFields(data []byte, fn func(num protowire.Number, typ protowire.Type, v uint64) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		if typ != protowire.VarintType {
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			continue
		}
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		if err := fn(num, typ, v); err != nil {
			return err
		}
	}
	return nil
}

func extractBytesField(data []byte, field protowire.Number) ([]byte, error) {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		data = data[n:]
		if num == field && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			return append([]byte{}, v...), nil
		}
		n = protowire.ConsumeFieldValue(num, typ, data)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		data = data[n:]
	}
	return nil, nil
}

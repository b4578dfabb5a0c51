// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"crypto"
	_ "crypto/sha512"
	"encoding/binary"
	"math/big"
)

const hashInputDelimiter = byte('$')

// SHA512_256i hashes a list of big.Ints with domain-separating length prefixes, guarding
// against trivial concatenation collisions.
func SHA512_256i(in ...*big.Int) *big.Int {
	state := crypto.SHA512_256.New()
	inLen := len(in)
	if inLen == 0 {
		return nil
	}
	inLenBz := make([]byte, 8)
	binary.LittleEndian.PutUint64(inLenBz, uint64(inLen))
	data := append([]byte{}, inLenBz...)
	for _, n := range in {
		bz := n.Bytes()
		data = append(data, bz...)
		data = append(data, hashInputDelimiter)
		lenBz := make([]byte, 8)
		binary.LittleEndian.PutUint64(lenBz, uint64(len(bz)))
		data = append(data, lenBz...)
	}
	if _, err := state.Write(data); err != nil {
		Logger.Errorf("SHA512_256i Write() failed: %v", err)
		return nil
	}
	return new(big.Int).SetBytes(state.Sum(nil))
}

// SHA512_256 is the byte-slice counterpart of SHA512_256i, used for hash commitments.
func SHA512_256(in ...[]byte) []byte {
	state := crypto.SHA512_256.New()
	inLen := len(in)
	if inLen == 0 {
		return nil
	}
	inLenBz := make([]byte, 8)
	binary.LittleEndian.PutUint64(inLenBz, uint64(inLen))
	data := append([]byte{}, inLenBz...)
	for _, bz := range in {
		data = append(data, bz...)
		data = append(data, hashInputDelimiter)
		lenBz := make([]byte, 8)
		binary.LittleEndian.PutUint64(lenBz, uint64(len(bz)))
		data = append(data, lenBz...)
	}
	if _, err := state.Write(data); err != nil {
		Logger.Errorf("SHA512_256 Write() failed: %v", err)
		return nil
	}
	return state.Sum(nil)
}
